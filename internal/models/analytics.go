package models

// AnalyticsEntry is one recorded engagement observation
type AnalyticsEntry struct {
	ID         int64  `json:"id"`
	Platform   string `json:"platform"`
	Date       string `json:"date"`
	Engagement int    `json:"engagement"`
}

// PlatformSummary aggregates post engagement for one platform
type PlatformSummary struct {
	Platform        string `json:"platform"`
	TotalEngagement int64  `json:"total_engagement"`
	PostCount       int64  `json:"post_count"`
}
