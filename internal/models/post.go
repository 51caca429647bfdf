package models

import "time"

// Post statuses
const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// DateLayout and TimeLayout describe how a post's slot is stored
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Post represents a social media post in any stage
type Post struct {
	ID         string `json:"id"`
	Platform   string `json:"platform"`
	Content    string `json:"content"`
	Status     string `json:"status"` // "draft", "approved", "scheduled", "published", "rejected"
	Date       string `json:"date"`   // YYYY-MM-DD
	Time       string `json:"time,omitempty"`
	Engagement int    `json:"engagement"`
}

// NewPost creates a new post draft for today
func NewPost(platform, content string) *Post {
	return &Post{
		Platform: platform,
		Content:  content,
		Status:   StatusDraft,
		Date:     time.Now().Format(DateLayout),
	}
}

// SlotIn returns the moment the post is slotted for, if it has a date and time
func (p *Post) SlotIn(loc *time.Location) (time.Time, bool) {
	if p.Date == "" || p.Time == "" {
		return time.Time{}, false
	}
	slot, err := time.ParseInLocation(DateLayout+" "+TimeLayout, p.Date+" "+p.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return slot, true
}
