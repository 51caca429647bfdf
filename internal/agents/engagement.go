package agents

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const DefaultTopN = 3

// EngagementSample is one historical post as seen by the analyzer
type EngagementSample struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Engagement string `json:"engagement"`
}

// PostingTime is a ranked hour of day
type PostingTime struct {
	Hour          int     `json:"-"`
	Time          string  `json:"time"`
	AvgEngagement float64 `json:"avg_engagement"`
}

type hourBucket struct {
	total int
	count int
}

type EngagementAgent struct {
	location *time.Location
}

// NewEngagementAgent buckets samples by hour in loc; nil means the process local zone.
func NewEngagementAgent(loc *time.Location) *EngagementAgent {
	if loc == nil {
		loc = time.Local
	}
	return &EngagementAgent{location: loc}
}

// BestPostingTimes ranks hours of day by mean engagement, highest first.
// Equal means are ordered by ascending hour.
func (a *EngagementAgent) BestPostingTimes(samples []EngagementSample, topN int) ([]PostingTime, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	var buckets [24]hourBucket
	for _, sample := range samples {
		hour, err := a.hourOf(sample)
		if err != nil {
			return nil, err
		}
		buckets[hour].total += parseEngagement(sample.Engagement)
		buckets[hour].count++
	}

	var ranked []PostingTime
	for hour, bucket := range buckets {
		if bucket.count == 0 {
			continue
		}
		ranked = append(ranked, PostingTime{
			Hour:          hour,
			Time:          fmt.Sprintf("%d:00", hour),
			AvgEngagement: float64(bucket.total) / float64(bucket.count),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgEngagement != ranked[j].AvgEngagement {
			return ranked[i].AvgEngagement > ranked[j].AvgEngagement
		}
		return ranked[i].Hour < ranked[j].Hour
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// clockLayouts are the accepted forms of a sample's time of day
var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04:05 PM"}

// hourOf needs both a calendar date and a clock time; a sample missing either
// is rejected instead of landing in hour 0.
func (a *EngagementAgent) hourOf(sample EngagementSample) (int, error) {
	date := strings.TrimSpace(sample.Date)
	clock := strings.TrimSpace(sample.Time)
	invalid := &ValidationError{Err: ErrInvalidTimestamp, Value: strings.TrimSpace(date + " " + clock)}
	if date == "" || clock == "" {
		return 0, invalid
	}

	day, err := dateparse.ParseIn(date, a.location)
	if err != nil {
		return 0, invalid
	}

	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, strings.ToUpper(clock))
		if err != nil {
			continue
		}
		stamp := time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, a.location)
		return stamp.Hour(), nil
	}
	return 0, invalid
}

func parseEngagement(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
