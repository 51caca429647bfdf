package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestPostingTimes_RanksByAverage(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)
	samples := []EngagementSample{
		{Date: "2024-01-01", Time: "09:00", Engagement: "100"},
		{Date: "2024-01-02", Time: "09:00", Engagement: "200"},
		{Date: "2024-01-01", Time: "14:00", Engagement: "50"},
	}

	times, err := agent.BestPostingTimes(samples, DefaultTopN)
	require.NoError(t, err)

	assert.Equal(t, []PostingTime{
		{Hour: 9, Time: "9:00", AvgEngagement: 150},
		{Hour: 14, Time: "14:00", AvgEngagement: 50},
	}, times)
}

func TestBestPostingTimes_NoData(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)

	times, err := agent.BestPostingTimes(nil, 3)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, times)
}

func TestBestPostingTimes_InvalidTimestamp(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)
	samples := []EngagementSample{
		{Date: "2024-01-01", Time: "09:00", Engagement: "10"},
		{Date: "someday", Time: "soon", Engagement: "10"},
	}

	_, err := agent.BestPostingTimes(samples, 3)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Contains(t, err.Error(), "someday soon")
}

func TestBestPostingTimes_RejectsIncompleteTimestamps(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)

	tests := []struct {
		name string
		date string
		time string
	}{
		{"missing time", "2024-01-01", ""},
		{"junk time", "2024-01-01", "abc"},
		{"bare hour", "2024-01-01", "9"},
		{"hour out of range", "2024-01-01", "25:00"},
		{"missing date", "", "10:00"},
		{"impossible date", "2024-02-30", "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, err := agent.BestPostingTimes([]EngagementSample{
				{Date: tt.date, Time: tt.time, Engagement: "1"},
			}, 3)
			assert.ErrorIs(t, err, ErrInvalidTimestamp)
			assert.Nil(t, times)
		})
	}
}

func TestBestPostingTimes_AcceptsClockForms(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)

	tests := []struct {
		clock string
		want  string
	}{
		{"9:05", "9:00"},
		{"09:05:30", "9:00"},
		{"3:15 PM", "15:00"},
		{"3:15pm", "15:00"},
		{"12:00 am", "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			times, err := agent.BestPostingTimes([]EngagementSample{
				{Date: "2024-01-01", Time: tt.clock, Engagement: "1"},
			}, 1)
			require.NoError(t, err)
			require.Len(t, times, 1)
			assert.Equal(t, tt.want, times[0].Time)
		})
	}
}

func TestBestPostingTimes_UnparseableEngagementStillCounts(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)
	samples := []EngagementSample{
		{Date: "2024-03-01", Time: "18:00", Engagement: "lots"},
		{Date: "2024-03-02", Time: "18:00", Engagement: "100"},
		{Date: "2024-03-03", Time: "18:00", Engagement: "-5"},
	}

	times, err := agent.BestPostingTimes(samples, 3)
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.InDelta(t, 33.333, times[0].AvgEngagement, 0.001)
}

func TestBestPostingTimes_TiesOrderedByHour(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)
	samples := []EngagementSample{
		{Date: "2024-01-01", Time: "21:00", Engagement: "40"},
		{Date: "2024-01-01", Time: "14:00", Engagement: "40"},
		{Date: "2024-01-01", Time: "08:00", Engagement: "40"},
		{Date: "2024-01-01", Time: "11:00", Engagement: "90"},
	}

	times, err := agent.BestPostingTimes(samples, 3)
	require.NoError(t, err)

	var labels []string
	for _, slot := range times {
		labels = append(labels, slot.Time)
	}
	assert.Equal(t, []string{"11:00", "8:00", "14:00"}, labels)
}

func TestBestPostingTimes_DefaultsTopN(t *testing.T) {
	agent := NewEngagementAgent(time.UTC)
	var samples []EngagementSample
	for _, clock := range []string{"07:00", "10:00", "12:00", "16:00", "20:00"} {
		samples = append(samples, EngagementSample{Date: "2024-05-05", Time: clock, Engagement: "1"})
	}

	times, err := agent.BestPostingTimes(samples, 0)
	require.NoError(t, err)
	assert.Len(t, times, DefaultTopN)
}

func TestBestPostingTimes_BucketsInConfiguredZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	agent := NewEngagementAgent(tokyo)

	times, err := agent.BestPostingTimes([]EngagementSample{
		{Date: "2024-01-01", Time: "23:30", Engagement: "5"},
	}, 1)
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.Equal(t, "23:00", times[0].Time)
}
