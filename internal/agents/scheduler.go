package agents

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shubh-37/social-content-engine/internal/models"
)

// PostStore is the persistence the scheduler needs
type PostStore interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Post, error)
	GetEngaged(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
}

type SchedulerAgent struct {
	postRepo   PostStore
	engagement *EngagementAgent
	now        func() time.Time
}

type ScheduleConfig struct {
	PostsPerDay    int
	PreferredTimes []string
	StartDate      time.Time
	Timezone       string
}

func NewSchedulerAgent(postRepo PostStore, engagement *EngagementAgent) *SchedulerAgent {
	return &SchedulerAgent{
		postRepo:   postRepo,
		engagement: engagement,
		now:        time.Now,
	}
}

// ScheduleApprovedPosts assigns every approved post a slot, filling each day before moving on.
// Without preferred times the best historical hours are used.
func (s *SchedulerAgent) ScheduleApprovedPosts(ctx context.Context, config ScheduleConfig) (int, error) {
	approvedPosts, err := s.postRepo.GetByStatus(ctx, models.StatusApproved)
	if err != nil {
		return 0, fmt.Errorf("failed to get approved posts: %w", err)
	}

	if len(approvedPosts) == 0 {
		return 0, nil
	}

	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		location = time.UTC
	}

	if len(config.PreferredTimes) == 0 {
		config.PreferredTimes = s.PreferredTimes(ctx, config.PostsPerDay)
	}

	scheduledCount := 0
	currentDate := config.StartDate.In(location)
	timeSlotIndex := 0

	for _, post := range approvedPosts {
		scheduledTime, err := s.calculateScheduledTime(currentDate, config.PreferredTimes[timeSlotIndex], location)
		if err != nil {
			return scheduledCount, err
		}

		post.Date = scheduledTime.Format(models.DateLayout)
		post.Time = scheduledTime.Format(models.TimeLayout)
		post.Status = models.StatusScheduled

		if err := s.postRepo.Update(ctx, post); err != nil {
			return scheduledCount, fmt.Errorf("failed to schedule post %s: %w", post.ID, err)
		}

		scheduledCount++

		timeSlotIndex++
		if timeSlotIndex >= len(config.PreferredTimes) {
			timeSlotIndex = 0
			currentDate = currentDate.AddDate(0, 0, 1)
		}
	}

	return scheduledCount, nil
}

// PreferredTimes picks daily slots from engagement history, falling back to fixed defaults
func (s *SchedulerAgent) PreferredTimes(ctx context.Context, postsPerDay int) []string {
	defaults := s.getDefaultTimes(postsPerDay)
	if s.engagement == nil {
		return defaults
	}

	engaged, err := s.postRepo.GetEngaged(ctx)
	if err != nil || len(engaged) == 0 {
		return defaults
	}

	best, err := s.engagement.BestPostingTimes(SamplesFromPosts(engaged), len(defaults))
	if err != nil || len(best) == 0 {
		return defaults
	}

	hours := make([]int, 0, len(best))
	for _, slot := range best {
		hours = append(hours, slot.Hour)
	}
	sort.Ints(hours)

	times := make([]string, 0, len(hours))
	for _, hour := range hours {
		times = append(times, fmt.Sprintf("%02d:00", hour))
	}
	return times
}

// GetSchedule returns scheduled posts whose slot falls within the next days
func (s *SchedulerAgent) GetSchedule(ctx context.Context, days int) ([]*models.Post, error) {
	scheduledPosts, err := s.postRepo.GetByStatus(ctx, models.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled posts: %w", err)
	}

	now := s.now()
	cutoffDate := now.AddDate(0, 0, days)
	var filteredPosts []*models.Post

	for _, post := range scheduledPosts {
		slot, ok := post.SlotIn(now.Location())
		if ok && slot.Before(cutoffDate) {
			filteredPosts = append(filteredPosts, post)
		}
	}

	return filteredPosts, nil
}

// DuePosts returns scheduled posts whose slot is at or before now
func (s *SchedulerAgent) DuePosts(ctx context.Context, now time.Time) ([]*models.Post, error) {
	scheduledPosts, err := s.postRepo.GetByStatus(ctx, models.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled posts: %w", err)
	}

	var due []*models.Post
	for _, post := range scheduledPosts {
		slot, ok := post.SlotIn(now.Location())
		if ok && !slot.After(now) {
			due = append(due, post)
		}
	}

	return due, nil
}

func (s *SchedulerAgent) ReschedulePost(ctx context.Context, postID string, newTime time.Time) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	if post.Status != models.StatusScheduled {
		return fmt.Errorf("post is not scheduled (status: %s)", post.Status)
	}

	post.Date = newTime.Format(models.DateLayout)
	post.Time = newTime.Format(models.TimeLayout)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return fmt.Errorf("failed to reschedule post: %w", err)
	}

	return nil
}

func (s *SchedulerAgent) CancelSchedule(ctx context.Context, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	post.Status = models.StatusApproved
	post.Time = ""

	if err := s.postRepo.Update(ctx, post); err != nil {
		return fmt.Errorf("failed to cancel schedule: %w", err)
	}

	return nil
}

func (s *SchedulerAgent) calculateScheduledTime(date time.Time, timeStr string, location *time.Location) (time.Time, error) {
	parsedTime, err := time.Parse(models.TimeLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	scheduledTime := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		parsedTime.Hour(),
		parsedTime.Minute(),
		0, 0,
		location,
	)

	return scheduledTime, nil
}

func (s *SchedulerAgent) getDefaultTimes(postsPerDay int) []string {
	switch postsPerDay {
	case 1:
		return []string{"09:00"}
	case 2:
		return []string{"09:00", "15:00"}
	case 3:
		return []string{"09:00", "13:00", "17:00"}
	case 4:
		return []string{"09:00", "12:00", "15:00", "18:00"}
	default:
		return []string{"09:00", "13:00", "17:00"}
	}
}

// SamplesFromPosts converts stored posts into analyzer input
func SamplesFromPosts(posts []*models.Post) []EngagementSample {
	samples := make([]EngagementSample, 0, len(posts))
	for _, post := range posts {
		samples = append(samples, EngagementSample{
			Date:       post.Date,
			Time:       post.Time,
			Engagement: strconv.Itoa(post.Engagement),
		})
	}
	return samples
}
