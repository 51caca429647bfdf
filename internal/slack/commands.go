package slack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shubh-37/social-content-engine/internal/agents"
	"github.com/shubh-37/social-content-engine/internal/models"
	"github.com/sirupsen/logrus"
)

// PostStore is the post persistence the Slack handlers use
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByStatus(ctx context.Context, status string) ([]*models.Post, error)
	GetEngaged(ctx context.Context) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type StatsSource interface {
	PlatformSummary(ctx context.Context) ([]models.PlatformSummary, error)
}

type ContentGenerator interface {
	Generate(platforms []string, tone string, topic string) ([]agents.GeneratedPost, error)
}

type HashtagSuggester interface {
	ExtractHashtags(text, platform string, count int) []string
}

type TimingAnalyzer interface {
	BestPostingTimes(samples []agents.EngagementSample, topN int) ([]agents.PostingTime, error)
}

var errUsage = errors.New("usage")

const slotFormat = "Jan 02 at 3:04 PM"

type CommandHandler struct {
	client      Messenger
	postRepo    PostStore
	stats       StatsSource
	generator   ContentGenerator
	hashtags    HashtagSuggester
	timing      TimingAnalyzer
	scheduler   *agents.SchedulerAgent
	location    *time.Location
	postsPerDay int
	log         logrus.FieldLogger
}

// CommandDeps groups the collaborators of CommandHandler
type CommandDeps struct {
	Posts       PostStore
	Stats       StatsSource
	Generator   ContentGenerator
	Hashtags    HashtagSuggester
	Timing      TimingAnalyzer
	Scheduler   *agents.SchedulerAgent
	Location    *time.Location
	PostsPerDay int
	Log         logrus.FieldLogger
}

func NewCommandHandler(client Messenger, deps CommandDeps) *CommandHandler {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.PostsPerDay <= 0 {
		deps.PostsPerDay = 2
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	return &CommandHandler{
		client:      client,
		postRepo:    deps.Posts,
		stats:       deps.Stats,
		generator:   deps.Generator,
		hashtags:    deps.Hashtags,
		timing:      deps.Timing,
		scheduler:   deps.Scheduler,
		location:    deps.Location,
		postsPerDay: deps.PostsPerDay,
		log:         deps.Log,
	}
}

// parseGenerateArgs reads `<platforms> <tone> [keywords...]` where platforms is
// a comma separated list or "all"
func parseGenerateArgs(args []string) (platforms []string, tone string, topic string, err error) {
	if len(args) < 2 {
		return nil, "", "", errUsage
	}

	if strings.EqualFold(args[0], "all") {
		platforms = agents.Platforms()
	} else {
		for _, name := range strings.Split(args[0], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			platforms = append(platforms, canonicalPlatform(name))
		}
	}
	if len(platforms) == 0 {
		return nil, "", "", errUsage
	}

	return platforms, args[1], strings.Join(args[2:], " "), nil
}

// canonicalPlatform maps "twitter" to "Twitter" and leaves unknown names as typed
func canonicalPlatform(name string) string {
	for _, platform := range agents.Platforms() {
		if strings.EqualFold(platform, name) {
			return platform
		}
	}
	return name
}

// HandleGenerate generates drafts, saves them and returns the announcement with the saved post IDs
func (h *CommandHandler) HandleGenerate(ctx context.Context, channelID string, args []string) (string, []string, error) {
	platforms, tone, topic, err := parseGenerateArgs(args)
	if err != nil {
		return "", nil, h.client.SendMessage(channelID,
			"Usage: `generate <platforms|all> <tone> [keywords...]`, e.g. `generate twitter,linkedin casual remote work`")
	}

	h.log.WithFields(logrus.Fields{"platforms": platforms, "tone": tone}).Info("📝 Generating drafts")

	generated, err := h.generator.Generate(platforms, tone, topic)
	if err != nil {
		if agents.IsValidationError(err) {
			return "", nil, h.client.SendMessage(channelID, fmt.Sprintf("❌ %v", err))
		}
		h.log.WithError(err).Error("❌ Failed to generate content")
		return "", nil, h.client.SendMessage(channelID, "❌ Failed to generate content. Please try again.")
	}

	var postIDs []string
	message := "🎯 *Generated Drafts*\n\n"
	for _, draft := range generated {
		post := models.NewPost(draft.Platform, draft.Content)
		if err := h.postRepo.Create(ctx, post); err != nil {
			h.log.WithError(err).WithField("platform", draft.Platform).Warn("⚠️ Failed to save draft")
			continue
		}
		postIDs = append(postIDs, post.ID)

		message += "━━━━━━━━━━━━━━━━━━\n"
		message += fmt.Sprintf("*Draft %d (%s):*\n\n", len(postIDs), draft.Platform)
		message += draft.Content + "\n\n"
	}

	if len(postIDs) == 0 {
		return "", nil, h.client.SendMessage(channelID, "❌ Failed to save drafts. Please try again.")
	}

	message += "━━━━━━━━━━━━━━━━━━\n\n"
	message += "💡 *React to approve:*\n"
	message += "• ✅ to approve all drafts\n"
	message += "• ❌ to reject all drafts\n"
	message += "• 1️⃣ 2️⃣ 3️⃣ 4️⃣ to keep only that draft\n"

	return message, postIDs, nil
}

// HandleHashtags suggests hashtags for `<platform> <text...>`
func (h *CommandHandler) HandleHashtags(ctx context.Context, channelID string, args []string) error {
	if len(args) < 2 {
		return h.client.SendMessage(channelID, "Usage: `hashtags <platform> <text>`")
	}

	platform := canonicalPlatform(args[0])
	count := agents.DefaultHashtagCount
	if profile, err := agents.ProfileFor(platform); err == nil {
		count = profile.HashtagCount
	}

	tags := h.hashtags.ExtractHashtags(strings.Join(args[1:], " "), platform, count)
	return h.client.SendMessage(channelID, fmt.Sprintf("🏷️ *Suggested hashtags for %s:*\n%s", platform, strings.Join(tags, " ")))
}

// HandleBestTime reports the best posting hours from engagement history
func (h *CommandHandler) HandleBestTime(ctx context.Context, channelID string) error {
	posts, err := h.postRepo.GetEngaged(ctx)
	if err != nil {
		h.log.WithError(err).Error("❌ Failed to fetch engaged posts")
		return h.client.SendMessage(channelID, "❌ Failed to calculate best posting time")
	}

	times, err := h.timing.BestPostingTimes(agents.SamplesFromPosts(posts), agents.DefaultTopN)
	if errors.Is(err, agents.ErrNoData) {
		return h.client.SendMessage(channelID, "📭 No engagement recorded yet. Publish some posts and record their engagement first!")
	}
	if err != nil {
		h.log.WithError(err).Error("❌ Failed to calculate best posting time")
		return h.client.SendMessage(channelID, "❌ Failed to calculate best posting time")
	}

	message := "⏰ *Best Times to Post*\n\n"
	for i, slot := range times {
		message += fmt.Sprintf("%d. *%s* (avg engagement %.1f)\n", i+1, slot.Time, slot.AvgEngagement)
	}
	return h.client.SendMessage(channelID, message)
}

// parsePostsPerDay reads the optional `schedule [1-4]` argument
func parsePostsPerDay(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	postsPerDay, err := strconv.Atoi(args[0])
	if err != nil || postsPerDay < 1 || postsPerDay > 4 {
		return 0, errUsage
	}
	return postsPerDay, nil
}

// HandleSchedule schedules approved posts
func (h *CommandHandler) HandleSchedule(ctx context.Context, channelID string, args []string) error {
	h.log.WithField("args", args).Info("📅 Handling schedule command")

	postsPerDay, err := parsePostsPerDay(args, h.postsPerDay)
	if err != nil {
		return h.client.SendMessage(channelID, "❌ Posts per day must be between 1 and 4")
	}

	config := agents.ScheduleConfig{
		PostsPerDay: postsPerDay,
		StartDate:   time.Now().In(h.location).AddDate(0, 0, 1),
		Timezone:    h.location.String(),
	}

	scheduledCount, err := h.scheduler.ScheduleApprovedPosts(ctx, config)
	if err != nil {
		h.log.WithError(err).Error("❌ Failed to schedule posts")
		return h.client.SendMessage(channelID, "❌ Failed to schedule posts. Please try again.")
	}

	if scheduledCount == 0 {
		return h.client.SendMessage(channelID, "📭 No approved posts to schedule. Approve some drafts first with ✅ reaction!")
	}

	schedule, err := h.scheduler.GetSchedule(ctx, 7)
	if err != nil {
		h.log.WithError(err).Warn("⚠️ Failed to get schedule")
	}

	message := fmt.Sprintf("✅ *Scheduled %d posts!*\n\n", scheduledCount)
	message += fmt.Sprintf("📊 Posting %d times per day\n\n", postsPerDay)

	if len(schedule) > 0 {
		message += "*Upcoming Posts:*\n"
		for i, post := range schedule {
			if i >= 10 {
				message += fmt.Sprintf("_...and %d more_\n", len(schedule)-10)
				break
			}
			message += fmt.Sprintf("%d. %s on %s\n   _%s_\n\n", i+1, h.formatSlot(post), post.Platform, preview(post.Content, 80))
		}
	}

	message += "\n🚀 Posts will be published automatically at scheduled times!"

	return h.client.SendMessage(channelID, message)
}

// HandleViewSchedule shows the current schedule
func (h *CommandHandler) HandleViewSchedule(ctx context.Context, channelID string, days int) error {
	if days <= 0 {
		days = 7
	}

	schedule, err := h.scheduler.GetSchedule(ctx, days)
	if err != nil {
		return h.client.SendMessage(channelID, "❌ Failed to fetch schedule")
	}

	if len(schedule) == 0 {
		return h.client.SendMessage(channelID, "📭 No posts scheduled. Use `schedule` to schedule approved posts!")
	}

	message := fmt.Sprintf("📅 *Posting Schedule* (Next %d days)\n\n", days)
	for i, post := range schedule {
		message += fmt.Sprintf("*%d. %s* on %s\n%s\n\n", i+1, h.formatSlot(post), post.Platform, preview(post.Content, 80))
	}
	message += fmt.Sprintf("\n_Total: %d scheduled posts_", len(schedule))

	return h.client.SendMessage(channelID, message)
}

// HandleListDrafts shows all pending drafts
func (h *CommandHandler) HandleListDrafts(ctx context.Context, channelID string) error {
	drafts, err := h.postRepo.GetByStatus(ctx, models.StatusDraft)
	if err != nil {
		return h.client.SendMessage(channelID, "❌ Failed to fetch drafts")
	}

	if len(drafts) == 0 {
		return h.client.SendMessage(channelID, "📭 No pending drafts. Use `generate` to create some!")
	}

	message := fmt.Sprintf("📝 *Pending Drafts* (%d)\n\n", len(drafts))
	for i, draft := range drafts {
		message += fmt.Sprintf("*Draft %d (%s):*\n%s\n\n", i+1, draft.Platform, preview(draft.Content, 100))

		if i >= 4 && len(drafts) > 5 {
			message += fmt.Sprintf("_...and %d more_\n", len(drafts)-5)
			break
		}
	}

	return h.client.SendMessage(channelID, message)
}

// HandleStats shows engagement totals per platform
func (h *CommandHandler) HandleStats(ctx context.Context, channelID string) error {
	summaries, err := h.stats.PlatformSummary(ctx)
	if err != nil {
		h.log.WithError(err).Error("❌ Failed to fetch analytics")
		return h.client.SendMessage(channelID, "Failed to fetch stats")
	}

	if len(summaries) == 0 {
		return h.client.SendMessage(channelID, "📭 No posts yet.")
	}

	var totalPosts, totalEngagement int64
	message := "*Engagement by Platform*\n\n"
	for _, summary := range summaries {
		message += fmt.Sprintf("• %s: %d posts, %d engagement\n", summary.Platform, summary.PostCount, summary.TotalEngagement)
		totalPosts += summary.PostCount
		totalEngagement += summary.TotalEngagement
	}
	message += fmt.Sprintf("\nTotal: *%d* posts, *%d* engagement", totalPosts, totalEngagement)

	return h.client.SendMessage(channelID, message)
}

func (h *CommandHandler) formatSlot(post *models.Post) string {
	slot, ok := post.SlotIn(h.location)
	if !ok {
		return "unknown"
	}
	return slot.Format(slotFormat)
}

func preview(content string, limit int) string {
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	return string([]rune(content)[:limit]) + "..."
}
