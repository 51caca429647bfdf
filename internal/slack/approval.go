package slack

import (
	"context"
	"fmt"
	"sync"

	"github.com/shubh-37/social-content-engine/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

// draftReactions maps numbered reactions to the draft they keep
var draftReactions = map[string]int{
	"one":   0,
	"two":   1,
	"three": 2,
	"four":  3,
}

type ApprovalHandler struct {
	client   Messenger
	postRepo PostStore
	log      logrus.FieldLogger

	mu         sync.Mutex
	draftCache map[string][]string // messageTS -> []postIDs
}

func NewApprovalHandler(client Messenger, postRepo PostStore, log logrus.FieldLogger) *ApprovalHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ApprovalHandler{
		client:     client,
		postRepo:   postRepo,
		log:        log,
		draftCache: make(map[string][]string),
	}
}

// StoreDraftMessage stores the mapping between Slack message and post IDs
func (h *ApprovalHandler) StoreDraftMessage(messageTS string, postIDs []string) {
	h.mu.Lock()
	h.draftCache[messageTS] = postIDs
	h.mu.Unlock()
	h.log.WithFields(logrus.Fields{"message_ts": messageTS, "post_ids": postIDs}).Info("📌 Stored draft message mapping")
}

func (h *ApprovalHandler) draftsFor(messageTS string) ([]string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	postIDs, ok := h.draftCache[messageTS]
	return postIDs, ok
}

// HandleReaction processes reactions added to draft announcements
func (h *ApprovalHandler) HandleReaction(ctx context.Context, event *slackevents.ReactionAddedEvent) error {
	postIDs, exists := h.draftsFor(event.Item.Timestamp)
	if !exists {
		return nil
	}

	h.log.WithFields(logrus.Fields{"reaction": event.Reaction, "message_ts": event.Item.Timestamp}).Info("👍 Reaction on drafts")

	switch event.Reaction {
	case "white_check_mark", "heavy_check_mark":
		return h.approveDrafts(ctx, event.Item.Channel, postIDs)
	case "x":
		return h.rejectDrafts(ctx, event.Item.Channel, postIDs)
	}

	if index, ok := draftReactions[event.Reaction]; ok {
		return h.approveSpecificDraft(ctx, event.Item.Channel, postIDs, index)
	}

	return nil
}

// approveSpecificDraft approves one draft and rejects its siblings
func (h *ApprovalHandler) approveSpecificDraft(ctx context.Context, channelID string, postIDs []string, index int) error {
	if index >= len(postIDs) {
		return h.client.SendMessage(channelID, "❌ Invalid draft number")
	}

	postID := postIDs[index]
	if err := h.postRepo.UpdateStatus(ctx, postID, models.StatusApproved); err != nil {
		h.log.WithError(err).WithField("post_id", postID).Warn("⚠️ Failed to approve post")
		return err
	}

	for i, otherID := range postIDs {
		if i == index {
			continue
		}
		if err := h.postRepo.UpdateStatus(ctx, otherID, models.StatusRejected); err != nil {
			h.log.WithError(err).WithField("post_id", otherID).Warn("⚠️ Failed to reject post")
		}
	}

	message := fmt.Sprintf("✅ Approved Draft %d! Ready for scheduling.\n\nUse `schedule` to schedule it.", index+1)
	return h.client.SendMessage(channelID, message)
}

func (h *ApprovalHandler) approveDrafts(ctx context.Context, channelID string, postIDs []string) error {
	approvedCount := h.setStatus(ctx, postIDs, models.StatusApproved)
	message := fmt.Sprintf("✅ Approved %d draft(s)! They're ready for scheduling.\n\nUse `schedule` to schedule them for posting.", approvedCount)
	return h.client.SendMessage(channelID, message)
}

func (h *ApprovalHandler) rejectDrafts(ctx context.Context, channelID string, postIDs []string) error {
	rejectedCount := h.setStatus(ctx, postIDs, models.StatusRejected)
	message := fmt.Sprintf("❌ Rejected %d draft(s). Generate new ones with `generate`", rejectedCount)
	return h.client.SendMessage(channelID, message)
}

func (h *ApprovalHandler) setStatus(ctx context.Context, postIDs []string, status string) int {
	var count int
	for _, postID := range postIDs {
		if err := h.postRepo.UpdateStatus(ctx, postID, status); err != nil {
			h.log.WithError(err).WithField("post_id", postID).Warn("⚠️ Failed to update post")
			continue
		}
		count++
	}
	return count
}
