package slack

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

type MessageHandler struct {
	client          Messenger
	commandHandler  *CommandHandler
	approvalHandler *ApprovalHandler
	log             logrus.FieldLogger
}

func NewMessageHandler(
	client Messenger,
	commandHandler *CommandHandler,
	approvalHandler *ApprovalHandler,
	log logrus.FieldLogger,
) *MessageHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MessageHandler{
		client:          client,
		commandHandler:  commandHandler,
		approvalHandler: approvalHandler,
		log:             log,
	}
}

// HandleMessage answers commands sent in a direct message to the bot
func (h *MessageHandler) HandleMessage(ctx context.Context, event *slackevents.MessageEvent) error {
	if event.BotID != "" || event.User == h.client.BotID() {
		return nil
	}

	if event.SubType != "" || event.ChannelType != "im" {
		return nil
	}

	if event.ThreadTimeStamp != "" && event.ThreadTimeStamp != event.TimeStamp {
		return nil
	}

	return h.route(ctx, event.Channel, strings.TrimSpace(event.Text))
}

// HandleAppMention answers commands addressed to the bot in a channel
func (h *MessageHandler) HandleAppMention(ctx context.Context, event *slackevents.AppMentionEvent) error {
	text := strings.TrimSpace(strings.Replace(event.Text, "<@"+h.client.BotID()+">", "", 1))
	return h.route(ctx, event.Channel, text)
}

func (h *MessageHandler) route(ctx context.Context, channelID, text string) error {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return h.sendHelpMessage(channelID)
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "help":
		return h.sendHelpMessage(channelID)

	case "generate":
		message, postIDs, err := h.commandHandler.HandleGenerate(ctx, channelID, args)
		if err != nil || len(postIDs) == 0 {
			return err
		}

		messageTS, err := h.client.PostMessage(channelID, message)
		if err != nil {
			return err
		}

		h.approvalHandler.StoreDraftMessage(messageTS, postIDs)
		return nil

	case "hashtags":
		return h.commandHandler.HandleHashtags(ctx, channelID, args)

	case "best":
		return h.commandHandler.HandleBestTime(ctx, channelID)

	case "drafts":
		return h.commandHandler.HandleListDrafts(ctx, channelID)

	case "schedule":
		return h.commandHandler.HandleSchedule(ctx, channelID, args)

	case "view", "show":
		if len(args) == 0 || strings.ToLower(args[0]) != "schedule" {
			break
		}
		days := 7
		if len(args) > 1 {
			if parsed, err := strconv.Atoi(args[1]); err == nil {
				days = parsed
			}
		}
		return h.commandHandler.HandleViewSchedule(ctx, channelID, days)

	case "stats":
		return h.commandHandler.HandleStats(ctx, channelID)
	}

	h.log.WithField("text", text).Debug("Unrecognized command")
	return h.client.SendMessage(channelID, "🤔 I didn't understand that. Try `help`.")
}

func (h *MessageHandler) sendHelpMessage(channelID string) error {
	helpText := `*Social Content Engine*

I draft posts for Instagram, LinkedIn, Twitter and Facebook, suggest hashtags and find the best time to post.

*Commands:*
- generate <platforms|all> <tone> [keywords...] - Draft posts (tones: professional, casual, humorous)
- hashtags <platform> <text> - Suggest hashtags
- best time - Best posting hours from past engagement
- drafts - View pending drafts
- schedule [1-4] - Schedule approved posts
- view schedule [days] - See posting schedule
- stats - Engagement by platform
- help - Show this help

*Workflow:*
1. Generate drafts: generate twitter,linkedin casual product launch
2. React with ✅ to approve all, ❌ to reject, or 1️⃣ 2️⃣ 3️⃣ 4️⃣ to keep one
3. Schedule: schedule 2 (2 posts/day)
4. Posts publish automatically!`

	return h.client.SendMessage(channelID, helpText)
}
