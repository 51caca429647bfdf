package slack

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// Server receives the Slack Events API callbacks; mount it at /slack/events
type Server struct {
	messageHandler  *MessageHandler
	approvalHandler *ApprovalHandler
	signingSecret   string
	log             logrus.FieldLogger
}

func NewServer(messageHandler *MessageHandler, approvalHandler *ApprovalHandler, signingSecret string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithField("secret_length", len(signingSecret)).Info("🔐 Slack signing secret configured")
	return &Server{
		messageHandler:  messageHandler,
		approvalHandler: approvalHandler,
		signingSecret:   signingSecret,
		log:             log,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.log.WithError(err).Error("❌ Error reading body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sv, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
	if err != nil {
		s.log.WithError(err).Warn("❌ Error creating secrets verifier")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := sv.Write(body); err != nil {
		s.log.WithError(err).Error("❌ Error writing to verifier")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := sv.Ensure(); err != nil {
		s.log.WithError(err).Warn("❌ Error verifying signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		s.log.WithError(err).Error("❌ Error parsing event")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			s.log.WithError(err).Error("❌ Error unmarshaling challenge")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.log.Info("✅ Responding to URL verification challenge")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge.Challenge))
		return
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		innerEvent := eventsAPIEvent.InnerEvent
		ctx := r.Context()

		switch ev := innerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			if err := s.messageHandler.HandleMessage(ctx, ev); err != nil {
				s.log.WithError(err).Error("❌ Error handling message")
			}

		case *slackevents.AppMentionEvent:
			s.log.WithField("channel", ev.Channel).Info("📣 App mention event received")
			if err := s.messageHandler.HandleAppMention(ctx, ev); err != nil {
				s.log.WithError(err).Error("❌ Error handling mention")
			}

		case *slackevents.ReactionAddedEvent:
			if err := s.approvalHandler.HandleReaction(ctx, ev); err != nil {
				s.log.WithError(err).Error("❌ Error handling reaction")
			}

		default:
			s.log.WithField("type", innerEvent.Type).Debug("⚠️ Unsupported event type")
		}
	}

	w.WriteHeader(http.StatusOK)
}
