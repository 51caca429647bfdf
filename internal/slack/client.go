package slack

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Messenger is what the handlers need from Slack
type Messenger interface {
	SendMessage(channelID, message string) error
	PostMessage(channelID, message string) (string, error)
	BotID() string
}

type Client struct {
	api   *slack.Client
	botID string
}

// NewClient authenticates the bot token and remembers the bot's user ID
func NewClient(token string, options ...slack.Option) (*Client, error) {
	api := slack.New(token, options...)

	authTest, err := api.AuthTest()
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Slack: %w", err)
	}

	return &Client{
		api:   api,
		botID: authTest.UserID,
	}, nil
}

func (c *Client) BotID() string {
	return c.botID
}

func (c *Client) SendMessage(channelID, message string) error {
	_, err := c.PostMessage(channelID, message)
	return err
}

// PostMessage sends text and returns the message timestamp, which reactions refer back to
func (c *Client) PostMessage(channelID, message string) (string, error) {
	_, timestamp, err := c.api.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}
	return timestamp, nil
}
