package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/config"
)

// Client adapts the Telegram bot API to the chat pipeline. Model output
// is sanitized to Telegram-supported HTML and split at the message size
// limit; a failed HTML send falls back to plain text.
type Client struct {
	bot *bot.Bot
}

func NewClient(b *bot.Bot) *Client {
	return &Client{bot: b}
}

// Reply sends text as a reply to replyTo, splitting long messages. It
// returns the Telegram id of the last delivered part, which history
// records use for reply-threading.
func (c *Client) Reply(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	text = SanitizeHTML(text)
	parts := SplitMessage(text, config.MaxTelegramMessageLen)

	lastID := 0
	for _, part := range parts {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeHTML,
		}
		if replyTo != 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo}
			replyTo = 0 // only reply to first part
		}

		msg, err := c.bot.SendMessage(ctx, params)
		if err != nil {
			slog.Warn("html send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			msg, err = c.bot.SendMessage(ctx, params)
			if err != nil {
				return 0, fmt.Errorf("send message: %w", err)
			}
		}
		lastID = msg.ID
	}
	return lastID, nil
}

// Send delivers a standalone HTML message, falling back to plain text.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	_, err := c.bot.SendMessage(ctx, params)
	if err != nil {
		params.ParseMode = ""
		if _, err = c.bot.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// SendTyping emits one "typing" chat action. Used as the presence
// indicator's signal function.
func (c *Client) SendTyping(ctx context.Context, chatID int64) error {
	_, err := c.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	return err
}

// Delete removes a message, e.g. one dropped because its user already
// has a dispatch in flight.
func (c *Client) Delete(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}
