package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"taskcal-bot/internal/conversation"
	"taskcal-bot/internal/model"
	pkgLog "taskcal-bot/pkg/log"
	pkgResponse "taskcal-bot/pkg/response"
	pkgTelegram "taskcal-bot/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in the
// background, since a conversation step may wait on Google APIs. Updates of
// one chat are processed in the order they arrived.
// @Summary Telegram webhook
// @Description Receives Telegram Bot API updates
// @Tags Telegram
// @Accept json
// @Produce json
// @Param update body pkgTelegram.Update true "Telegram update"
// @Success 200 {object} pkgResponse.Resp
// @Failure 400 {object} pkgResponse.Resp
// @Failure 401 {object} pkgResponse.Resp
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefixWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, channel posts, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	h.enqueue(update)

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// ProcessUpdate routes one update to a command or the conversation. A failure
// is reported to the chat on a best-effort basis and returned.
func (h *handler) ProcessUpdate(ctx context.Context, update pkgTelegram.Update) (err error) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}

	ctx = pkgLog.WithTraceID(ctx, "")
	sc := scopeOf(msg)

	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "%s: panic in chat %d: %v\n%s", LogPrefixProcess, sc.ChatID, r, debug.Stack())
			h.uc.Discard(ctx, sc)
			h.notify(ctx, sc.ChatID, MessageInternalError)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if !h.limiter.Allow(sc.ChatID) {
		h.l.Warnf(ctx, "%s: chat %d rate limited", LogPrefixProcess, sc.ChatID)
		h.notify(ctx, sc.ChatID, MessageSlowDown)
		return nil
	}

	if err := h.processMessage(ctx, sc, msg); err != nil {
		h.l.Errorf(ctx, "%s: chat %d: %v", LogPrefixProcess, sc.ChatID, err)
		h.notify(ctx, sc.ChatID, MessageInternalError)
		return err
	}
	return nil
}

func (h *handler) processMessage(ctx context.Context, sc model.Scope, msg *pkgTelegram.Message) error {
	if cmd, ok := parseCommand(msg.Text); ok {
		return h.handleCommand(ctx, sc, cmd)
	}

	input := conversation.Input{Text: msg.Text}
	if msg.Location != nil {
		input.Location = &conversation.Location{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	} else if strings.TrimSpace(msg.Text) == "" {
		// Stickers, photos and the like.
		return nil
	}

	out, err := h.uc.Handle(ctx, sc, input)
	if err != nil {
		return fmt.Errorf("handle: %w", err)
	}
	if !out.Handled {
		return h.bot.SendMessage(ctx, sc.ChatID, conversation.MessageNoTask)
	}
	return h.sendReplies(ctx, sc.ChatID, out.Replies)
}

func (h *handler) sendReplies(ctx context.Context, chatID int64, replies []conversation.Reply) error {
	for _, r := range replies {
		req := pkgTelegram.SendMessageRequest{ChatID: chatID, Text: r.Text}
		switch r.Keyboard {
		case conversation.KeyboardLocation:
			req.ReplyMarkup = pkgTelegram.LocationRequestKeyboard(conversation.ButtonLocation)
		case conversation.KeyboardRemove:
			req.ReplyMarkup = pkgTelegram.RemoveKeyboard()
		}
		if err := h.bot.Send(ctx, req); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return nil
}

// notify sends a message and only logs a failure.
func (h *handler) notify(ctx context.Context, chatID int64, text string) {
	if err := h.bot.SendMessage(ctx, chatID, text); err != nil {
		h.l.Warnf(ctx, "%s: failed to notify chat %d: %v", LogPrefixProcess, chatID, err)
	}
}

func scopeOf(msg *pkgTelegram.Message) model.Scope {
	sc := model.Scope{ChatID: msg.Chat.ID}
	if msg.From != nil {
		sc.UserID = msg.From.ID
		sc.Username = msg.From.Username
	}
	return sc
}
