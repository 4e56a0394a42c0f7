package telegram

import (
	"context"
	"fmt"
	"strings"

	"taskcal-bot/internal/model"
)

// parseCommand returns the lower-cased command of a "/cmd@bot args" message.
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), true
}

func (h *handler) handleCommand(ctx context.Context, sc model.Scope, cmd string) error {
	switch cmd {
	case CommandStart:
		return h.bot.SendMessage(ctx, sc.ChatID, MessageWelcome)

	case CommandHelp:
		return h.bot.SendMessageWithMode(ctx, sc.ChatID, MessageHelp, "Markdown")

	case CommandQuote:
		return h.sendQuote(ctx, sc.ChatID)

	case CommandTask:
		out, err := h.uc.Start(ctx, sc)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		return h.sendReplies(ctx, sc.ChatID, out.Replies)

	case CommandCancel:
		out, err := h.uc.Cancel(ctx, sc)
		if err != nil {
			return fmt.Errorf("cancel: %w", err)
		}
		if !out.Handled {
			return h.bot.SendMessage(ctx, sc.ChatID, MessageNothingToStop)
		}
		return h.sendReplies(ctx, sc.ChatID, out.Replies)
	}

	return h.bot.SendMessage(ctx, sc.ChatID, MessageUnknownCommand)
}

func (h *handler) sendQuote(ctx context.Context, chatID int64) error {
	if h.quotes == nil {
		return h.bot.SendMessage(ctx, chatID, MessageNoQuote)
	}
	q, err := h.quotes.Fetch(ctx)
	if err != nil {
		h.l.Warnf(ctx, "%s: quote: %v", LogPrefixProcess, err)
		return h.bot.SendMessage(ctx, chatID, MessageNoQuote)
	}
	return h.bot.SendMessage(ctx, chatID, q)
}
