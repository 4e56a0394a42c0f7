package telegram

import (
	"context"

	pkgTelegram "taskcal-bot/pkg/telegram"
)

// enqueue schedules a webhook update behind earlier updates of the same chat.
// One worker per chat drains its queue in arrival order and exits when empty.
func (h *handler) enqueue(update pkgTelegram.Update) {
	chatID := update.Message.Chat.ID

	h.queuesMu.Lock()
	pending, running := h.queues[chatID]
	h.queues[chatID] = append(pending, update)
	h.queuesMu.Unlock()

	if !running {
		go h.drain(chatID)
	}
}

func (h *handler) drain(chatID int64) {
	// Detached from the request context, which is cancelled after the response.
	ctx := context.Background()
	for {
		h.queuesMu.Lock()
		pending := h.queues[chatID]
		if len(pending) == 0 {
			delete(h.queues, chatID)
			h.queuesMu.Unlock()
			return
		}
		next := pending[0]
		h.queues[chatID] = pending[1:]
		h.queuesMu.Unlock()

		if err := h.ProcessUpdate(ctx, next); err != nil {
			h.l.Errorf(ctx, "%s: update %d: %v", LogPrefixWebhook, next.UpdateID, err)
		}
	}
}
