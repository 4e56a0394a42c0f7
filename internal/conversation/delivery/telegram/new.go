package telegram

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"taskcal-bot/internal/conversation"
	pkgLog "taskcal-bot/pkg/log"
	pkgQuote "taskcal-bot/pkg/quote"
	"taskcal-bot/pkg/ratelimit"
	pkgTelegram "taskcal-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	// HandleWebhook acknowledges a webhook update and processes it in the background.
	HandleWebhook(c *gin.Context)

	// ProcessUpdate handles one update synchronously.
	ProcessUpdate(ctx context.Context, update pkgTelegram.Update) error
}

type handler struct {
	l       pkgLog.Logger
	uc      conversation.UseCase
	bot     *pkgTelegram.Bot
	quotes  *pkgQuote.Client
	limiter *ratelimit.Limiter[int64]

	// Webhook updates waiting per chat; a key is present while its worker runs.
	queuesMu sync.Mutex
	queues   map[int64][]pkgTelegram.Update
}

// New creates a new Telegram delivery handler. quotes may be nil to disable /quote.
func New(
	l pkgLog.Logger,
	uc conversation.UseCase,
	bot *pkgTelegram.Bot,
	quotes *pkgQuote.Client,
	rateLimitPerMin int,
) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		quotes:  quotes,
		limiter: ratelimit.New[int64](rateLimitPerMin),
		queues:  make(map[int64][]pkgTelegram.Update),
	}
}
