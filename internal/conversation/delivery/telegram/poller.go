package telegram

import (
	"context"
	"time"

	pkgLog "taskcal-bot/pkg/log"
	pkgTelegram "taskcal-bot/pkg/telegram"
)

// Poller pulls updates with getUpdates and feeds them to a Handler in order.
type Poller struct {
	l        pkgLog.Logger
	bot      *pkgTelegram.Bot
	h        Handler
	interval time.Duration
	timeout  int
	offset   int64
}

// NewPoller creates a long-polling loop. interval spaces consecutive polls.
func NewPoller(l pkgLog.Logger, bot *pkgTelegram.Bot, h Handler, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller{
		l:        l,
		bot:      bot,
		h:        h,
		interval: interval,
		timeout:  DefaultPollTimeout,
	}
}

// Run removes any webhook and polls until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.bot.DeleteWebhook(ctx); err != nil {
		return err
	}
	p.l.Infof(ctx, "%s: polling every %s", LogPrefixPoller, p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.pollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.l.Warnf(ctx, "%s: poll error: %v", LogPrefixPoller, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) error {
	updates, err := p.bot.GetUpdates(ctx, p.offset, p.timeout)
	if err != nil {
		return err
	}

	// Updates in flight finish even when shutdown starts.
	procCtx := context.WithoutCancel(ctx)
	for _, u := range updates {
		if u.UpdateID >= p.offset {
			p.offset = u.UpdateID + 1
		}
		if err := p.h.ProcessUpdate(procCtx, u); err != nil {
			p.l.Errorf(ctx, "%s: update %d: %v", LogPrefixPoller, u.UpdateID, err)
		}
	}
	return nil
}
