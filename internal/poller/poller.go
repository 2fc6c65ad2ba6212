package poller

import (
	"context"
	"errors"
	"stockdash/internal/logger"
	"time"
)

// Poller runs Fn immediately and then once per Interval until ctx is
// cancelled. Fn runs on the polling goroutine, so a slow run delays the
// next tick instead of overlapping it.
type Poller struct {
	Interval time.Duration
	// per run deadline, defaults to Interval
	Timeout time.Duration
	Fn      func(ctx context.Context) error
}

func (p Poller) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if p.Fn == nil {
		return errors.New("poll function is required")
	}
	log := logger.FromContext(ctx)

	p.runOnce(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("poller stopped")
			return nil
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p Poller) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = p.Interval
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Fn(runCtx); err != nil {
		logger.FromContext(ctx).Warnf("poll failed: %v", err)
	}
}
