// Package notify delivers notification texts to the messaging transport.
//
// Delivery is best-effort: the outcome is returned as a Result value so the
// caller can see (and deliberately ignore) failures, and it is never turned
// into a further notification.
package notify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hwbot/internal/storage"
	"hwbot/pkg/logx"
)

// Sender is the outbound messaging transport.
type Sender interface {
	SendText(ctx context.Context, text string) error
}

type Config struct {
	RatePerSec int
}

// Result is the outcome of one delivery attempt.
type Result struct {
	Delivered bool
	Err       error
}

type Service struct {
	sender Sender
	store  storage.Store
	log    logx.Logger

	mu      sync.Mutex
	limiter *rate.Limiter
}

func New(cfg Config, sender Sender, store storage.Store, log logx.Logger) *Service {
	s := &Service{sender: sender, store: store, log: log}
	s.Apply(cfg)
	return s
}

// Apply swaps the outgoing rate limit at runtime.
func (s *Service) Apply(cfg Config) {
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	s.mu.Lock()
	s.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	s.mu.Unlock()
}

// Send attempts delivery of text and records the attempt in the history
// store. Failures are logged here; the returned Result is informational.
func (s *Service) Send(ctx context.Context, text string) Result {
	s.mu.Lock()
	lim := s.limiter
	s.mu.Unlock()

	if err := lim.Wait(ctx); err != nil {
		return Result{Err: err}
	}

	err := s.sender.SendText(ctx, text)

	rec := storage.SendRecord{At: time.Now(), Text: text, Delivered: err == nil}
	if err != nil {
		rec.Error = err.Error()
	}
	if aerr := s.store.AppendSend(ctx, rec); aerr != nil {
		s.log.Warn("failed to record send history", logx.Err(aerr))
	}

	if err != nil {
		s.log.Error("notification send failed", logx.Err(err))
		return Result{Err: err}
	}
	s.log.Debug("notification sent", logx.String("text", text))
	return Result{Delivered: true}
}
