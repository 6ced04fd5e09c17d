// Package monitor runs the poll/parse/notify loop.
//
// The loop is strictly sequential: one fetch, one format, one send per
// cycle, with exactly one sleep between cycles regardless of which branch
// the cycle took. All cycle state lives in an explicit State value so a
// cycle can be driven repeatedly in tests.
package monitor

import (
	"context"
	"sync"
	"time"

	"hwbot/internal/config"
	"hwbot/internal/notify"
	"hwbot/internal/practicum"
	"hwbot/pkg/logx"
)

// failurePrefix opens every generic failure notification.
const failurePrefix = "Сбой в работе программы: "

// Fetcher is the homework-status API.
type Fetcher interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}

// Notifier is the best-effort outbound channel.
type Notifier interface {
	Send(ctx context.Context, text string) notify.Result
}

type Config struct {
	Schedule      string
	SeedTimestamp int64
}

// State is the loop state threaded through each cycle.
// LastSent deduplicates: a message identical to the previous one, whether a
// status change or a failure report, is suppressed.
type State struct {
	Cursor   int64
	LastSent string
}

type Monitor struct {
	client   Fetcher
	notifier Notifier
	log      logx.Logger

	seed int64

	mu   sync.Mutex
	plan config.ParsedSpec
}

func New(client Fetcher, notifier Notifier, cfg Config, log logx.Logger) (*Monitor, error) {
	plan, err := config.ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	return &Monitor{
		client:   client,
		notifier: notifier,
		log:      log,
		seed:     cfg.SeedTimestamp,
		plan:     plan,
	}, nil
}

// Apply swaps the poll schedule at runtime. The new schedule takes effect
// at the next sleep.
func (m *Monitor) Apply(cfg Config) error {
	plan, err := config.ParseSchedule(cfg.Schedule)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.plan = plan
	m.mu.Unlock()
	return nil
}

func (m *Monitor) nextDelay(now time.Time) time.Duration {
	m.mu.Lock()
	plan := m.plan
	m.mu.Unlock()
	return plan.Next(now)
}

// Run blocks until ctx is cancelled. It never exits on its own: every
// failure inside a cycle is converted into a notification, not a return.
func (m *Monitor) Run(ctx context.Context) error {
	st := State{Cursor: m.seed}
	m.log.Info("homework monitor started", logx.Int64("cursor", st.Cursor))

	for {
		st = m.Cycle(ctx, st)

		t := time.NewTimer(m.nextDelay(time.Now()))
		select {
		case <-ctx.Done():
			t.Stop()
			m.log.Info("homework monitor stopped")
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Cycle performs one POLLING transition and returns the next state.
func (m *Monitor) Cycle(ctx context.Context, st State) State {
	doc, err := m.client.Fetch(ctx, st.Cursor)
	if err != nil {
		return m.reportFailure(ctx, st, err)
	}

	homeworks, err := practicum.Homeworks(doc)
	if err != nil {
		return m.reportFailure(ctx, st, err)
	}
	if len(homeworks) == 0 {
		// Nothing reviewed yet: no send, cursor stays put.
		m.log.Debug("no homework status updates", logx.Int64("cursor", st.Cursor))
		return st
	}

	current, err := practicum.CurrentDate(doc)
	if err != nil {
		return m.reportFailure(ctx, st, err)
	}
	st.Cursor = current

	text, err := practicum.FormatStatus(homeworks[0])
	if err != nil {
		return m.reportFailure(ctx, st, err)
	}

	if text == st.LastSent {
		m.log.Debug("status unchanged, notification suppressed")
		return st
	}
	st.LastSent = text
	res := m.notifier.Send(ctx, text)
	_ = res // delivery is best-effort; the notifier already logged the outcome

	return st
}

// reportFailure converts a cycle error into a user-facing notification,
// deduplicated against the previous message exactly like a status change.
func (m *Monitor) reportFailure(ctx context.Context, st State, err error) State {
	switch kind := practicum.KindOf(err); kind {
	case practicum.KindInvalidCursor,
		practicum.KindConnection,
		practicum.KindUnexpectedStatus,
		practicum.KindMalformedResponse,
		practicum.KindServerRejected,
		practicum.KindNotAMapping,
		practicum.KindMissingKey,
		practicum.KindWrongType,
		practicum.KindMissingName,
		practicum.KindUnknownStatus:
		m.log.Error("poll cycle failed", logx.String("kind", kind.String()), logx.Err(err))
	default:
		m.log.Error("poll cycle failed with unclassified error", logx.Err(err))
	}

	text := failurePrefix + err.Error()
	if text == st.LastSent {
		return st
	}
	st.LastSent = text
	res := m.notifier.Send(ctx, text)
	_ = res // best-effort, same as the status path

	return st
}
