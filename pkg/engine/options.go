package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Policy decides what settle does after a failed remote call.
type Policy int

const (
	// PolicyResync leaves the optimistic state in place and lets the
	// following resync restore whatever the server holds.
	PolicyResync Policy = iota
	// PolicyRollback restores the pre-mutation snapshot on failure before
	// resyncing, provided no later mutation was applied on top of it.
	PolicyRollback
)

func (p Policy) String() string {
	switch p {
	case PolicyRollback:
		return "rollback"
	default:
		return "resync"
	}
}

// ParsePolicy maps a config value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resync":
		return PolicyResync, nil
	case "rollback":
		return PolicyRollback, nil
	default:
		return PolicyResync, fmt.Errorf("engine: unknown sync policy %q", s)
	}
}

// DefaultStaleTime is how long a resynced list is considered fresh.
const DefaultStaleTime = 3 * time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the settle policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLogger sets the logger for phase tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStaleTime sets how long a resynced list is served by Items before a
// background refresh is started. Zero refreshes on every Items call.
func WithStaleTime(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.staleTime = d
		}
	}
}

// WithIDGenerator sets the source of temporary ids for optimistic creates.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}
