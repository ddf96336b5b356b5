// Package ratelimit holds the fixed-window counting rules shared by every
// counter store.
package ratelimit

import (
	"fmt"
	"time"
)

// Counter is the persisted state for one rate-limit key.
type Counter struct {
	Key         string
	Count       int
	WindowStart time.Time
}

// Action tells a limiter what to write back after a decision.
type Action int

const (
	// ActionReset starts a new window with count=1.
	ActionReset Action = iota
	// ActionIncrement adds one to the current window.
	ActionIncrement
	// ActionDeny leaves the counter untouched.
	ActionDeny
)

func (a Action) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionIncrement:
		return "increment"
	case ActionDeny:
		return "deny"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Result is what a caller of the limiter sees.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Decision pairs the caller-facing result with the store mutation it implies.
type Decision struct {
	Result
	Action Action
}

// Evaluate applies the fixed-window rules to the current counter (nil when the
// key has never been seen). A window covers [WindowStart, WindowStart+window);
// at or after its end the counter is reset rather than incremented.
func Evaluate(c *Counter, limit int, window time.Duration, now time.Time) Decision {
	if c == nil || !now.Before(c.WindowStart.Add(window)) {
		return Decision{
			Result: Result{
				Allowed:   true,
				Remaining: limit - 1,
				ResetAt:   now.Add(window),
			},
			Action: ActionReset,
		}
	}

	resetAt := c.WindowStart.Add(window)

	if c.Count >= limit {
		return Decision{
			Result: Result{Allowed: false, Remaining: 0, ResetAt: resetAt},
			Action: ActionDeny,
		}
	}

	return Decision{
		Result: Result{
			Allowed:   true,
			Remaining: limit - (c.Count + 1),
			ResetAt:   resetAt,
		},
		Action: ActionIncrement,
	}
}
