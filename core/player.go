package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/tradeoff/schema"
)

// DefaultPlayInterval is how long the player dwells on each event.
const DefaultPlayInterval = 3 * time.Second

// ErrEmptyTimeline is returned when a player has nothing to play.
var ErrEmptyTimeline = errors.New("timeline has no events")

// Player steps through a decision timeline on a timer.
type Player struct {
	events   []schema.DecisionEvent
	interval time.Duration
}

// NewPlayer returns a player for the given events. A non-positive interval
// falls back to DefaultPlayInterval.
func NewPlayer(events []schema.DecisionEvent, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultPlayInterval
	}
	return &Player{events: events, interval: interval}
}

// Len returns the number of events.
func (p *Player) Len() int { return len(p.events) }

// Interval returns the dwell time per event.
func (p *Player) Interval() time.Duration { return p.interval }

// Next returns the index after i, clamped to the last event.
func (p *Player) Next(i int) int {
	return min(max(i+1, 0), len(p.events)-1)
}

// Prev returns the index before i, clamped to the first event.
func (p *Player) Prev(i int) int {
	return max(min(i-1, len(p.events)-1), 0)
}

// Play calls onStep for the event at start immediately and then for each
// following event once per interval. It returns nil after the last event
// and the context error when cancelled first. The ticker is always stopped.
func (p *Player) Play(ctx context.Context, start int, onStep func(int, schema.DecisionEvent)) error {
	if len(p.events) == 0 {
		return ErrEmptyTimeline
	}
	if start < 0 || start >= len(p.events) {
		return fmt.Errorf("start index %d out of range [0, %d)", start, len(p.events))
	}

	onStep(start, p.events[start])
	if start == len(p.events)-1 {
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for i := start + 1; i < len(p.events); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			onStep(i, p.events[i])
		}
	}
	return nil
}
