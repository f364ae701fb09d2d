package core

import (
	"slices"
	"sync"

	"github.com/huangsam/tradeoff/schema"
)

// ChangeCause names the store operation that produced a change.
type ChangeCause string

// All change causes emitted by the Store.
const (
	CauseSet      ChangeCause = "set"
	CauseScenario ChangeCause = "scenario"
	CauseReset    ChangeCause = "reset"
)

// Change is delivered to subscribers after every mutation of the Store.
type Change struct {
	Cause      ChangeCause
	ScenarioID string // set for CauseScenario
	Snapshot   schema.Snapshot
	Metrics    schema.Metrics
}

// Listener receives store changes.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Store owns the current constraint values and notifies subscribers on change.
// It is safe for concurrent use; listeners run on the mutating goroutine,
// outside the lock, in registration order. Mutations and their notifications
// are serialized, so listeners see changes in the order they were applied.
// Listeners may read the store but must not mutate it.
type Store struct {
	notifyMu     sync.Mutex // held across a mutation and its delivery
	mu           sync.RWMutex
	constraints  []schema.Constraint
	defaults     []int
	index        map[schema.ConstraintID]int
	subs         []subscription
	nextSubID    int
	clampMetrics bool
}

// NewStore creates a Store over the given constraint table.
// A nil table means the built-in defaults. Initial values are clamped to bounds.
func NewStore(constraints []schema.Constraint, clampMetrics bool) *Store {
	if constraints == nil {
		constraints = schema.GetDefaultConstraints()
	}
	s := &Store{
		constraints:  slices.Clone(constraints),
		defaults:     make([]int, len(constraints)),
		index:        make(map[schema.ConstraintID]int, len(constraints)),
		clampMetrics: clampMetrics,
	}
	for i := range s.constraints {
		c := &s.constraints[i]
		c.Value = clampValue(*c, c.Value)
		s.defaults[i] = c.Value
		s.index[c.ID] = i
	}
	return s
}

// Get returns the constraint with the given id.
func (s *Store) Get(id schema.ConstraintID) (schema.Constraint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return schema.Constraint{}, false
	}
	return s.constraints[i], true
}

// Constraints returns a copy of every constraint in table order.
func (s *Store) Constraints() []schema.Constraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.constraints)
}

// Snapshot returns the current id -> value mapping.
func (s *Store) Snapshot() schema.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Metrics evaluates the current snapshot.
func (s *Store) Metrics() schema.Metrics {
	return EvaluateMetrics(s.Snapshot(), s.clampMetrics)
}

// SetConstraint clamps v to the constraint's bounds, snaps it to the step grid
// anchored at min, and stores it. It returns the stored value and whether the id
// was known; an unknown id leaves the store untouched.
func (s *Store) SetConstraint(id schema.ConstraintID, v int) (int, bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return 0, false
	}
	c := &s.constraints[i]
	c.Value = snapValue(*c, v)
	stored := c.Value
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Cause: CauseSet, Snapshot: snap})
	return stored, true
}

// ApplyScenario overwrites every constraint with the scenario's value for it,
// or with 100 when the scenario omits the id. Values are clamped but not snapped
// so that presets land exactly. Ids unknown to the store are ignored.
func (s *Store) ApplyScenario(scenario schema.Scenario) schema.Snapshot {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	for i := range s.constraints {
		c := &s.constraints[i]
		v, ok := scenario.Constraints[c.ID]
		if !ok {
			v = schema.DefaultConstraintValue
		}
		c.Value = clampValue(*c, v)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Cause: CauseScenario, ScenarioID: scenario.ID, Snapshot: snap})
	return snap.Clone()
}

// Reset restores every constraint to its initial value.
func (s *Store) Reset() schema.Snapshot {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	for i := range s.constraints {
		s.constraints[i].Value = s.defaults[i]
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Cause: CauseReset, Snapshot: snap})
	return snap.Clone()
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it. Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
		})
	}
}

// notify delivers change to a copy of the current subscriber list.
func (s *Store) notify(change Change) {
	s.mu.RLock()
	subs := slices.Clone(s.subs)
	s.mu.RUnlock()
	if len(subs) == 0 {
		return
	}
	change.Metrics = EvaluateMetrics(change.Snapshot, s.clampMetrics)
	for _, sub := range subs {
		sub.fn(Change{
			Cause:      change.Cause,
			ScenarioID: change.ScenarioID,
			Snapshot:   change.Snapshot.Clone(),
			Metrics:    change.Metrics,
		})
	}
}

func (s *Store) snapshotLocked() schema.Snapshot {
	snap := make(schema.Snapshot, len(s.constraints))
	for _, c := range s.constraints {
		snap[c.ID] = c.Value
	}
	return snap
}

// clampValue bounds v to [c.Min, c.Max].
func clampValue(c schema.Constraint, v int) int {
	return max(c.Min, min(v, c.Max))
}

// snapValue clamps v and moves it to the nearest point of the grid min + k*step.
// Ties round up; a grid point past max falls back one step.
func snapValue(c schema.Constraint, v int) int {
	v = clampValue(c, v)
	if c.Step <= 0 {
		return v
	}
	offset := v - c.Min
	k := offset / c.Step
	if 2*(offset%c.Step) >= c.Step {
		k++
	}
	snapped := c.Min + k*c.Step
	if snapped > c.Max {
		snapped -= c.Step
	}
	return snapped
}
