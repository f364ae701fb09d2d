package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// RunRecorder writes the snapshots of one run to a RunStore.
// A nil *RunRecorder records nothing, so callers need not check whether recording is on.
type RunRecorder struct {
	store     contract.RunStore
	sessionID string
	runID     int64

	mu           sync.Mutex
	seq          int32
	err          error
	unsubscribes []func()
}

// StartRun begins a run on store and returns a recorder for it.
func StartRun(store contract.RunStore, command string, params map[string]any) (*RunRecorder, error) {
	if store == nil {
		return nil, errors.New("run store is not initialized")
	}
	sessionID := uuid.NewString()
	runID, err := store.BeginRun(sessionID, command, time.Now(), params)
	if err != nil {
		return nil, err
	}
	return &RunRecorder{store: store, sessionID: sessionID, runID: runID}, nil
}

// SessionID returns the uuid of the recorded session.
func (r *RunRecorder) SessionID() string {
	if r == nil {
		return ""
	}
	return r.sessionID
}

// Record stores one snapshot and its metrics under the next sequence number.
func (r *RunRecorder) Record(scenarioID string, snapshot schema.Snapshot, metrics schema.Metrics) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	err := r.store.RecordSnapshot(schema.RunMetricsRecord{
		RunID:      r.runID,
		Seq:        r.seq,
		ScenarioID: scenarioID,
		RecordedAt: time.Now(),
		Snapshot:   snapshot,
		Metrics:    metrics,
	})
	if err != nil && r.err == nil {
		r.err = err
	}
	return err
}

// Attach records every change published by s until Finish is called.
func (r *RunRecorder) Attach(s *Store) {
	if r == nil {
		return
	}
	unsubscribe := s.Subscribe(func(change Change) {
		_ = r.Record(change.ScenarioID, change.Snapshot, change.Metrics)
	})
	r.mu.Lock()
	r.unsubscribes = append(r.unsubscribes, unsubscribe)
	r.mu.Unlock()
}

// Count returns how many snapshots were recorded so far.
func (r *RunRecorder) Count() int32 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Finish detaches from every store and closes the run.
// It returns the first recording error, if any, joined with the close error.
func (r *RunRecorder) Finish() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	unsubscribes := r.unsubscribes
	r.unsubscribes = nil
	r.mu.Unlock()
	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.err, r.store.EndRun(r.runID, time.Now(), r.seq))
}

// startRecording returns a recorder when cfg asks for one and nil otherwise.
func startRecording(cfg *contract.Config, mgr contract.RunManager, command string) (*RunRecorder, error) {
	if !cfg.Record || mgr == nil {
		return nil, nil
	}
	return StartRun(mgr.GetRunStore(), command, runParams(cfg))
}

// runParams captures the inputs of a run for the config_params column.
func runParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"scenario":      cfg.ScenarioID,
		"clamp_metrics": cfg.ClampMetrics,
	}
	if len(cfg.Overrides) > 0 {
		params["overrides"] = cfg.Overrides
	}
	if cfg.BaseScenario != "" {
		params["base"] = cfg.BaseScenario
	}
	if cfg.TargetScenario != "" {
		params["target"] = cfg.TargetScenario
	}
	if cfg.SweepConstraint != "" {
		params["constraint"] = cfg.SweepConstraint
	}
	return params
}

// finishRecording closes rec and warns instead of failing the command.
func finishRecording(rec *RunRecorder) {
	if err := rec.Finish(); err != nil {
		contract.LogWarn("Recording run", err)
	}
}
