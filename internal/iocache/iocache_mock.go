package iocache

import (
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunManager is a mock implementation of RunManager for testing.
type MockRunManager struct {
	mock.Mock
}

var _ contract.RunManager = &MockRunManager{} // Compile-time check

// GetRunStore implements the RunManager interface.
func (m *MockRunManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(sessionID, command string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(sessionID, command, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordSnapshot implements the RunStore interface.
func (m *MockRunStore) RecordSnapshot(record schema.RunMetricsRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalSnapshots int32) error {
	args := m.Called(runID, endTime, totalSnapshots)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllRunMetrics implements the RunStore interface.
func (m *MockRunStore) GetAllRunMetrics() ([]schema.RunMetricsRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunMetricsRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
