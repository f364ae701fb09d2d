package core

import (
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Equal(t, []string{
		"baseline", "lean", "enterprise", "innovation",
		"case-actual", "case-optimistic", "case-lean",
	}, catalog.IDs())

	for _, s := range catalog.List() {
		assert.NotEmpty(t, s.Name, s.ID)
		assert.Len(t, s.Constraints, len(schema.AllConstraintIDs), s.ID)
		assert.False(t, s.Custom, s.ID)
	}
}

func TestCatalogPresetValues(t *testing.T) {
	tests := []struct {
		id       string
		name     string
		expected [6]int
	}{
		{"baseline", "Baseline", [6]int{100, 100, 100, 100, 100, 100}},
		{"lean", "Lean Startup", [6]int{50, 150, 50, 75, 150, 100}},
		{"enterprise", "Enterprise Scale", [6]int{150, 125, 150, 125, 50, 200}},
		{"innovation", "Innovation Focus", [6]int{125, 175, 125, 150, 200, 150}},
		{"case-actual", "Actual Execution", [6]int{80, 120, 110, 120, 80, 100}},
		{"case-optimistic", "Optimistic Scenario", [6]int{120, 80, 150, 100, 60, 100}},
		{"case-lean", "Lean Scenario", [6]int{50, 150, 60, 80, 120, 100}},
	}

	catalog := DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := catalog.Get(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.name, s.Name)
			for i, id := range schema.AllConstraintIDs {
				assert.Equal(t, tt.expected[i], s.Constraints[id], id)
			}
		})
	}
}

func TestCatalogObservedResults(t *testing.T) {
	catalog := DefaultCatalog()

	actual, _ := catalog.Get("case-actual")
	assert.Equal(t, "enterprise-saas", actual.Study)
	assert.Equal(t, map[schema.MetricKey]float64{
		schema.ConversionKey:   42,
		schema.SatisfactionKey: 4.6,
		schema.TimeToValueKey:  14,
		schema.ErrorRateKey:    2.1,
	}, actual.Observed)

	optimistic, _ := catalog.Get("case-optimistic")
	assert.Equal(t, 58.0, optimistic.Observed[schema.ConversionKey])
	caseLean, _ := catalog.Get("case-lean")
	assert.Equal(t, 3.2, caseLean.Observed[schema.ErrorRateKey])

	lean, _ := catalog.Get("lean")
	assert.Empty(t, lean.Observed)
	assert.Empty(t, lean.Study)
}

func TestCatalogGetReturnsCopies(t *testing.T) {
	catalog := DefaultCatalog()
	s, _ := catalog.Get("lean")
	s.Constraints[schema.TeamSize] = 1

	again, _ := catalog.Get("lean")
	assert.Equal(t, 50, again.Constraints[schema.TeamSize])

	list := catalog.List()
	list[0].Constraints[schema.TeamSize] = 1
	baseline, _ := catalog.Get("baseline")
	assert.Equal(t, 100, baseline.Constraints[schema.TeamSize])
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()
	_, ok := catalog.Get("missing")
	assert.False(t, ok)

	_, err := catalog.Lookup("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "missing"`)
	assert.Contains(t, err.Error(), "case-lean")
}

func TestNewCatalogCustomScenarios(t *testing.T) {
	catalog, err := NewCatalog([]schema.Scenario{
		{ID: "bootstrap", Constraints: map[schema.ConstraintID]int{schema.TeamSize: 25}},
	})
	require.NoError(t, err)

	s, ok := catalog.Get("bootstrap")
	require.True(t, ok)
	assert.True(t, s.Custom)
	assert.Equal(t, "bootstrap", s.Name)
	assert.Equal(t, "bootstrap", catalog.IDs()[len(catalog.IDs())-1])

	_, err = NewCatalog([]schema.Scenario{{ID: "lean"}})
	assert.ErrorContains(t, err, "collides")

	_, err = NewCatalog([]schema.Scenario{{ID: "a"}, {ID: "a"}})
	assert.ErrorContains(t, err, "collides")

	_, err = NewCatalog([]schema.Scenario{{Name: "nameless"}})
	assert.ErrorContains(t, err, "no id")
}

func TestResolveSnapshot(t *testing.T) {
	lean, _ := DefaultCatalog().Get("lean")
	snap := ResolveSnapshot(nil, lean, schema.Snapshot{schema.TeamSize: 83, schema.Budget: 9999})
	assert.Equal(t, 85, snap[schema.TeamSize])
	assert.Equal(t, 195, snap[schema.Budget])
	assert.Equal(t, 75, snap[schema.Complexity])
}
