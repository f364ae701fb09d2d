package core

import (
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionTimeline(t *testing.T) {
	events := DecisionTimeline()
	require.Len(t, events, 4)
	for i, ev := range events {
		assert.NotEmpty(t, ev.Title)
		assert.NotEmpty(t, ev.Rationale)
		assert.Len(t, ev.Alternatives, 2, ev.ID)
		assert.Len(t, ev.KPIChanges, 2, ev.ID)
		assert.Equal(t, string(rune('1'+i)), ev.ID)
	}
	assert.Equal(t, schema.ResearchEvent, events[0].Category)
	assert.Equal(t, schema.UserEvent, events[3].Category)
}

func TestViewEventExecutive(t *testing.T) {
	ev := DecisionTimeline()[0]
	view, err := ViewEvent(ev, schema.ExecutiveLens)
	require.NoError(t, err)

	exec, ok := view.(schema.ExecutiveView)
	require.True(t, ok)
	assert.Equal(t, schema.ExecutiveLens, exec.Lens())
	assert.Equal(t, ev.Title, exec.Title)
	assert.Equal(t, ev.KPIChanges, exec.KPIChanges)
	assert.Equal(t, ev.Rationale, exec.Rationale)
	assert.Equal(t, ev.Alternatives, exec.Alternatives)
}

func TestViewEventProduct(t *testing.T) {
	ev := DecisionTimeline()[2]
	view, err := ViewEvent(ev, schema.ProductLens)
	require.NoError(t, err)

	product, ok := view.(schema.ProductView)
	require.True(t, ok)
	assert.Equal(t, ev.Impact, product.Impact)
	assert.Equal(t, ev.Artifacts, product.Artifacts)
	assert.Equal(t, []string{"Product Manager", "CEO", "Sales Lead", "Customer Success"}, product.Stakeholders)
}

func TestViewEventEngineeringKeepsDiagramsOnly(t *testing.T) {
	events := DecisionTimeline()

	view, err := ViewEvent(events[1], schema.EngineeringLens)
	require.NoError(t, err)
	eng := view.(schema.EngineeringView)
	assert.Equal(t, []schema.Artifact{{Name: "Technical Architecture", Type: "diagram"}}, eng.Diagrams)
	assert.Equal(t, events[1].Alternatives, eng.Alternatives)

	// The MVP decision has no diagrams.
	view, err = ViewEvent(events[2], schema.EngineeringLens)
	require.NoError(t, err)
	assert.Empty(t, view.(schema.EngineeringView).Diagrams)
}

func TestViewEventDesignDropsSpreadsheets(t *testing.T) {
	ev := DecisionTimeline()[3]
	view, err := ViewEvent(ev, schema.DesignLens)
	require.NoError(t, err)

	design := view.(schema.DesignView)
	assert.Equal(t, []schema.Artifact{
		{Name: "Usability Test Report", Type: "document"},
		{Name: "Session Recordings", Type: "video"},
	}, design.Artifacts)
	assert.Equal(t, ev.Rationale, design.Rationale)
}

func TestViewEventInvalidLens(t *testing.T) {
	_, err := ViewEvent(DecisionTimeline()[0], "finance")
	assert.ErrorContains(t, err, "invalid lens 'finance'")
}

func TestViewEventDoesNotAlias(t *testing.T) {
	ev := DecisionTimeline()[0]
	view, _ := ViewEvent(ev, schema.ProductLens)
	view.(schema.ProductView).Artifacts[0].Name = "changed"
	assert.Equal(t, "User Interview Summary", ev.Artifacts[0].Name)
}

func TestBuildTimeline(t *testing.T) {
	events := DecisionTimeline()
	for _, lens := range schema.AllLenses {
		result, err := BuildTimeline(events, lens)
		require.NoError(t, err)
		assert.Equal(t, lens, result.Lens)
		assert.NotEmpty(t, result.Name)
		assert.Len(t, result.Focus, 4)
		require.Len(t, result.Views, len(events))
		for _, v := range result.Views {
			assert.Equal(t, lens, v.Lens())
		}
	}

	result, _ := BuildTimeline(events, schema.ProductLens)
	assert.Equal(t, "Product Manager", result.Name)

	_, err := BuildTimeline(events, "finance")
	assert.Error(t, err)
}
