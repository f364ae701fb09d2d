package mcp

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/tradeoff/core"
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/outwriter"
	"github.com/huangsam/tradeoff/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// missingValue marks a numeric argument that was not supplied.
const missingValue = math.MinInt32

// sessionState is the response of the tools that read or mutate the session.
type sessionState struct {
	Constraints []schema.Constraint `json:"constraints"`
	Metrics     schema.Metrics      `json:"metrics"`
}

// setResult is the response of set_constraint.
type setResult struct {
	ID        schema.ConstraintID `json:"id"`
	Requested int                 `json:"requested"`
	Stored    int                 `json:"stored"`
	Metrics   schema.Metrics      `json:"metrics"`
}

// metricsResult is the response of compute_metrics.
type metricsResult struct {
	ScenarioID string          `json:"scenario_id,omitempty"`
	Snapshot   schema.Snapshot `json:"snapshot"`
	Metrics    schema.Metrics  `json:"metrics"`
}

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	sess    *Session
}

func (h *toolHandler) handleGetConstraints(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.state())
}

func (h *toolHandler) handleSetConstraint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr := request.GetString("id", "")
	if idStr == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	id, ok := contract.ResolveConstraintID(idStr)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown constraint '%s'", idStr)), nil
	}
	value := request.GetInt("value", missingValue)
	if value == missingValue {
		return mcp.NewToolResultError("value is required"), nil
	}

	stored, _ := h.sess.store.SetConstraint(id, value)
	return jsonResult(setResult{
		ID:        id,
		Requested: value,
		Stored:    stored,
		Metrics:   h.sess.store.Metrics(),
	})
}

func (h *toolHandler) handleApplyScenario(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenario, err := h.sess.catalog.Lookup(request.GetString("scenario_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.sess.store.ApplyScenario(scenario)
	return jsonResult(h.state())
}

func (h *toolHandler) handleResetConstraints(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.sess.store.Reset()
	return jsonResult(h.state())
}

func (h *toolHandler) handleComputeMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := schema.Model(strings.ToLower(request.GetString("model", string(schema.AdvancedModel))))
	if _, ok := schema.ValidModels[model]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid model '%s'. must be advanced, quick", model)), nil
	}
	scenarioID := request.GetString("scenario_id", "")
	overrides, err := contract.ParseModelOverrides(request.GetString("overrides", ""), model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid overrides: %v", err)), nil
	}

	if model == schema.QuickModel {
		if scenarioID != "" {
			return mcp.NewToolResultError("scenarios are not available in the quick model"), nil
		}
		result, err := core.QuickSimulate(overrides, h.baseCfg.ClampMetrics)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}

	// The session is read only; overrides are applied to a throwaway store.
	var store *core.Store
	if scenarioID == "" {
		store = core.NewStore(h.sess.store.Constraints(), h.baseCfg.ClampMetrics)
	} else {
		scenario, err := h.sess.catalog.Lookup(scenarioID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		store = core.NewStore(h.baseCfg.Constraints, h.baseCfg.ClampMetrics)
		store.ApplyScenario(scenario)
	}
	for _, id := range slices.Sorted(maps.Keys(overrides)) {
		store.SetConstraint(id, overrides[id])
	}

	return jsonResult(metricsResult{
		ScenarioID: scenarioID,
		Snapshot:   store.Snapshot(),
		Metrics:    store.Metrics(),
	})
}

func (h *toolHandler) handleListScenarios(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(schema.SummarizeScenarios(h.sess.catalog.List()))
}

func (h *toolHandler) handleCompareScenarios(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	base, err := h.sess.catalog.Lookup(request.GetString("base", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("base: %v", err)), nil
	}
	target, err := h.sess.catalog.Lookup(request.GetString("target", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("target: %v", err)), nil
	}
	return jsonResult(core.CompareScenarios(h.baseCfg.Constraints, base, target, h.baseCfg.ClampMetrics))
}

func (h *toolHandler) handleSweepConstraint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr := request.GetString("constraint", "")
	id, ok := contract.ResolveConstraintID(idStr)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown constraint '%s'", idStr)), nil
	}
	scenario, err := h.sess.catalog.Lookup(request.GetString("scenario_id", contract.DefaultScenario))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.SweepConstraint(ctx, h.baseCfg.Constraints, scenario, id, h.baseCfg.Workers, h.baseCfg.ClampMetrics)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sweep failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) state() sessionState {
	return sessionState{
		Constraints: h.sess.store.Constraints(),
		Metrics:     h.sess.store.Metrics(),
	}
}

// jsonResult renders data as the text content of a tool result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	text, err := outwriter.RenderJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
