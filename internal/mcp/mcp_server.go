// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/tradeoff/core"
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Session is the constraint store shared by every tool call of one server,
// plus the recorder that stores its mutations when recording is enabled.
type Session struct {
	store   *core.Store
	catalog *core.Catalog
	rec     *core.RunRecorder
}

// NewSession creates a session from the base config. With cfg.Record set, the
// session is recorded as one run in the manager's run store.
func NewSession(cfg *contract.Config, mgr contract.RunManager) (*Session, error) {
	catalog, err := core.NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		store:   core.NewStore(cfg.Constraints, cfg.ClampMetrics),
		catalog: catalog,
	}
	if cfg.Record && mgr != nil {
		rec, err := core.StartRun(mgr.GetRunStore(), "mcp", map[string]any{"clamp_metrics": cfg.ClampMetrics})
		if err != nil {
			return nil, fmt.Errorf("failed to start recording: %w", err)
		}
		rec.Attach(sess.store)
		sess.rec = rec
	}
	return sess, nil
}

// Close finishes the recorded run, if any.
func (s *Session) Close() error {
	return s.rec.Finish()
}

// NewMCPServer initializes and configures the Tradeoff MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, sess *Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Tradeoff Simulator Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		sess:    sess,
	}

	// --- 1. Tool: get_constraints ---
	s.AddTool(mcp.NewTool("get_constraints",
		mcp.WithDescription("Return every constraint of the session with its bounds, plus the metrics they produce."),
	), h.handleGetConstraints)

	// --- 2. Tool: set_constraint ---
	s.AddTool(mcp.NewTool("set_constraint",
		mcp.WithDescription("Set one session constraint. The value is clamped to its range and snapped to its step."),
		mcp.WithString("id", mcp.Description("Constraint id (teamSize, timeline, budget, complexity, marketRisk, userBase)."), mcp.Required()),
		mcp.WithNumber("value", mcp.Description("Requested value in percent."), mcp.Required()),
	), h.handleSetConstraint)

	// --- 3. Tool: apply_scenario ---
	s.AddTool(mcp.NewTool("apply_scenario",
		mcp.WithDescription("Overwrite every session constraint with a scenario's values. Ids the scenario omits become 100."),
		mcp.WithString("scenario_id", mcp.Description("Scenario id, see list_scenarios."), mcp.Required()),
	), h.handleApplyScenario)

	// --- 4. Tool: reset_constraints ---
	s.AddTool(mcp.NewTool("reset_constraints",
		mcp.WithDescription("Restore every session constraint to its initial value."),
	), h.handleResetConstraints)

	// --- 5. Tool: compute_metrics ---
	s.AddTool(mcp.NewTool("compute_metrics",
		mcp.WithDescription("Compute the eight metrics for the session, or for a scenario plus overrides without changing the session. With model 'quick', evaluate the three-slider model (teamSize, deadline, platform) from its baseline instead."),
		mcp.WithString("scenario_id", mcp.Description("Scenario to evaluate instead of the session.")),
		mcp.WithString("overrides", mcp.Description("Overrides such as 'teamSize:80,budget:120'.")),
		mcp.WithString("model", mcp.Description("Metrics model: 'advanced' (default) or 'quick'."), mcp.Enum(string(schema.AdvancedModel), string(schema.QuickModel))),
	), h.handleComputeMetrics)

	// --- 6. Tool: list_scenarios ---
	s.AddTool(mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the preset, case-study and custom scenarios."),
	), h.handleListScenarios)

	// --- 7. Tool: compare_scenarios ---
	s.AddTool(mcp.NewTool("compare_scenarios",
		mcp.WithDescription("Compare the metrics of two scenarios with deltas and better/worse verdicts."),
		mcp.WithString("base", mcp.Description("The base scenario id."), mcp.Required()),
		mcp.WithString("target", mcp.Description("The target scenario id."), mcp.Required()),
	), h.handleCompareScenarios)

	// --- 8. Tool: sweep_constraint ---
	s.AddTool(mcp.NewTool("sweep_constraint",
		mcp.WithDescription("Evaluate the metrics across every step of one constraint while the others stay at a scenario's values."),
		mcp.WithString("constraint", mcp.Description("The constraint id to sweep."), mcp.Required()),
		mcp.WithString("scenario_id", mcp.Description("Scenario holding the other constraints. Defaults to 'baseline'.")),
	), h.handleSweepConstraint)

	return s
}

// StartMCPServer starts the Tradeoff MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunManager) (err error) {
	sess, err := NewSession(baseCfg, mgr)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, sess.Close()) }()

	s := NewMCPServer(baseCfg, sess)
	return server.ServeStdio(s)
}
