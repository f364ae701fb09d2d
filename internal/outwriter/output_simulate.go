package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// PrintSimulationResult outputs a simulation to stdout or the configured output file.
func PrintSimulationResult(result schema.SimulationResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSimulationResult(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteSimulationResult writes a simulation, dispatching based on the output format configured.
func WriteSimulationResult(w io.Writer, result schema.SimulationResult, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(w, cfg.Output, result); ok {
		return err
	}
	fmtFloat := createFormatters(cfg.Precision)

	if cfg.Output == schema.CSVOut {
		header := []string{"kind", "key", "value", "baseline", "delta", "verdict"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, c := range result.Constraints {
				if err := cw.Write([]string{"constraint", string(c.ID), strconv.Itoa(c.Value), "", "", ""}); err != nil {
					return err
				}
			}
			for _, key := range schema.AllMetricKeys {
				v, b := result.Metrics.Get(key), result.Baseline.Get(key)
				row := []string{"metric", string(key), fmtFloat(v), fmtFloat(b), fmtFloat(v - b), string(schema.GetVerdict(key, v-b))}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return writeSimulationTable(w, result, cfg, fmtFloat, duration)
}

// writeSimulationTable writes the constraints table followed by the metrics table.
func writeSimulationTable(w io.Writer, result schema.SimulationResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "🎛️  Scenario: %s\n", result.ScenarioID); err != nil {
		return err
	}
	if err := writeConstraintTable(w, result.Constraints); err != nil {
		return err
	}

	table := newTable(w, []string{"Metric", "Value", "Baseline", "Delta", "Verdict"})
	defer func() { _ = table.Close() }()

	var data [][]string
	for _, key := range schema.AllMetricKeys {
		v, b := result.Metrics.Get(key), result.Baseline.Get(key)
		data = append(data, []string{
			metricName(key),
			formatMetric(key, v, fmtFloat),
			formatMetric(key, b, fmtFloat),
			formatDelta(v-b, cfg.Precision),
			verdictLabel(schema.GetVerdict(key, v-b), cfg.UseColors),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Simulated in %v. Metrics clamped: %t\n", duration, cfg.ClampMetrics)
	return err
}

// writeConstraintTable writes one row per constraint with its bounds.
func writeConstraintTable(w io.Writer, constraints []schema.Constraint) error {
	table := newTable(w, []string{"Constraint", "Value", "Range", "Step", "Category"})
	defer func() { _ = table.Close() }()

	data := make([][]string, 0, len(constraints))
	for _, c := range constraints {
		data = append(data, []string{
			c.Label,
			fmt.Sprintf("%d%s", c.Value, c.Unit),
			fmt.Sprintf("%d-%d", c.Min, c.Max),
			strconv.Itoa(c.Step),
			string(c.Category),
		})
	}
	return renderTable(table, data)
}

// formatMetric formats a metric value with its unit.
func formatMetric(key schema.MetricKey, v float64, fmtFloat func(float64) string) string {
	return fmtFloat(v) + metricUnits[key]
}
