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

// PrintQuickSimulationResult outputs a quick-model simulation to stdout or the configured output file.
func PrintQuickSimulationResult(result schema.QuickSimulationResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteQuickSimulationResult(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteQuickSimulationResult writes a quick-model simulation in the configured format.
func WriteQuickSimulationResult(w io.Writer, result schema.QuickSimulationResult, cfg *contract.Config, duration time.Duration) error {
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
			for _, key := range schema.QuickMetricKeys {
				v, b := result.Metrics.Get(key), result.Baseline.Get(key)
				row := []string{"metric", string(key), fmtFloat(v), fmtFloat(b), fmtFloat(v - b), string(schema.GetVerdict(key, v-b))}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if _, err := fmt.Fprintf(w, "⚡ Model: %s\n", result.Model); err != nil {
		return err
	}
	if err := writeConstraintTable(w, result.Constraints); err != nil {
		return err
	}

	table := newTable(w, []string{"Metric", "Value", "Baseline", "Delta", "Verdict"})
	defer func() { _ = table.Close() }()

	data := make([][]string, 0, len(schema.QuickMetricKeys))
	for _, key := range schema.QuickMetricKeys {
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
