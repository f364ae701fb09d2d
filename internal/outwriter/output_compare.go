package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// PrintComparisonResult outputs a scenario comparison to stdout or the configured output file.
func PrintComparisonResult(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResult(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteComparisonResult writes a scenario comparison in the configured output format.
func WriteComparisonResult(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(w, cfg.Output, result); ok {
		return err
	}
	fmtFloat := createFormatters(cfg.Precision)

	if cfg.Output == schema.CSVOut {
		header := []string{"metric", "direction", "base", "target", "delta", "percent_change", "verdict", "observed"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, d := range result.Deltas {
				observed := ""
				if d.Observed != nil {
					observed = fmtFloat(*d.Observed)
				}
				row := []string{
					string(d.Key), string(d.Direction),
					fmtFloat(d.Before), fmtFloat(d.After), fmtFloat(d.Delta), fmtFloat(d.PercentChange),
					string(d.Verdict), observed,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return writeComparisonTable(w, result, cfg, fmtFloat, duration)
}

// writeComparisonTable writes the delta table, adding an Observed column when the target has case-study data.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "⚖️  %s → %s\n", result.Base.Name, result.Target.Name); err != nil {
		return err
	}

	hasObserved := len(result.Target.Observed) > 0
	headers := []string{"Metric", "Base", "Target", "Delta", "Change", "Verdict"}
	if hasObserved {
		headers = append(headers, "Observed")
	}
	table := newTable(w, headers)
	defer func() { _ = table.Close() }()

	data := make([][]string, 0, len(result.Deltas))
	for _, d := range result.Deltas {
		row := []string{
			metricName(d.Key),
			formatMetric(d.Key, d.Before, fmtFloat),
			formatMetric(d.Key, d.After, fmtFloat),
			formatDelta(d.Delta, cfg.Precision),
			fmtFloat(d.PercentChange) + "%",
			verdictLabel(d.Verdict, cfg.UseColors),
		}
		if hasObserved {
			observed := "-"
			if d.Observed != nil {
				observed = formatMetric(d.Key, *d.Observed, fmtFloat)
			}
			row = append(row, observed)
		}
		data = append(data, row)
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	s := result.Summary
	_, err := fmt.Fprintf(w, "Better: %d, Worse: %d, Same: %d. Compared in %v\n", s.Better, s.Worse, s.Same, duration)
	return err
}
