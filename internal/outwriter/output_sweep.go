package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// PrintSweepResult outputs a constraint sweep to stdout or the configured output file.
func PrintSweepResult(result schema.SweepResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSweepResult(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteSweepResult writes one row per sweep point with every metric.
func WriteSweepResult(w io.Writer, result schema.SweepResult, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(w, cfg.Output, result); ok {
		return err
	}
	fmtFloat := createFormatters(cfg.Precision)

	rows := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		row := make([]string, 0, len(schema.AllMetricKeys)+1)
		row = append(row, strconv.Itoa(p.Value))
		for _, key := range schema.AllMetricKeys {
			row = append(row, fmtFloat(p.Metrics.Get(key)))
		}
		rows = append(rows, row)
	}

	if cfg.Output == schema.CSVOut {
		header := []string{string(result.Constraint)}
		for _, key := range schema.AllMetricKeys {
			header = append(header, string(key))
		}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.WriteAll(rows)
		})
	}

	if _, err := fmt.Fprintf(w, "📈 Sweep of %s from scenario %s\n", result.Constraint, result.ScenarioID); err != nil {
		return err
	}
	headers := []string{string(result.Constraint)}
	for _, key := range schema.AllMetricKeys {
		headers = append(headers, metricName(key))
	}
	table := newTable(w, headers)
	defer func() { _ = table.Close() }()
	if err := renderTable(table, rows); err != nil {
		return err
	}

	best := make([]string, 0, len(schema.AllMetricKeys))
	for _, key := range schema.AllMetricKeys {
		if v, ok := result.Best[key]; ok {
			best = append(best, fmt.Sprintf("%s=%d", key, v))
		}
	}
	_, err := fmt.Fprintf(w, "Best: %s\nSwept %d points in %v\n", strings.Join(best, ", "), len(result.Points), duration)
	return err
}
