package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/parquet"
)

// ExecuteRunsExport exports the run history to two Parquet files next to outputFile.
func ExecuteRunsExport(w io.Writer, store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total snapshot records: %d\n", status.TableSizes[runMetricsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	runMetrics, err := store.GetAllRunMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve run metrics: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetRunMetrics := parquet.ConvertRunMetricsRecords(runMetrics)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	metricsFile := outputFile + ".run_metrics.parquet"
	if err := parquet.WriteRunMetricsParquet(parquetRunMetrics, metricsFile); err != nil {
		return fmt.Errorf("failed to write run metrics: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshot records to: %s\n", len(parquetRunMetrics), metricsFile)

	return nil
}
