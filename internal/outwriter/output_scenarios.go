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

// PrintScenarioList outputs the scenario catalog to stdout or the configured output file.
func PrintScenarioList(scenarios []schema.Scenario, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteScenarioList(w, scenarios, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteScenarioList writes the scenario catalog in the configured output format.
func WriteScenarioList(w io.Writer, scenarios []schema.Scenario, cfg *contract.Config, duration time.Duration) error {
	summaries := schema.SummarizeScenarios(scenarios)
	if ok, err := writeStructured(w, cfg.Output, summaries); ok {
		return err
	}

	if cfg.Output == schema.CSVOut {
		header := []string{"id", "name", "description", "study", "custom", "has_observed"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, s := range summaries {
				row := []string{s.ID, s.Name, s.Description, s.Study, strconv.FormatBool(s.Custom), strconv.FormatBool(s.HasObserved)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// ID, name, study and observed columns take roughly 60 characters
	maxDesc := GetMaxTextWidth(cfg, 60)
	table := newTable(w, []string{"ID", "Name", "Description", "Study", "Observed"})
	defer func() { _ = table.Close() }()

	data := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		study := s.Study
		switch {
		case s.Custom:
			study = "custom"
		case study == "":
			study = "-"
		}
		observed := ""
		if s.HasObserved {
			observed = "✓"
		}
		data = append(data, []string{s.ID, s.Name, contract.TruncateText(s.Description, maxDesc), study, observed})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Listed %d scenarios in %v\n", len(summaries), duration)
	return err
}

// PrintScenarioDetail outputs one scenario to stdout or the configured output file.
func PrintScenarioDetail(detail schema.ScenarioDetail, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteScenarioDetail(w, detail, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteScenarioDetail writes one scenario with its resolved values and metrics.
func WriteScenarioDetail(w io.Writer, detail schema.ScenarioDetail, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(w, cfg.Output, detail); ok {
		return err
	}
	fmtFloat := createFormatters(cfg.Precision)

	if cfg.Output == schema.CSVOut {
		header := []string{"kind", "key", "value", "observed"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, id := range schema.AllConstraintIDs {
				if err := cw.Write([]string{"constraint", string(id), strconv.Itoa(detail.Snapshot[id]), ""}); err != nil {
					return err
				}
			}
			for _, key := range schema.AllMetricKeys {
				observed := ""
				if v, ok := detail.Scenario.Observed[key]; ok {
					observed = fmtFloat(v)
				}
				if err := cw.Write([]string{"metric", string(key), fmtFloat(detail.Metrics.Get(key)), observed}); err != nil {
					return err
				}
			}
			return nil
		})
	}

	s := detail.Scenario
	if _, err := fmt.Fprintf(w, "📋 %s (%s)\n%s\n", s.Name, s.ID, s.Description); err != nil {
		return err
	}
	if s.Study != "" {
		if _, err := fmt.Fprintf(w, "Case study: %s\n", s.Study); err != nil {
			return err
		}
	}

	constraintTable := newTable(w, []string{"Constraint", "Value"})
	defer func() { _ = constraintTable.Close() }()
	constraintData := make([][]string, 0, len(schema.AllConstraintIDs))
	for _, id := range schema.AllConstraintIDs {
		constraintData = append(constraintData, []string{string(id), strconv.Itoa(detail.Snapshot[id])})
	}
	if err := renderTable(constraintTable, constraintData); err != nil {
		return err
	}

	metricTable := newTable(w, []string{"Metric", "Modelled", "Observed"})
	defer func() { _ = metricTable.Close() }()
	metricData := make([][]string, 0, len(schema.AllMetricKeys))
	for _, key := range schema.AllMetricKeys {
		observed := "-"
		if v, ok := s.Observed[key]; ok {
			observed = formatMetric(key, v, fmtFloat)
		}
		metricData = append(metricData, []string{metricName(key), formatMetric(key, detail.Metrics.Get(key), fmtFloat), observed})
	}
	if err := renderTable(metricTable, metricData); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Resolved in %v\n", duration)
	return err
}
