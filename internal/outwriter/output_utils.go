package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is the YAML counterpart of writeJSON.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeStructured handles the JSON and YAML outputs shared by every result type.
// It reports false when the mode is not a structured one.
func writeStructured(w io.Writer, mode schema.OutputMode, data any) (bool, error) {
	switch mode {
	case schema.JSONOut:
		if err := writeJSON(w, data); err != nil {
			return true, fmt.Errorf("error writing JSON output: %w", err)
		}
		return true, nil
	case schema.YAMLOut:
		if err := writeYAML(w, data); err != nil {
			return true, fmt.Errorf("error writing YAML output: %w", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// createFormatters returns the float formatter shared by the text and CSV writers.
func createFormatters(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// formatDelta formats a signed change with an arrow.
func formatDelta(delta float64, precision int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%.*f ▲", precision, delta)
	case delta < 0:
		return fmt.Sprintf("%.*f ▼", precision, delta)
	default:
		return fmt.Sprintf("%.*f", precision, 0.0)
	}
}

// verdictLabel returns the verdict, colored when colors are enabled.
func verdictLabel(v schema.Verdict, useColors bool) string {
	if useColors {
		return contract.GetColorVerdict(v)
	}
	return string(v)
}

// metricNames holds the display name of every metric.
var metricNames = map[schema.MetricKey]string{
	schema.ConversionKey:      "Conversion",
	schema.SatisfactionKey:    "Satisfaction",
	schema.TimeToValueKey:     "Time to Value",
	schema.ErrorRateKey:       "Error Rate",
	schema.UserRetentionKey:   "User Retention",
	schema.DevelopmentCostKey: "Development Cost",
	schema.MarketShareKey:     "Market Share",
	schema.InnovationScoreKey: "Innovation Score",
}

// metricUnits holds the display unit of every metric.
var metricUnits = map[schema.MetricKey]string{
	schema.ConversionKey:      "%",
	schema.SatisfactionKey:    "/5",
	schema.TimeToValueKey:     " days",
	schema.ErrorRateKey:       "%",
	schema.UserRetentionKey:   "%",
	schema.DevelopmentCostKey: " USD",
	schema.MarketShareKey:     "%",
	schema.InnovationScoreKey: "",
}

// metricName returns the display name of a metric.
func metricName(key schema.MetricKey) string {
	if name, ok := metricNames[key]; ok {
		return name
	}
	return string(key)
}

// newTable creates a table with the shared header and alignment settings.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable writes the rows and renders the table.
func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// joinOrDash joins values with sep, or returns "-" when there are none.
func joinOrDash(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}
