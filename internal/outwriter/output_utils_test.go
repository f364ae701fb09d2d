package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name      string
		key       schema.MetricKey
		value     float64
		precision int
		expected  string
	}{
		{"conversion whole percent", schema.ConversionKey, 20, 0, "20%"},
		{"satisfaction out of five", schema.SatisfactionKey, 1.3, 1, "1.3/5"},
		{"time to value in days", schema.TimeToValueKey, 24, 0, "24 days"},
		{"development cost at max precision", schema.DevelopmentCostKey, 56250, 2, "56250.00 USD"},
		{"innovation score has no unit", schema.InnovationScoreKey, 1, 1, "1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMetric(tt.key, tt.value, createFormatters(tt.precision)))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	// Deltas of the lean preset against the baseline.
	tests := []struct {
		name      string
		delta     float64
		precision int
		expected  string
	}{
		{"conversion drop", 20 - 65, 1, "-45.0 ▼"},
		{"cost saving", 56250 - 100000, 0, "-43750 ▼"},
		{"slower time to value", 24 - 14, 0, "+10 ▲"},
		{"error rate rise", 1.7, 1, "+1.7 ▲"},
		{"unchanged", 0, 2, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDelta(tt.delta, tt.precision))
		})
	}
}

func TestVerdictLabel(t *testing.T) {
	tests := []struct {
		name     string
		key      schema.MetricKey
		delta    float64
		expected string
	}{
		{"lower cost is better", schema.DevelopmentCostKey, -43750, "better"},
		{"lower conversion is worse", schema.ConversionKey, -45, "worse"},
		{"longer time to value is worse", schema.TimeToValueKey, 10, "worse"},
		{"flat innovation is same", schema.InnovationScoreKey, 0, "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := schema.GetVerdict(tt.key, tt.delta)
			assert.Equal(t, tt.expected, verdictLabel(verdict, false))
			assert.Contains(t, verdictLabel(verdict, true), tt.expected)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, testLean))
	assert.Equal(t, `{
  "conversion": 20,
  "satisfaction": 1.3,
  "time_to_value": 24,
  "error_rate": 4.2,
  "user_retention": 49,
  "development_cost": 56250,
  "market_share": 4,
  "innovation_score": 0
}
`, buf.String())

	_, err := writeStructured(&buf, schema.JSONOut, make(chan int))
	assert.ErrorContains(t, err, "failed to encode JSON")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	snapshot := schema.Snapshot{schema.TeamSize: 50, schema.Budget: 50}
	require.NoError(t, writeYAML(&buf, snapshot))
	assert.Equal(t, "budget: 50\nteamSize: 50\n", buf.String())
}

func TestWriteStructured(t *testing.T) {
	data := schema.Snapshot{schema.TeamSize: 80}

	var buf bytes.Buffer
	ok, err := writeStructured(&buf, schema.JSONOut, data)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"teamSize": 80}`, buf.String())

	buf.Reset()
	ok, err = writeStructured(&buf, schema.YAMLOut, data)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "teamSize: 80\n", buf.String())

	for _, mode := range []schema.OutputMode{schema.TextOut, schema.CSVOut} {
		buf.Reset()
		ok, err = writeStructured(&buf, mode, data)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, buf.String())
	}
}

// writeMetricRows writes one CSV row per metric of m.
func writeMetricRows(m schema.Metrics, precision int) func(*csv.Writer) error {
	fmtFloat := createFormatters(precision)
	return func(cw *csv.Writer) error {
		for _, key := range schema.AllMetricKeys {
			if err := cw.Write([]string{metricName(key), fmtFloat(m.Get(key))}); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	t.Run("metric rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVWithHeader(&buf, []string{"metric", "value"}, writeMetricRows(testLean, 1)))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1+len(schema.AllMetricKeys))
		assert.Equal(t, "metric,value", lines[0])
		assert.Equal(t, "Conversion,20.0", lines[1])
		assert.Equal(t, "Development Cost,56250.0", lines[6])
	})

	t.Run("header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVWithHeader(&buf, []string{"scenario", "conversion"}, func(*csv.Writer) error { return nil }))
		assert.Equal(t, "scenario,conversion\n", buf.String())
	})

	t.Run("descriptions with commas are quoted", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVWithHeader(&buf, []string{"id", "description"}, func(cw *csv.Writer) error {
			return cw.Write([]string{"lean", "Small team, long runway"})
		}))
		assert.Equal(t, "id,description\nlean,\"Small team, long runway\"\n", buf.String())
	})

	t.Run("row errors propagate", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeCSVWithHeader(&buf, []string{"metric"}, func(*csv.Writer) error { return assert.AnError })
		assert.Equal(t, assert.AnError, err)
	})
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Wrote metrics")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("metrics to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lean.csv")
		err := writeWithFile(path, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, writeMetricRows(testLean, 0))
		}, "Wrote metrics")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"Time to Value", "24"}, records[3])
		assert.Equal(t, []string{"Innovation Score", "0"}, records[8])
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lean.json")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote metrics")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/runs.csv", func(io.Writer) error { return nil }, "Wrote metrics")
		assert.Error(t, err)
	})
}

func TestMetricNamesCoverAllMetrics(t *testing.T) {
	for _, key := range schema.AllMetricKeys {
		assert.Contains(t, metricNames, key)
		assert.Contains(t, metricUnits, key)
	}
	assert.Equal(t, "Time to Value", metricName(schema.TimeToValueKey))
	assert.Equal(t, "velocity", metricName("velocity"))
}

func TestJoinOrDash(t *testing.T) {
	assert.Equal(t, "-", joinOrDash(nil, ", "))
	assert.Equal(t, "Sprint planning, Usability study", joinOrDash([]string{"Sprint planning", "Usability study"}, ", "))
}
