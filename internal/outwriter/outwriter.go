// Package outwriter has output and writer logic.
package outwriter

import (
	"bytes"
	"os"
	"strings"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	"golang.org/x/term"
)

// Table layout bounds for free-text columns.
const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	minTextWidth     = 20
	maxTextWidth     = 100
)

// RenderJSON returns data as indented JSON text.
func RenderJSON(data any) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// GetTermWidth returns the configured width override or the detected terminal width.
func GetTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth
	}
	return detectedWidth
}

// GetMaxTextWidth calculates the maximum width of a free-text column given
// how many characters the other columns of the table reserve.
func GetMaxTextWidth(cfg *contract.Config, reserved int) int {
	available := GetTermWidth(cfg) - reserved
	return max(minTextWidth, min(available, maxTextWidth))
}

// successMessage names the format written, for the stderr notice after writing a file.
func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	case schema.YAMLOut:
		return "Wrote YAML"
	default:
		return "Wrote text"
	}
}
