package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/tradeoff/schema"
)

// Color variables for console output.
var (
	BetterColor = color.New(color.FgGreen, color.Bold) // BetterColor marks an improving metric.
	WorseColor  = color.New(color.FgRed, color.Bold)   // WorseColor marks a regressing metric.
	SameColor   = color.New(color.FgCyan)              // SameColor marks an unchanged metric.
	CustomColor = color.New(color.FgMagenta)           // CustomColor marks user-defined scenarios.
)

// GetColorVerdict returns a colored verdict label for console output (table).
func GetColorVerdict(v schema.Verdict) string {
	text := string(v)
	switch v {
	case schema.BetterVerdict:
		return BetterColor.Sprint(text)
	case schema.WorseVerdict:
		return WorseColor.Sprint(text)
	default:
		return SameColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run history.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tradeoff_runs.db"
	}
	return filepath.Join(homeDir, ".tradeoff_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
