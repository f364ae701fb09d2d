package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorVerdict(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, "better", GetColorVerdict(schema.BetterVerdict))
	assert.Equal(t, "worse", GetColorVerdict(schema.WorseVerdict))
	assert.Equal(t, "same", GetColorVerdict(schema.SameVerdict))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetRunDBFilePath(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetRunDBFilePath(), ".tradeoff_runs.db"))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"", false, true},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "Discov...", TruncateText("Discovery interviews", 9))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestResolveConstraintID(t *testing.T) {
	id, ok := ResolveConstraintID("TEAMSIZE")
	assert.True(t, ok)
	assert.Equal(t, schema.TeamSize, id)

	_, ok = ResolveConstraintID("velocity")
	assert.False(t, ok)
}
