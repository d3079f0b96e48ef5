// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "two ids with trailing newline",
			content: "X\nY\n",
			want:    []string{"X", "Y"},
		},
		{
			name:    "no trailing newline",
			content: "PMC1234567\nPMC7654321",
			want:    []string{"PMC1234567", "PMC7654321"},
		},
		{
			name:    "trailing blank lines ignored",
			content: "A\nB\n\n\n",
			want:    []string{"A", "B"},
		},
		{
			name:    "interior blank lines skipped",
			content: "A\n\nB\n",
			want:    []string{"A", "B"},
		},
		{
			name:    "duplicates kept in order",
			content: "A\nB\nA\n",
			want:    []string{"A", "B", "A"},
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  A  \n\tB\r\n",
			want:    []string{"A", "B"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening manifest")
}

func TestExclusions(t *testing.T) {
	ex := NewExclusions([]string{"PMC5055126", "", "  PMC999  "})

	assert.True(t, ex.Contains("PMC5055126"))
	assert.True(t, ex.Contains("PMC999"))
	assert.False(t, ex.Contains("PMC1234567"))
	assert.False(t, ex.Contains(""))
	assert.Len(t, ex, 2)
}

func TestExclusionsEmpty(t *testing.T) {
	ex := NewExclusions(nil)
	assert.False(t, ex.Contains("anything"))
}
