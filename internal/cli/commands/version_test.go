package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		version string
		want    []string
	}{
		{"0.1.0", []string{"leapcheck v0.1.0", "tree-sitter", "check modules"}},
		{"dev", []string{"leapcheck vdev"}},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			out, err := execute(t, NewVersionCommand(tt.version))
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"), "--format", "json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, VersionInfo{
		Version: "1.2.3",
		Go:      runtime.Version(),
		Modules: lint.Count(),
		Tags:    19,
	}, info)
	assert.GreaterOrEqual(t, info.Modules, 6)
}
