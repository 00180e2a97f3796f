package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

func TestRunsCommand(t *testing.T) {
	dir := setupProject(t, padOnly, map[string]string{
		"src/Clean.java":  cleanJava,
		"src/Padded.java": paddedJava,
	})

	out, err := execute(t, NewRunsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")

	_, err = execute(t, NewCheckCommand(), filepath.Join(dir, "src"))
	require.ErrorIs(t, err, ErrViolations)

	out, err = execute(t, NewRunsCommand(), "--format", "json")
	require.NoError(t, err)

	var runs []core.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, core.RunStatusCompleted, runs[0].Status)
	assert.Equal(t, 2, runs[0].Files)
	assert.Equal(t, 1, runs[0].Violations)
	assert.NotNil(t, runs[0].CompletedAt)

	out, err = execute(t, NewRunsCommand(), "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Runs")
	assert.Contains(t, out, shortID(runs[0].ID))
}

func TestRunsCommand_Errors(t *testing.T) {
	t.Run("cache disabled", func(t *testing.T) {
		setupProject(t, padOnly+"no_cache: true\n", nil)
		_, err := execute(t, NewRunsCommand())
		require.ErrorIs(t, err, errCacheDisabled)
	})

	t.Run("bad limit", func(t *testing.T) {
		setupProject(t, padOnly, nil)
		_, err := execute(t, NewRunsCommand(), "--limit", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "limit must be positive")
	})
}

func TestRunDuration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	assert.Equal(t, "-", runDuration(core.Run{StartedAt: start}))
	assert.Equal(t, "1.5s", runDuration(core.Run{StartedAt: start, CompletedAt: &end}))
	assert.Equal(t, "abcdef12", shortID("abcdef12-3456"))
	assert.Equal(t, "abc", shortID("abc"))
}
