package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/internal/cli/testutil"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

func sampleReport() *lint.Report {
	return &lint.Report{Files: []lint.FileReport{
		{Path: "src/A.java"},
		{Path: "src/B.java", Violations: []lint.Violation{
			{File: "src/B.java", Line: 3, Column: 15, Key: "ws.preceded", Message: "';' is preceded with whitespace.", Severity: core.SeverityError, Module: "EmptyForInitializerPad"},
			{File: "src/B.java", Line: 7, Key: "javadoc.tag.placement", Message: "Javadoc tag '@return' is not allowed here.", Severity: core.SeverityWarning, Module: "JavadocTagPlacement"},
		}},
		{Path: "src/C.java", Skipped: true},
	}}
}

func TestRenderReport(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		renderReport(tr.Renderer, sampleReport())

		out := tr.Output()
		testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
		assert.Contains(t, out, "## src/B.java")
		assert.NotContains(t, out, "## src/A.java")
		assert.Contains(t, out, "- `3:15` **error** `EmptyForInitializerPad` ';' is preceded with whitespace.")
		assert.Contains(t, out, "- `7` **warning** `JavadocTagPlacement`")
		assert.Contains(t, out, "Summary: 2 violations, 1 errors, 1 warnings (1 unchanged files skipped) in 3 files")
	})

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		renderReport(tr.Renderer, sampleReport())

		out := tr.Output()
		testutil.AssertNoANSI(t, out)
		assert.Contains(t, out, "src/B.java")
		assert.Contains(t, out, "3:15")
		assert.Contains(t, out, "EmptyForInitializerPad")
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		renderReport(tr.Renderer, sampleReport())
		testutil.AssertOutputMode(t, tr, output.ModeJSON)

		var got CheckOutput
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
		assert.Equal(t, CheckSummary{Files: 3, Skipped: 1, Violations: 2, Errors: 1, Warnings: 1}, got.Summary)
		require.Len(t, got.Files, 3)
		assert.NotNil(t, got.Files[0].Violations)
	})

	t.Run("clean", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		renderReport(tr.Renderer, &lint.Report{Files: []lint.FileReport{{Path: "A.java"}}})
		assert.Contains(t, tr.Output(), "No violations found in 1 files")
	})
}
