package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

func TestRulesCommand_List(t *testing.T) {
	out, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "# Check Modules")
	for _, name := range []string{"EmptyForInitializerPad", "EmptyForIteratorPad", "OperatorWrap", "RightCurly", "JavadocTagPlacement", "ScriptCheck"} {
		assert.Contains(t, out, name)
	}
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--group", "blocks", "-V")
	require.NoError(t, err)
	assert.Contains(t, out, "RightCurly")
	assert.NotContains(t, out, "OperatorWrap")

	_, err = execute(t, NewRulesCommand(), "--group", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no modules in group "nope"`)
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, err)

	var got RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, lint.Count(), got.Count)
	assert.Len(t, got.Modules, got.Count)
}

func TestRulesCommand_YAML(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--group", "whitespace", "--format", "yaml")
	require.NoError(t, err)

	var got struct {
		Checker lint.ModuleConfig `yaml:"checker"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, lint.CheckerModule, got.Checker.Name)
	require.Len(t, got.Checker.Modules, 1)

	var names []string
	for _, m := range got.Checker.Modules[0].Modules {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"EmptyForInitializerPad", "EmptyForIteratorPad", "OperatorWrap"}, names)
}

func TestRulesCommand_Show(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  string
	}{
		{
			name: "markdown detail",
			args: []string{"EmptyForInitializerPad"},
			contains: []string{
				"# EmptyForInitializerPad",
				"- **Group:** whitespace",
				"- **Config keys:** `option`",
				"- **Default tokens:** `FOR_INIT`",
				"- **Required tokens:** `FOR_INIT`",
			},
		},
		{
			name:     "check suffix is accepted",
			args:     []string{"RightCurlyCheck"},
			contains: []string{"# RightCurly"},
		},
		{
			name:    "unknown module",
			args:    []string{"NoSuchCheck"},
			wantErr: `module "NoSuchCheck" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewRulesCommand(), tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRulesCommand_ShowJSON(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "OperatorWrap", "-f", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "OperatorWrap", got["name"])
	assert.Contains(t, got["acceptable_tokens"], "ASSIGN")
}
