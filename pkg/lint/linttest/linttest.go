// Package linttest runs checks over Java sources in tests.
package linttest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/internal/parser/java"
	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

var parser = java.New()

// Module returns a configuration for the named check with the given
// property pairs: Module("RightCurly", "option", "alone").
func Module(name string, props ...string) *lint.ModuleConfig {
	cfg := lint.NewModuleConfig(name)
	for i := 0; i+1 < len(props); i += 2 {
		cfg.Set(props[i], props[i+1])
	}
	return cfg
}

// Config wraps check configurations in a Checker and a TreeWalker.
func Config(modules ...*lint.ModuleConfig) *lint.ModuleConfig {
	return lint.NewModuleConfig(lint.CheckerModule).Add(
		lint.NewModuleConfig(lint.TreeWalkerModule).Add(modules...),
	)
}

// Parse parses src as Input.java.
func Parse(t testing.TB, src string) *ast.File {
	t.Helper()
	f, err := parser.Parse(context.Background(), "Input.java", []byte(src))
	require.NoError(t, err)
	return f
}

// Run checks src with module and returns the ordered violations.
func Run(t testing.TB, module *lint.ModuleConfig, src string) []lint.Violation {
	t.Helper()
	checker, err := lint.NewChecker(Config(module))
	require.NoError(t, err)
	vs, err := checker.CheckFile(Parse(t, src))
	require.NoError(t, err)
	return vs
}

// Verify checks src with module and compares the result with expected
// entries of the form "line:column: message", or "line: message" for
// violations without a column.
func Verify(t testing.TB, module *lint.ModuleConfig, src string, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(expected))
	for _, v := range Run(t, module, src) {
		got = append(got, Format(v))
	}
	if len(expected) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, expected, got)
}

// Format renders v the way Verify expects it.
func Format(v lint.Violation) string {
	if v.Column == 0 {
		return fmt.Sprintf("%d: %s", v.Line, v.Message)
	}
	return fmt.Sprintf("%d:%d: %s", v.Line, v.Column, v.Message)
}

// Lines joins source lines with newlines and a trailing newline.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
