package blocks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/lint/linttest"
)

func TestRightCurlyDefault(t *testing.T) {
	src, err := os.ReadFile("testdata/right_curly_default.java")
	require.NoError(t, err)

	same := "should be on the same line as the next part of a multi-block statement " +
		"(one that directly contains multiple blocks: if/else-if/else, do/while or try/catch/finally)."
	linttest.Verify(t, linttest.Module("RightCurly"), string(src),
		"25:17: '}' at column 17 "+same,
		"28:17: '}' at column 17 "+same,
		"40:13: '}' at column 13 "+same,
		"44:13: '}' at column 13 "+same,
		"93:27: '}' at column 27 should have line break before.",
	)
}

var blocks = linttest.Lines(
	"class A {",
	"    void f(boolean b) {",
	"        if (b) {",
	"            f(b);",
	"        } else {",
	"            f(!b);",
	"        }",
	"        try { f(b); } catch (RuntimeException e) { }",
	"    }",
	"}",
)

func TestRightCurlyOptions(t *testing.T) {
	tests := []struct {
		option   string
		expected []string
	}{
		{option: "same"},
		{
			option: "alone",
			expected: []string{
				"5:9: '}' at column 9 should be alone on a line.",
				"8:21: '}' at column 21 should be alone on a line.",
				"8:52: '}' at column 52 should be alone on a line.",
			},
		},
		{
			option:   "ALONE_OR_SINGLELINE",
			expected: []string{"5:9: '}' at column 9 should be alone on a line."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			linttest.Verify(t, linttest.Module("RightCurly", "option", tt.option), blocks, tt.expected...)
		})
	}
}

func TestRightCurlyMethodTokens(t *testing.T) {
	src := linttest.Lines(
		"class A {",
		"    void f() {",
		"        f(); }",
		"    void g() { }",
		"}",
	)
	linttest.Verify(t, linttest.Module("RightCurly", "tokens", "METHOD_DEF"), src,
		"3:14: '}' at column 14 should have line break before.")
}

func TestRightCurlyInvalidOption(t *testing.T) {
	_, err := lint.NewChecker(linttest.Config(linttest.Module("RightCurly", "option", "left")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot initialize module RightCurly - Cannot set property 'option' to 'left'")
}

func TestParseCurlyOption(t *testing.T) {
	tests := []struct {
		in   string
		want CurlyOption
		ok   bool
	}{
		{"same", Same, true},
		{" Alone ", Alone, true},
		{"alone_or_singleline", AloneOrSingleLine, true},
		{"left", Same, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurlyOption(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if ok {
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		}
	}
}

func mustParse(t *testing.T, s string) CurlyOption {
	t.Helper()
	o, ok := ParseCurlyOption(s)
	require.True(t, ok)
	return o
}
