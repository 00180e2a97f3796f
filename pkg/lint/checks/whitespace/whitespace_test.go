package whitespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/lint/linttest"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

var forLoops = linttest.Lines(
	"class A {",
	"    void f(int i) {",
	"        for ( ; i < 1; i++) { }",
	"        for (; i < 1; i++) { }",
	"        for (",
	"            ; i < 1; i++) { }",
	"        for (int j = 0; j < 1; j++) { }",
	"\tfor ( ;;) { }",
	"    }",
	"}",
)

func TestEmptyForInitializerPad(t *testing.T) {
	tests := []struct {
		name     string
		option   string
		expected []string
	}{
		{
			name: "default",
			expected: []string{
				"3:15: ';' is preceded with whitespace.",
				"8:15: ';' is preceded with whitespace.",
			},
		},
		{
			name:   "nospace ignores case",
			option: "NoSpace",
			expected: []string{
				"3:15: ';' is preceded with whitespace.",
				"8:15: ';' is preceded with whitespace.",
			},
		},
		{
			name:     "space",
			option:   "space",
			expected: []string{"4:14: ';' is not preceded with whitespace."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := linttest.Module("EmptyForInitializerPad")
			if tt.option != "" {
				module.Set("option", tt.option)
			}
			linttest.Verify(t, module, forLoops, tt.expected...)
		})
	}
}

func TestEmptyForInitializerPadTabWidth(t *testing.T) {
	module := linttest.Module("EmptyForInitializerPad")
	cfg := linttest.Config(module)
	cfg.Set("tabWidth", "4")
	checker, err := lint.NewChecker(cfg)
	require.NoError(t, err)

	vs, err := checker.CheckFile(linttest.Parse(t, forLoops))
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, 8, vs[1].Line)
	assert.Equal(t, 11, vs[1].Column)
}

func TestEmptyForInitializerPadInvalidOption(t *testing.T) {
	cfg := linttest.Config(linttest.Module("EmptyForInitializerPad", "option", "invalid_option"))
	_, err := lint.NewChecker(cfg)
	require.Error(t, err)
	assert.Equal(t, "cannot initialize module TreeWalker - "+
		"cannot initialize module EmptyForInitializerPad - "+
		"Cannot set property 'option' to 'invalid_option'", err.Error())

	var perr *lint.PropertyError
	assert.ErrorAs(t, err, &perr)
}

func TestEmptyForTokens(t *testing.T) {
	for _, name := range []string{"EmptyForInitializerPad", "EmptyForIteratorPad"} {
		t.Run(name, func(t *testing.T) {
			info, ok := lint.Lookup(name)
			require.True(t, ok)
			check, err := info.New(nil)
			require.NoError(t, err)
			want := check.DefaultTokens()
			require.Len(t, want, 1)
			assert.Equal(t, want, check.AcceptableTokens())
			assert.Equal(t, want, check.RequiredTokens())
		})
	}

	check, err := newEmptyForInitializerPad(nil)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.FOR_INIT}, check.RequiredTokens())
	assert.Equal(t, NoSpace, check.(*EmptyForInitializerPad).Option())
}

var iterators = linttest.Lines(
	"class A {",
	"    void f(int i) {",
	"        for (; i < 1; ) { }",
	"        for (; i < 1;) { }",
	"        for (; i < 1;",
	"            ) { }",
	"        for (; i < 1; i++) { }",
	"    }",
	"}",
)

func TestEmptyForIteratorPad(t *testing.T) {
	linttest.Verify(t, linttest.Module("EmptyForIteratorPad"), iterators,
		"3:22: ';' is followed by whitespace.")
	linttest.Verify(t, linttest.Module("EmptyForIteratorPad", "option", "space"), iterators,
		"4:22: ';' is not followed by whitespace.")
}

var wrapped = linttest.Lines(
	"class A {",
	"    int x = 1 +",
	"        2;",
	"    int y = 1",
	"        + 2;",
	"    boolean b = x > 0",
	"        ? true :",
	"        false;",
	"    int z = x",
	"        +",
	"        y;",
	"}",
)

func TestOperatorWrap(t *testing.T) {
	tests := []struct {
		name     string
		props    []string
		expected []string
	}{
		{
			name: "nl",
			expected: []string{
				"2:15: '+' should be on a new line.",
				"7:16: ':' should be on a new line.",
			},
		},
		{
			name:  "eol",
			props: []string{"option", "eol"},
			expected: []string{
				"5:9: '+' should be on the previous line.",
				"7:9: '?' should be on the previous line.",
			},
		},
		{
			name:  "assignments only",
			props: []string{"tokens", "ASSIGN"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linttest.Verify(t, linttest.Module("OperatorWrap", tt.props...), wrapped, tt.expected...)
		})
	}
}

func TestParseOptions(t *testing.T) {
	opt, err := ParsePadOption(lint.Properties{"option": " SPACE "}, "option", NoSpace)
	require.NoError(t, err)
	assert.Equal(t, Space, opt)

	_, err = ParseWrapOption(lint.Properties{"option": "middle"}, "option", WrapNL)
	assert.EqualError(t, err, "Cannot set property 'option' to 'middle'")

	wrap, err := ParseWrapOption(nil, "option", WrapEOL)
	require.NoError(t, err)
	assert.Equal(t, WrapEOL, wrap)
}
