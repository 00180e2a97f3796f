package lint

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// recorder appends every callback it receives to a shared log.
type recorder struct {
	Base
	name       string
	log        *[]string
	defaults   []token.TokenType
	acceptable []token.TokenType
	required   []token.TokenType
	onVisit    func(n *ast.Node)
}

func (r *recorder) DefaultTokens() []token.TokenType { return r.defaults }

func (r *recorder) AcceptableTokens() []token.TokenType {
	if r.acceptable == nil {
		return r.defaults
	}
	return r.acceptable
}

func (r *recorder) RequiredTokens() []token.TokenType { return r.required }

func (r *recorder) BeginTree(*ast.Node) { *r.log = append(*r.log, r.name+" begin") }

func (r *recorder) VisitToken(n *ast.Node) {
	*r.log = append(*r.log, r.name+" visit "+n.Kind().String())
	if r.onVisit != nil {
		r.onVisit(n)
	}
}

func (r *recorder) LeaveToken(n *ast.Node) {
	*r.log = append(*r.log, r.name+" leave "+n.Kind().String())
}

func (r *recorder) FinishTree(*ast.Node) { *r.log = append(*r.log, r.name+" finish") }

// sampleFile builds: COMPILATION_UNIT > CLASS_DEF > (IDENT, OBJBLOCK > METHOD_DEF > SLIST)
func sampleFile() *ast.File {
	b := ast.NewBuilder()
	root := b.New(token.COMPILATION_UNIT, "", 1, 0)
	class := b.New(token.CLASS_DEF, "CLASS_DEF", 1, 0)
	obj := b.New(token.OBJBLOCK, "OBJBLOCK", 1, 8)
	method := b.New(token.METHOD_DEF, "METHOD_DEF", 2, 4)
	b.Append(method, b.New(token.SLIST, "{", 2, 14))
	b.Append(obj, method)
	b.Append(class, b.New(token.IDENT, "A", 1, 6), obj)
	b.Append(root, class)
	return ast.NewFile("A.java", []string{"class A {", "    void m() {}", "}"}, b.Build(root), nil)
}

func TestWalkDispatchOrder(t *testing.T) {
	var log []string
	interest := []token.TokenType{token.CLASS_DEF, token.METHOD_DEF}
	w := NewTreeWalker(WalkerDefaults{})
	require.NoError(t, w.Add("A", &recorder{name: "A", log: &log, defaults: interest}))
	require.NoError(t, w.Add("B", &recorder{name: "B", log: &log, defaults: interest}))

	vs, err := w.Walk(sampleFile())
	require.NoError(t, err)
	assert.Empty(t, vs)
	assert.Equal(t, []string{
		"A begin",
		"B begin",
		"A visit CLASS_DEF",
		"B visit CLASS_DEF",
		"A visit METHOD_DEF",
		"B visit METHOD_DEF",
		"A leave METHOD_DEF",
		"B leave METHOD_DEF",
		"A leave CLASS_DEF",
		"B leave CLASS_DEF",
		"A finish",
		"B finish",
	}, log)
	assert.Equal(t, WalkerDone, w.State())
}

func TestWalkDeepTree(t *testing.T) {
	const depth = 5000
	b := ast.NewBuilder()
	root := b.New(token.COMPILATION_UNIT, "", 1, 0)
	parent := root
	for i := range depth {
		n := b.New(token.SLIST, "{", i+1, 0)
		b.Append(parent, n)
		parent = n
	}
	b.Append(root, b.New(token.SEMI, ";", depth+1, 0))
	file := ast.NewFile("Deep.java", nil, b.Build(root), nil)

	var log []string
	w := NewTreeWalker(WalkerDefaults{})
	require.NoError(t, w.Add("A", &recorder{name: "A", log: &log, defaults: []token.TokenType{token.SLIST, token.SEMI}}))
	require.NoError(t, w.Add("B", &recorder{name: "B", log: &log, defaults: []token.TokenType{token.SLIST}}))

	_, err := w.Walk(file)
	require.NoError(t, err)

	// begin x2, visit+leave per SLIST for both, visit+leave SEMI for A, finish x2
	require.Len(t, log, 2+depth*4+2+2)
	assert.Equal(t, "A visit SLIST", log[2])
	assert.Equal(t, "B visit SLIST", log[3])
	// innermost leave comes right after innermost visit
	assert.Equal(t, "A leave SLIST", log[2+2*depth])
	assert.Equal(t, "B leave SLIST", log[3+2*depth])
	// the sibling of the outermost block is visited after every block is left
	assert.Equal(t, "A visit SEMI", log[len(log)-4])
	assert.Equal(t, "A leave SEMI", log[len(log)-3])
}

func TestWalkResetsBetweenFiles(t *testing.T) {
	var log []string
	check := &recorder{name: "A", log: &log, defaults: []token.TokenType{token.IDENT}}
	check.onVisit = func(n *ast.Node) { check.Log(n, "seen %s", n.Text()) }
	w := NewTreeWalker(WalkerDefaults{})
	require.NoError(t, w.Add("A", check))

	first, err := w.Walk(sampleFile())
	require.NoError(t, err)
	second, err := w.Walk(sampleFile())
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "seen A", first[0].Message)
	assert.Equal(t, 7, first[0].Column)
	assert.Nil(t, check.File())
}

func TestWalkRejectsReentry(t *testing.T) {
	var log []string
	w := NewTreeWalker(WalkerDefaults{})
	var inner error
	check := &recorder{name: "A", log: &log, defaults: []token.TokenType{token.CLASS_DEF}}
	check.onVisit = func(*ast.Node) {
		assert.Equal(t, WalkerTraversing, w.State())
		_, inner = w.Walk(sampleFile())
	}
	require.NoError(t, w.Add("A", check))

	_, err := w.Walk(sampleFile())
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrWalkerBusy)
}

func TestWalkRejectsNilFile(t *testing.T) {
	var log []string
	w := NewTreeWalker(WalkerDefaults{})
	require.NoError(t, w.Add("A", &recorder{name: "A", log: &log, defaults: []token.TokenType{token.CLASS_DEF}}))

	vs, err := w.Walk(nil)
	require.ErrorIs(t, err, ErrNilFile)
	assert.Nil(t, vs)
	assert.Equal(t, WalkerIdle, w.State())
	assert.Empty(t, log)

	_, err = w.Walk(sampleFile())
	require.NoError(t, err)
	assert.Equal(t, WalkerDone, w.State())
}

func TestWalkRecoversFromPanickingCheck(t *testing.T) {
	var log []string
	check := &recorder{name: "A", log: &log, defaults: []token.TokenType{token.METHOD_DEF}}
	check.onVisit = func(*ast.Node) { panic("boom") }
	w := NewTreeWalker(WalkerDefaults{})
	require.NoError(t, w.Add("A", check))

	_, err := w.Walk(sampleFile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A.java")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, WalkerDone, w.State())
}

func TestTokenNegotiation(t *testing.T) {
	defaults := []token.TokenType{token.FOR_INIT}
	acceptable := []token.TokenType{token.FOR_INIT, token.FOR_ITERATOR}

	tests := []struct {
		name       string
		required   []token.TokenType
		defaults   []token.TokenType
		configured []token.TokenType
		want       []token.TokenType
		wantErr    string
	}{
		{
			name:     "defaults when nothing configured",
			defaults: defaults,
			want:     []token.TokenType{token.FOR_INIT},
		},
		{
			name:       "configured subset of acceptable",
			defaults:   defaults,
			configured: []token.TokenType{token.FOR_ITERATOR},
			want:       []token.TokenType{token.FOR_ITERATOR},
		},
		{
			name:       "required tokens are always added",
			defaults:   defaults,
			required:   []token.TokenType{token.FOR_INIT},
			configured: []token.TokenType{token.FOR_ITERATOR},
			want:       []token.TokenType{token.FOR_ITERATOR, token.FOR_INIT},
		},
		{
			name:       "configured token outside acceptable",
			defaults:   defaults,
			configured: []token.TokenType{token.METHOD_DEF},
			wantErr:    `Token "METHOD_DEF" was not found in Acceptable tokens list in check Pad`,
		},
		{
			name:     "required token missing from defaults",
			defaults: defaults,
			required: []token.TokenType{token.FOR_ITERATOR},
			wantErr:  `Token "FOR_ITERATOR" from required tokens was not found in default tokens list in check Pad`,
		},
		{
			name:     "default token outside acceptable",
			defaults: []token.TokenType{token.SEMI},
			wantErr:  `Token "SEMI" from default tokens was not found in acceptable tokens list in check Pad`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			check := &recorder{name: "Pad", log: &log, defaults: tt.defaults, acceptable: acceptable, required: tt.required}
			err := NewTreeWalker(WalkerDefaults{}).Add("Pad", check, tt.configured...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, check.Tokens())
		})
	}
}

// padCheck is a registered module with one enum-like option.
type padCheck struct {
	Base
	option string
}

func (p *padCheck) DefaultTokens() []token.TokenType    { return []token.TokenType{token.FOR_INIT} }
func (p *padCheck) AcceptableTokens() []token.TokenType { return p.DefaultTokens() }
func (p *padCheck) RequiredTokens() []token.TokenType   { return p.DefaultTokens() }

func registerPadCheck(t *testing.T) {
	t.Helper()
	Register(ModuleInfo{
		Name:            "TestPad",
		DefaultSeverity: core.SeverityWarning,
		ConfigKeys:      []string{"option"},
		Messages:        map[string]string{"pad": "'%s' is padded."},
		New: func(props Properties) (Check, error) {
			opt := props.String("option", "nospace")
			if opt != "space" && opt != "nospace" {
				return nil, &PropertyError{Name: "option", Value: opt}
			}
			return &padCheck{option: opt}, nil
		},
	})
	t.Cleanup(func() { Unregister("TestPad") })
}

func TestBuildTreeWalkerErrors(t *testing.T) {
	registerPadCheck(t)

	tests := []struct {
		name    string
		module  *ModuleConfig
		wantErr string
	}{
		{
			name:    "invalid option",
			module:  NewModuleConfig("TestPad").Set("option", "invalid_option"),
			wantErr: "cannot initialize module TestPad - Cannot set property 'option' to 'invalid_option'",
		},
		{
			name:    "unknown property",
			module:  NewModuleConfig("TestPad").Set("colour", "red"),
			wantErr: "cannot initialize module TestPad - Property 'colour' does not exist, please check the documentation",
		},
		{
			name:    "unknown module",
			module:  NewModuleConfig("NoSuchCheck"),
			wantErr: "cannot initialize module NoSuchCheck - Unable to instantiate 'NoSuchCheck'",
		},
		{
			name:    "invalid severity",
			module:  NewModuleConfig("TestPad").Set("severity", "loud"),
			wantErr: "cannot initialize module TestPad - Cannot set property 'severity' to 'loud'",
		},
		{
			name:    "unknown token name",
			module:  NewModuleConfig("TestPad").Set("tokens", "FOR_INIT, NOPE"),
			wantErr: "cannot initialize module TestPad - Cannot set property 'tokens' to 'FOR_INIT, NOPE'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTreeWalker(NewModuleConfig(TreeWalkerModule).Add(tt.module), WalkerDefaults{})
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.module.Name, cfgErr.Module)
		})
	}
}

func TestBuildTreeWalkerAppliesCommonProperties(t *testing.T) {
	registerPadCheck(t)
	info := core.SeverityInfo

	cfg := NewModuleConfig(TreeWalkerModule).Add(
		NewModuleConfig("TestPadCheck"),
		NewModuleConfig("TestPad").Set("id", "padTwo").Set("severity", "error").Set("option", "space"),
	)
	cfg.Modules[0].Messages = map[string]string{"pad": "custom %s"}

	w, err := BuildTreeWalker(cfg, WalkerDefaults{Severity: &info, TabWidth: 4, OrderBase: 3})
	require.NoError(t, err)
	checks := w.Checks()
	require.Len(t, checks, 2)

	first := checks[0].(*padCheck)
	assert.Equal(t, "TestPad", first.ID())
	assert.Equal(t, core.SeverityInfo, first.Severity())
	assert.Equal(t, "nospace", first.option)
	assert.Equal(t, 4, first.TabWidth())
	assert.Equal(t, "custom %s", first.template("pad"))

	second := checks[1].(*padCheck)
	assert.Equal(t, "padTwo", second.ID())
	assert.Equal(t, core.SeverityError, second.Severity())
	assert.Equal(t, "space", second.option)
	assert.Equal(t, "'%s' is padded.", second.template("pad"))
	assert.Equal(t, []int{3, 4}, []int{first.order, second.order})
}

func TestModuleSeverityFallsBackToModuleDefault(t *testing.T) {
	registerPadCheck(t)
	w, err := BuildTreeWalker(NewModuleConfig(TreeWalkerModule).Add(NewModuleConfig("TestPad")), WalkerDefaults{})
	require.NoError(t, err)
	assert.Equal(t, core.SeverityWarning, w.Checks()[0].base().Severity())
}

func TestWalkerStateString(t *testing.T) {
	for s, want := range map[WalkerState]string{
		WalkerIdle:       "idle",
		WalkerTraversing: "traversing",
		WalkerDone:       "done",
		WalkerState(9):   "unknown",
	} {
		assert.Equal(t, want, s.String(), fmt.Sprint(int(s)))
	}
}
