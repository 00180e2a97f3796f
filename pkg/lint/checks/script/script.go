// Package script runs user-written checks in Starlark.
//
// A script declares the node kinds it wants and defines any of the hooks
// begin(root), visit(node), leave(node) and finish(root):
//
//	tokens = ["METHOD_DEF"]
//
//	def visit(node):
//	    name = [c for c in node.children if c.kind == "IDENT"][0]
//	    if len(name.text) > int(config.get("max", "30")):
//	        log(node, "Method name '%s' is too long." % name.text)
//
// Module level code runs once when the check is configured. Globals are
// frozen afterwards, so hooks keep no state between calls.
package script

import (
	"errors"
	"fmt"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(Module)
}

// MsgScript is the key of every message a script logs. Its default
// template prints the script's text unchanged.
const MsgScript = "script"

// Module is the ScriptCheck module.
var Module = lint.ModuleInfo{
	Name:            "ScriptCheck",
	Group:           "script",
	Description:     "Runs a check written in Starlark.",
	DefaultSeverity: core.SeverityError,
	ConfigKeys:      []string{"file", "config"},
	Messages:        map[string]string{MsgScript: "%s"},
	New:             newScript,
}

// Hook names a script may define.
const (
	hookBegin  = "begin"
	hookVisit  = "visit"
	hookLeave  = "leave"
	hookFinish = "finish"
)

// Script is a check whose hooks are Starlark functions.
type Script struct {
	lint.Base
	path   string
	tokens []token.TokenType
	hooks  map[string]starlark.Callable
	thread *starlark.Thread
}

func newScript(props lint.Properties) (lint.Check, error) {
	path := props.String("file", "")
	if path == "" {
		return nil, &lint.PropertyError{Name: "file", Value: path, Err: errors.New("no script file")}
	}
	src, err := os.ReadFile(path) //nolint:gosec // G304: script path comes from the user's configuration
	if err != nil {
		return nil, &lint.PropertyError{Name: "file", Value: path, Err: err}
	}
	config, err := configDict(props)
	if err != nil {
		return nil, &lint.PropertyError{Name: "config", Value: props.String("config", ""), Err: err}
	}
	return Load(path, src, config)
}

// Load compiles a script and runs its module level code. config is exposed
// to the script as the "config" global.
func Load(path string, src []byte, config *starlark.Dict) (*Script, error) {
	if config == nil {
		config = starlark.NewDict(0)
	}
	s := &Script{
		path:  path,
		hooks: make(map[string]starlark.Callable),
		thread: &starlark.Thread{
			Name: "script:" + path,
			Print: func(_ *starlark.Thread, _ string) {
				// scripts report through log()
			},
		},
	}
	predeclared := starlark.StringDict{
		"config":    config,
		"log":       starlark.NewBuiltin("log", s.builtinLog),
		"line_text": starlark.NewBuiltin("line_text", s.builtinLineText),
	}

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, s.thread, path, src, predeclared)
	if err != nil {
		return nil, &lint.PropertyError{Name: "file", Value: path, Err: err}
	}

	if err := s.readTokens(globals); err != nil {
		return nil, &lint.PropertyError{Name: "file", Value: path, Err: err}
	}
	for _, name := range []string{hookBegin, hookVisit, hookLeave, hookFinish} {
		v, ok := globals[name]
		if !ok {
			continue
		}
		fn, ok := v.(starlark.Callable)
		if !ok {
			return nil, &lint.PropertyError{Name: "file", Value: path, Err: fmt.Errorf("%s is a %s, not a function", name, v.Type())}
		}
		s.hooks[name] = fn
	}
	return s, nil
}

func (s *Script) readTokens(globals starlark.StringDict) error {
	v, ok := globals["tokens"]
	if !ok {
		return nil
	}
	iter, ok := v.(starlark.Iterable)
	if !ok {
		return fmt.Errorf("tokens must be a list of names, got %s", v.Type())
	}
	it := iter.Iterate()
	defer it.Done()
	var item starlark.Value
	for it.Next(&item) {
		name, ok := starlark.AsString(item)
		if !ok {
			return fmt.Errorf("tokens must be a list of names, got %s element", item.Type())
		}
		t, ok := token.ParseTokenType(name)
		if !ok {
			return fmt.Errorf("unknown token %q", name)
		}
		s.tokens = append(s.tokens, t)
	}
	return nil
}

func (s *Script) DefaultTokens() []token.TokenType    { return s.tokens }
func (s *Script) AcceptableTokens() []token.TokenType { return token.All() }
func (s *Script) RequiredTokens() []token.TokenType   { return nil }

func (s *Script) BeginTree(root *ast.Node)  { s.call(hookBegin, root) }
func (s *Script) VisitToken(n *ast.Node)    { s.call(hookVisit, n) }
func (s *Script) LeaveToken(n *ast.Node)    { s.call(hookLeave, n) }
func (s *Script) FinishTree(root *ast.Node) { s.call(hookFinish, root) }

// call runs a hook. A failing script aborts the file; the walker turns the
// panic into an error for it.
func (s *Script) call(hook string, n *ast.Node) {
	fn, ok := s.hooks[hook]
	if !ok {
		return
	}
	if _, err := starlark.Call(s.thread, fn, starlark.Tuple{wrap(n)}, nil); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			panic(fmt.Errorf("%s: %s: %s", s.path, hook, evalErr.Backtrace()))
		}
		panic(fmt.Errorf("%s: %s: %w", s.path, hook, err))
	}
}

// log(node, message) or log(line, message) reports a violation.
func (s *Script) builtinLog(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var at starlark.Value
	var msg string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &at, &msg); err != nil {
		return nil, err
	}
	switch v := at.(type) {
	case nodeValue:
		s.Log(v.n, MsgScript, msg)
	case starlark.Int:
		line, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("%s: line out of range", b.Name())
		}
		s.LogLine(int(line), MsgScript, msg)
	default:
		return nil, fmt.Errorf("%s: want node or line number, got %s", b.Name(), at.Type())
	}
	return starlark.None, nil
}

// line_text(n) returns the 1-based source line n of the current file.
func (s *Script) builtinLineText(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	return starlark.String(s.Line(n)), nil
}
