// Package lint is the analysis engine: check modules, the tree walker that
// dispatches nodes to them, and the checker that runs a configuration over
// many files.
//
// # Architecture
//
//  1. Check: a rule module declaring default, acceptable and required token
//     kinds and implementing BeginTree/VisitToken/LeaveToken/FinishTree.
//  2. TreeWalker: one depth-first pass per file, calling interested checks
//     in registration order.
//  3. Checker: validates the whole configuration up front, then processes
//     files concurrently with pooled walkers and collects results in a Sink.
//
// # Module Registration
//
// Modules register via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/leapcheck/pkg/lint/checks"
//
// # Configuration
//
// A configuration is a tree of ModuleConfig values rooted at "Checker":
//
//	cfg := lint.NewModuleConfig("Checker").Add(
//		lint.NewModuleConfig("TreeWalker").Add(
//			lint.NewModuleConfig("EmptyForInitializerPad").Set("option", "space"),
//		),
//	)
//	checker, err := lint.NewChecker(cfg, lint.WithParser(p))
//
// Every module accepts "severity", "id" and "tokens"; anything else must be
// listed in its ModuleInfo.ConfigKeys. Invalid values fail NewChecker with
// a *ConfigError chain such as
// "cannot initialize module TreeWalker - cannot initialize module X - Cannot set property 'option' to 'bad'".
//
// # Writing a Check
//
//	type MyCheck struct {
//		lint.Base
//	}
//
//	func (c *MyCheck) DefaultTokens() []token.TokenType    { return []token.TokenType{token.METHOD_DEF} }
//	func (c *MyCheck) AcceptableTokens() []token.TokenType { return c.DefaultTokens() }
//	func (c *MyCheck) RequiredTokens() []token.TokenType   { return nil }
//
//	func (c *MyCheck) VisitToken(n *ast.Node) {
//		c.Log(n, "my.key", ast.Name(n))
//	}
//
//	func init() {
//		lint.Register(lint.ModuleInfo{
//			Name:     "MyCheck",
//			Messages: map[string]string{"my.key": "Method '%s' is not allowed."},
//			New:      func(lint.Properties) (lint.Check, error) { return &MyCheck{}, nil },
//		})
//	}
package lint
