// Package checks registers every built-in check module.
//
// Import it with a blank identifier to make the modules available to
// configurations:
//
//	import _ "github.com/leapstack-labs/leapcheck/pkg/lint/checks"
//
// Individual groups can also be imported:
//
//	import _ "github.com/leapstack-labs/leapcheck/pkg/lint/checks/whitespace"
package checks

import (
	// Each group registers its modules via init()
	_ "github.com/leapstack-labs/leapcheck/pkg/lint/checks/blocks"
	_ "github.com/leapstack-labs/leapcheck/pkg/lint/checks/javadoc"
	_ "github.com/leapstack-labs/leapcheck/pkg/lint/checks/script"
	_ "github.com/leapstack-labs/leapcheck/pkg/lint/checks/whitespace"
)
