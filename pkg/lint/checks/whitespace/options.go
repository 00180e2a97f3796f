// Package whitespace holds padding and wrapping checks that inspect the
// characters around a token on its source line.
package whitespace

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

// PadOption is the padding policy of a padding check.
type PadOption int

// Padding policies.
const (
	NoSpace PadOption = iota // no whitespace allowed
	Space                    // whitespace required
)

func (o PadOption) String() string {
	if o == Space {
		return "space"
	}
	return "nospace"
}

// WrapOption says on which side of a line break a token belongs.
type WrapOption int

// Wrap policies.
const (
	WrapNL  WrapOption = iota // token starts the continuation line
	WrapEOL                   // token ends the first line
)

func (o WrapOption) String() string {
	if o == WrapEOL {
		return "eol"
	}
	return "nl"
}

var upper = cases.Upper(language.Und)

// normalize upper-cases an option value, so "nospace", "NoSpace" and
// "NOSPACE" are the same setting.
func normalize(v string) string {
	return upper.String(strings.TrimSpace(v))
}

// ParsePadOption reads the "option" property of a padding check.
func ParsePadOption(props lint.Properties, key string, def PadOption) (PadOption, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	switch normalize(v) {
	case "SPACE":
		return Space, nil
	case "NOSPACE":
		return NoSpace, nil
	}
	return def, &lint.PropertyError{Name: key, Value: v}
}

// ParseWrapOption reads the "option" property of a wrapping check.
func ParseWrapOption(props lint.Properties, key string, def WrapOption) (WrapOption, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	switch normalize(v) {
	case "NL":
		return WrapNL, nil
	case "EOL":
		return WrapEOL, nil
	}
	return def, &lint.PropertyError{Name: key, Value: v}
}

// charAt returns the character at 0-based index i of line, and false when
// i is outside the line.
func charAt(line []rune, i int) (rune, bool) {
	if i < 0 || i >= len(line) {
		return 0, false
	}
	return line[i], true
}

func isSpaceAt(line []rune, i int) bool {
	r, ok := charAt(line, i)
	return ok && unicode.IsSpace(r)
}

// blankBefore reports whether the first n characters of line are all
// whitespace.
func blankBefore(line []rune, n int) bool {
	for i := 0; i < n && i < len(line); i++ {
		if !unicode.IsSpace(line[i]) {
			return false
		}
	}
	return true
}

// blankFrom reports whether line holds only whitespace from index i on.
func blankFrom(line []rune, i int) bool {
	for ; i < len(line); i++ {
		if !unicode.IsSpace(line[i]) {
			return false
		}
	}
	return true
}
