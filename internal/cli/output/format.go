package output

import (
	"fmt"
	"strings"
)

// FormatHeader renders a heading for mode.
func FormatHeader(mode Mode, level int, title string) string {
	if mode == ModeMarkdown {
		return strings.Repeat("#", max(level, 1)) + " " + title
	}
	return title
}

// FormatKeyValue renders a "key: value" line for mode.
func FormatKeyValue(mode Mode, key, value string) string {
	if mode == ModeMarkdown {
		return fmt.Sprintf("- **%s:** %s", key, value)
	}
	return fmt.Sprintf("  %s: %s", key, value)
}

// FormatList joins items for display; markdown wraps each in backticks.
func FormatList(mode Mode, items []string) string {
	if len(items) == 0 {
		return "-"
	}
	if mode == ModeMarkdown {
		return "`" + strings.Join(items, "`, `") + "`"
	}
	return strings.Join(items, ", ")
}
