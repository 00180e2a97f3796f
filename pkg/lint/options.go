package lint

import (
	"strconv"
	"strings"
)

// Properties is the raw option map handed to a module constructor. Every
// accessor returns a *PropertyError naming the key and the offending value.
type Properties map[string]string

// String returns the value for key, or defaultVal when unset.
func (p Properties) String(key, defaultVal string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return defaultVal
}

// Bool parses a boolean option.
func (p Properties) Bool(key string, defaultVal bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return defaultVal, &PropertyError{Name: key, Value: v, Err: err}
	}
	return b, nil
}

// Int parses an integer option that must be at least minVal.
func (p Properties) Int(key string, defaultVal, minVal int) (int, error) {
	v, ok := p[key]
	if !ok {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return defaultVal, &PropertyError{Name: key, Value: v, Err: err}
	}
	if n < minVal {
		return defaultVal, &PropertyError{Name: key, Value: v}
	}
	return n, nil
}

// Strings splits a comma-separated option, dropping empty items.
func (p Properties) Strings(key string) []string {
	return SplitList(p[key])
}

// SplitList splits a comma-separated value, trimming items and dropping
// empty ones.
func SplitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
