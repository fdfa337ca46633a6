// Package filter selects the instances a cost report is computed for.
package filter

import (
	"regexp"
	"strings"
)

// Matcher is a compiled glob pattern
type Matcher struct {
	glob string
	re   *regexp.Regexp
}

// Compile converts a glob into a case-insensitive, fully anchored matcher.
// '*' matches zero or more characters, everything else is literal.
func Compile(glob string) *Matcher {
	parts := strings.Split(glob, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}

	// (?s) lets '*' span newlines in tag values
	expr := `(?is)\A` + strings.Join(parts, ".*") + `\z`

	return &Matcher{
		glob: glob,
		re:   regexp.MustCompile(expr),
	}
}

// Match reports whether s matches the whole glob
func (m *Matcher) Match(s string) bool {
	return m.re.MatchString(s)
}

// String returns the source glob
func (m *Matcher) String() string {
	return m.glob
}
