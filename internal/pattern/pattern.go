// Package pattern compiles glob-style symbol patterns into a single matcher.
package pattern

import (
	"regexp"
	"sort"
	"strings"
)

// Matcher tests symbol names against the alternation of a pattern set.
// The zero value and a nil *Matcher never match.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds one matcher for patterns. Each '*' stands for any run of
// characters and each pattern is bounded by word boundaries, so "foo_*" does
// not match inside "myfoo_x". Patterns are joined in sorted order so the
// compiled expression does not depend on set iteration order.
func Compile(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return &Matcher{}, nil
	}
	sorted := append([]string(nil), patterns...)
	sort.Strings(sorted)

	var b strings.Builder
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(`(\b`)
		for j, lit := range strings.Split(p, "*") {
			if j > 0 {
				b.WriteString(".*")
			}
			b.WriteString(regexp.QuoteMeta(lit))
		}
		b.WriteString(`\b)`)
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(patterns []string) *Matcher {
	m, err := Compile(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether name matches any of the compiled patterns.
func (m *Matcher) Match(name string) bool {
	if m == nil || m.re == nil {
		return false
	}
	return m.re.MatchString(name)
}

// Empty reports whether the matcher was built from no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || m.re == nil
}

func (m *Matcher) String() string {
	if m.Empty() {
		return ""
	}
	return m.re.String()
}
