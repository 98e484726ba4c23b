// Package query implements the search query language used to match
// conversation records, and the role-filter applied after a search runs.
package query

import (
	"regexp"
	"strings"
)

// Condition is a parsed, evaluable query expression. Matching is always
// case-insensitive for literal text; regex literals honor whatever flags
// were written inline and are case-sensitive unless the i flag is given
// (/foo/ does not match "FOO", /foo/i does).
type Condition interface {
	// Match reports whether text satisfies the condition.
	Match(text string) bool
	// String renders the condition back to a query-language expression,
	// used for echoing the effective query in the stats/search output.
	String() string
	// FindIndex reports the byte offset and length of the first place in
	// text this condition's positive term matches, for building a
	// context window around it in CLI previews. ok is false when the
	// condition has no single matchable span (e.g. Not) or text doesn't
	// satisfy it.
	FindIndex(text string) (start, length int, ok bool)
}

// Literal matches when text contains the literal substring, case-insensitively.
type Literal struct {
	Value string
}

func (l Literal) Match(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(l.Value))
}

func (l Literal) String() string { return quoteIfNeeded(l.Value) }

func (l Literal) FindIndex(text string) (int, int, bool) {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(l.Value))
	if idx < 0 {
		return 0, 0, false
	}
	return idx, len(l.Value), true
}

// Regex matches when the compiled pattern finds a match in text.
type Regex struct {
	Source string
	re     *regexp.Regexp
}

// NewRegex compiles pattern with the given inline flags ("i" = case
// insensitive, the only flag the grammar recognizes). The grammar is
// case-insensitive by default for literals but not for explicit regexes,
// unless "i" is present.
func NewRegex(pattern, flags string) (Regex, error) {
	expr := pattern
	if strings.Contains(flags, "i") {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Regex{}, err
	}
	return Regex{Source: "/" + pattern + "/" + flags, re: re}, nil
}

func (r Regex) Match(text string) bool { return r.re.MatchString(text) }
func (r Regex) String() string         { return r.Source }

func (r Regex) FindIndex(text string) (int, int, bool) {
	loc := r.re.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1] - loc[0], true
}

// And matches when every operand matches.
type And struct{ Left, Right Condition }

func (a And) Match(text string) bool { return a.Left.Match(text) && a.Right.Match(text) }
func (a And) String() string         { return "(" + a.Left.String() + " AND " + a.Right.String() + ")" }

func (a And) FindIndex(text string) (int, int, bool) {
	if !a.Match(text) {
		return 0, 0, false
	}
	if start, length, ok := a.Left.FindIndex(text); ok {
		return start, length, true
	}
	return a.Right.FindIndex(text)
}

// Or matches when either operand matches.
type Or struct{ Left, Right Condition }

func (o Or) Match(text string) bool { return o.Left.Match(text) || o.Right.Match(text) }
func (o Or) String() string         { return "(" + o.Left.String() + " OR " + o.Right.String() + ")" }

func (o Or) FindIndex(text string) (int, int, bool) {
	if start, length, ok := o.Left.FindIndex(text); ok {
		return start, length, true
	}
	return o.Right.FindIndex(text)
}

// Not matches when the operand does not.
type Not struct{ Inner Condition }

func (n Not) Match(text string) bool { return !n.Inner.Match(text) }
func (n Not) String() string         { return "NOT " + n.Inner.String() }

// FindIndex always reports no match: a negated term has no positive
// span of its own to center a preview window on.
func (n Not) FindIndex(string) (int, int, bool) { return 0, 0, false }

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t\n()\"'/") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// Role is the small set of message roles the role filter recognizes.
// An empty Role means "no filter" (match every role).
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MatchesRole reports whether role satisfies the filter. An empty filter
// matches everything; the comparison is case-insensitive.
func MatchesRole(filter, role string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(filter, role)
}
