package filter

import (
	"fmt"
	"regexp"
)

// Kind tells whether a matching rule keeps or drops an entry
type Kind string

const (
	// Include rules are whitelist overrides
	Include Kind = "include"
	// Exclude rules are blacklist rules
	Exclude Kind = "exclude"
)

// Expression tells how the pattern text is interpreted
type Expression string

const (
	Glob  Expression = "glob"
	Regex Expression = "regex"
)

// Rule is one declarative match rule.
//
// The zero value is an inert exclude rule: it has no pattern and its
// enabled flag is off. Use NewRule or NameRule to build active rules.
type Rule struct {
	Pattern    string
	Expression Expression
	Kind       Kind

	// ApplyToFileName tests the pattern against the base name
	ApplyToFileName bool
	// ApplyToPath tests the pattern against the root-relative path
	ApplyToPath bool

	// ApplyToFile and ApplyToDirectory restrict the rule to one entry type
	// when exactly one of them is set
	ApplyToFile      bool
	ApplyToDirectory bool

	CaseSensitive bool

	// EnabledFlag is the explicit switch; see Enabled
	EnabledFlag bool

	matcher *compiled
}

// NewRule creates an enabled glob rule
func NewRule(pattern string, kind Kind, applyToFileName, applyToPath, applyToDirectory, applyToFile bool) Rule {
	return Rule{
		Pattern:          pattern,
		Expression:       Glob,
		Kind:             kind,
		ApplyToFileName:  applyToFileName,
		ApplyToPath:      applyToPath,
		ApplyToDirectory: applyToDirectory,
		ApplyToFile:      applyToFile,
		EnabledFlag:      true,
	}
}

// NameRule creates an enabled glob rule tested against base names only
func NameRule(pattern string, kind Kind, applyToDirectory, applyToFile bool) Rule {
	return NewRule(pattern, kind, true, false, applyToDirectory, applyToFile)
}

// Enabled reports whether the rule takes part in matching. A rule without
// pattern text is always inert.
func (r *Rule) Enabled() bool {
	return r.Pattern != "" && r.EnabledFlag
}

// ExpressionOrDefault returns the expression kind, Glob when unset
func (r *Rule) ExpressionOrDefault() Expression {
	if r.Expression == "" {
		return Glob
	}
	return r.Expression
}

// KindOrDefault returns the rule kind, Exclude when unset
func (r *Rule) KindOrDefault() Kind {
	if r.Kind == "" {
		return Exclude
	}
	return r.Kind
}

// SetPattern replaces the pattern text and drops the compiled matcher
func (r *Rule) SetPattern(pattern string) {
	if r.Pattern == pattern {
		return
	}
	r.Pattern = pattern
	r.matcher = nil
}

// Equal compares every field except the compiled matcher
func (r Rule) Equal(other Rule) bool {
	return r.Pattern == other.Pattern &&
		r.ExpressionOrDefault() == other.ExpressionOrDefault() &&
		r.KindOrDefault() == other.KindOrDefault() &&
		r.ApplyToFileName == other.ApplyToFileName &&
		r.ApplyToPath == other.ApplyToPath &&
		r.ApplyToFile == other.ApplyToFile &&
		r.ApplyToDirectory == other.ApplyToDirectory &&
		r.CaseSensitive == other.CaseSensitive &&
		r.EnabledFlag == other.EnabledFlag
}

// String renders the rule for configuration traces
func (r Rule) String() string {
	return fmt.Sprintf("FilterType: %s, Text: %s, CaseSensitive: %t", r.KindOrDefault(), r.Pattern, r.CaseSensitive)
}

// Compile builds (or returns the cached) matcher for the rule
func (r *Rule) Compile() (*regexp.Regexp, error) {
	key := matcherKey{
		pattern:       r.Pattern,
		expression:    r.ExpressionOrDefault(),
		caseSensitive: r.CaseSensitive,
	}
	if r.matcher == nil || r.matcher.key != key {
		re, err := compile(key)
		r.matcher = &compiled{key: key, re: re, err: err}
	}
	return r.matcher.re, r.matcher.err
}
