package filter

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
)

// matcherKey is everything the compiled expression depends on
type matcherKey struct {
	pattern       string
	expression    Expression
	caseSensitive bool
}

// compiled is the memoized matcher of a rule
type compiled struct {
	key matcherKey
	re  *regexp.Regexp
	err error
}

// compile turns a pattern into a whole-string anchored expression
func compile(key matcherKey) (*regexp.Regexp, error) {
	body := key.pattern
	if key.expression != Regex {
		body = globToRegex(key.pattern)
	}

	// s: the subject is a single name or path, '.' must cross anything
	flags := "(?s)"
	if !key.caseSensitive {
		flags = "(?si)"
	}

	re, err := regexp.Compile(flags + "^(?:" + body + ")$")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid %s pattern %q", key.expression, key.pattern)
	}
	return re, nil
}

// globToRegex escapes the pattern literally, then re-enables the three
// glob operators: '*' any sequence, '?' one character, '|' alternation.
func globToRegex(pattern string) string {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	escaped = strings.ReplaceAll(escaped, `\|`, "|")
	escaped = strings.ReplaceAll(escaped, `\?`, ".")
	return escaped
}
