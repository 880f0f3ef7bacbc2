// Package filter implements the declarative include/exclude rules of an
// export.
//
// A rule holds a glob or regular expression and is tested against an entry's
// base name, its path relative to the export root, or both:
//
//	*.suo            any name ending in .suo
//	OBJ|BIN          either name (glob alternation)
//	(.*/|)packages/.* regex over the relative path
//
// Patterns always match the whole subject, never a substring. Glob patterns
// know three operators: '*' (any sequence), '?' (one character) and '|'
// (alternation); every other character is literal. Matching is
// case-insensitive unless the rule says otherwise.
//
// The compiled expression is cached on the rule and rebuilt whenever the
// pattern, expression kind or case sensitivity changes.
package filter
