// Package rewrite applies ordered literal search/replace pairs to text.
//
// Pairs are applied one after the other and each pair scans the output of
// the previous one, so ("a" -> "b") followed by ("b" -> "c") turns "a" into
// "c". The same rewriter is used for relative output paths and for file
// contents.
package rewrite

import (
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
)

// Replacement is one literal search/replace pair
type Replacement struct {
	SearchText      string `koanf:"search" toml:"search" yaml:"search"`
	ReplacementText string `koanf:"replace" toml:"replace" yaml:"replace"`
}

// Validate rejects pairs that cannot be applied
func (r Replacement) Validate() error {
	if r.SearchText == "" {
		return errors.New(errors.ErrConfigValid, "replacement search text cannot be empty").
			WithDetail("replacement", r.ReplacementText)
	}
	return nil
}

// Rewriter applies a fixed list of replacements
type Rewriter struct {
	replacements []Replacement
}

// New creates a rewriter. The list is copied.
func New(replacements []Replacement) *Rewriter {
	list := make([]Replacement, len(replacements))
	copy(list, replacements)
	return &Rewriter{replacements: list}
}

// Apply runs every replacement over text in list order.
// Pairs with empty search text are ignored.
func (r *Rewriter) Apply(text string) string {
	if r == nil {
		return text
	}
	for _, rep := range r.replacements {
		if rep.SearchText == "" {
			continue
		}
		text = strings.ReplaceAll(text, rep.SearchText, rep.ReplacementText)
	}
	return text
}
