package config

import (
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/arthur-debert/srcexport/pkg/rewrite"
)

// document is the file layout of the settings
type document struct {
	ComputeHash       bool  `koanf:"compute_hash" toml:"compute_hash" yaml:"compute_hash"`
	ConvertHintPaths  bool  `koanf:"convert_hint_paths" toml:"convert_hint_paths" yaml:"convert_hint_paths"`
	ReplaceLinkFiles  bool  `koanf:"replace_link_files" toml:"replace_link_files" yaml:"replace_link_files"`
	RemoveBinding     bool  `koanf:"remove_binding" toml:"remove_binding" yaml:"remove_binding"`
	KeepSymbolicLinks bool  `koanf:"keep_symbolic_links" toml:"keep_symbolic_links" yaml:"keep_symbolic_links"`
	OverrideExisting  bool  `koanf:"override_existing" toml:"override_existing" yaml:"override_existing"`
	Unprotect         bool  `koanf:"unprotect" toml:"unprotect" yaml:"unprotect"`
	ExcludeGenerated  bool  `koanf:"exclude_generated" toml:"exclude_generated" yaml:"exclude_generated"`
	OutputReadOnly    *bool `koanf:"output_read_only" toml:"output_read_only,omitempty" yaml:"output_read_only,omitempty"`

	Rules            []ruleDocument        `koanf:"rules" toml:"rules,omitempty" yaml:"rules,omitempty"`
	Replacements     []rewrite.Replacement `koanf:"replacements" toml:"replacements,omitempty" yaml:"replacements,omitempty"`
	ExcludedProjects []Project             `koanf:"excluded_projects" toml:"excluded_projects,omitempty" yaml:"excluded_projects,omitempty"`
}

// ruleDocument is one rule as written in a file. Missing applicability
// flags and a missing enabled flag read as true.
type ruleDocument struct {
	Pattern          string `koanf:"pattern" toml:"pattern" yaml:"pattern"`
	Expression       string `koanf:"expression" toml:"expression,omitempty" yaml:"expression,omitempty"`
	Kind             string `koanf:"kind" toml:"kind,omitempty" yaml:"kind,omitempty"`
	ApplyToName      *bool  `koanf:"apply_to_name" toml:"apply_to_name,omitempty" yaml:"apply_to_name,omitempty"`
	ApplyToPath      *bool  `koanf:"apply_to_path" toml:"apply_to_path,omitempty" yaml:"apply_to_path,omitempty"`
	ApplyToFile      *bool  `koanf:"apply_to_file" toml:"apply_to_file,omitempty" yaml:"apply_to_file,omitempty"`
	ApplyToDirectory *bool  `koanf:"apply_to_directory" toml:"apply_to_directory,omitempty" yaml:"apply_to_directory,omitempty"`
	CaseSensitive    bool   `koanf:"case_sensitive" toml:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	Enabled          *bool  `koanf:"enabled" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
}

func (d *document) settings() (*Settings, error) {
	s := &Settings{
		ComputeHash:              d.ComputeHash,
		ConvertRelativeHintPaths: d.ConvertHintPaths,
		ReplaceLinkFiles:         d.ReplaceLinkFiles,
		RemoveBinding:            d.RemoveBinding,
		KeepSymbolicLinks:        d.KeepSymbolicLinks,
		OverrideExisting:         d.OverrideExisting,
		UnprotectFile:            d.Unprotect,
		ExcludeGenerated:         d.ExcludeGenerated,
		OutputReadOnly:           d.OutputReadOnly,
		Replacements:             d.Replacements,
		ExcludedProjects:         d.ExcludedProjects,
	}

	for i, rd := range d.Rules {
		rule, err := rd.rule()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "rule %d", i+1)
		}
		s.Rules = append(s.Rules, rule)
	}
	return s, nil
}

func (rd ruleDocument) rule() (filter.Rule, error) {
	expression, err := parseExpression(rd.Expression)
	if err != nil {
		return filter.Rule{}, err
	}
	kind, err := parseKind(rd.Kind)
	if err != nil {
		return filter.Rule{}, err
	}

	return filter.Rule{
		Pattern:          rd.Pattern,
		Expression:       expression,
		Kind:             kind,
		ApplyToFileName:  orTrue(rd.ApplyToName),
		ApplyToPath:      orTrue(rd.ApplyToPath),
		ApplyToFile:      orTrue(rd.ApplyToFile),
		ApplyToDirectory: orTrue(rd.ApplyToDirectory),
		CaseSensitive:    rd.CaseSensitive,
		EnabledFlag:      orTrue(rd.Enabled),
	}, nil
}

func newDocument(s *Settings) *document {
	d := &document{
		ComputeHash:       s.ComputeHash,
		ConvertHintPaths:  s.ConvertRelativeHintPaths,
		ReplaceLinkFiles:  s.ReplaceLinkFiles,
		RemoveBinding:     s.RemoveBinding,
		KeepSymbolicLinks: s.KeepSymbolicLinks,
		OverrideExisting:  s.OverrideExisting,
		Unprotect:         s.UnprotectFile,
		ExcludeGenerated:  s.ExcludeGenerated,
		OutputReadOnly:    s.OutputReadOnly,
		Replacements:      s.Replacements,
		ExcludedProjects:  s.ExcludedProjects,
	}

	for _, r := range s.Rules {
		rd := ruleDocument{
			Pattern:          r.Pattern,
			Expression:       string(r.ExpressionOrDefault()),
			Kind:             string(r.KindOrDefault()),
			ApplyToName:      boolPtr(r.ApplyToFileName),
			ApplyToPath:      boolPtr(r.ApplyToPath),
			ApplyToFile:      boolPtr(r.ApplyToFile),
			ApplyToDirectory: boolPtr(r.ApplyToDirectory),
			CaseSensitive:    r.CaseSensitive,
		}
		if !r.EnabledFlag {
			rd.Enabled = boolPtr(false)
		}
		d.Rules = append(d.Rules, rd)
	}
	return d
}

// parseExpression accepts the names of both file layouts
func parseExpression(value string) (filter.Expression, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "glob", "globbing":
		return filter.Glob, nil
	case "regex":
		return filter.Regex, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown expression type %q", value)
	}
}

func parseKind(value string) (filter.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "exclude":
		return filter.Exclude, nil
	case "include":
		return filter.Include, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown filter type %q", value)
	}
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

func boolPtr(b bool) *bool {
	return &b
}
