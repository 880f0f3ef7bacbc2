package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/arthur-debert/srcexport/pkg/rewrite"
	"github.com/google/uuid"
)

// Project identifies a build project, typically by its ProjectGuid
type Project struct {
	ID   string `koanf:"id" toml:"id" yaml:"id"`
	Name string `koanf:"name" toml:"name,omitempty" yaml:"name,omitempty"`
}

// BracedID returns the identifier the way solution files write it:
// lower case and wrapped in braces
func (p Project) BracedID() string {
	id, err := uuid.Parse(strings.TrimSpace(p.ID))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(p.ID))
	}
	return "{" + id.String() + "}"
}

// Settings configure one export run. They are not changed by the run.
type Settings struct {
	Rules            filter.Set
	Replacements     []rewrite.Replacement
	ExcludedProjects []Project

	ComputeHash              bool
	ConvertRelativeHintPaths bool
	ReplaceLinkFiles         bool
	RemoveBinding            bool
	KeepSymbolicLinks        bool
	OverrideExisting         bool
	UnprotectFile            bool
	ExcludeGenerated         bool

	// OutputReadOnly forces the read-only state of exported files when set
	OutputReadOnly *bool
}

// CanReplaceText reports whether any replacement is configured
func (s *Settings) CanReplaceText() bool {
	return len(s.Replacements) > 0
}

// ExcludedProjectIDs returns the braced identifiers of the excluded projects
func (s *Settings) ExcludedProjectIDs() []string {
	ids := make([]string, 0, len(s.ExcludedProjects))
	for _, p := range s.ExcludedProjects {
		if p.ID != "" {
			ids = append(ids, p.BracedID())
		}
	}
	return ids
}

// Validate compiles every enabled rule and checks replacements and project
// identifiers. Project identifiers are normalized to lower-case form.
func (s *Settings) Validate() error {
	for i := range s.Rules {
		rule := &s.Rules[i]
		if !rule.Enabled() {
			continue
		}
		if _, err := rule.Compile(); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "rule %d is invalid", i+1)
		}
	}

	for i, rep := range s.Replacements {
		if err := rep.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "replacement %d is invalid", i+1)
		}
	}

	for i, p := range s.ExcludedProjects {
		id, err := uuid.Parse(strings.TrimSpace(p.ID))
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "excluded project %q has an invalid id %q", p.Name, p.ID)
		}
		s.ExcludedProjects[i].ID = id.String()
	}
	return nil
}

// Trace renders the settings for the configuration event of a run.
// Exclude rules are listed before include rules.
func (s *Settings) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Remove Tfs Binding: %t\n", s.RemoveBinding)
	fmt.Fprintf(&sb, "Compute hash: %t\n", s.ComputeHash)
	fmt.Fprintf(&sb, "Override Existing Files: %t\n", s.OverrideExisting)
	fmt.Fprintf(&sb, "Unprotect Files: %t\n", s.UnprotectFile)
	if s.OutputReadOnly != nil {
		fmt.Fprintf(&sb, "Output Files Read Only: %t\n", *s.OutputReadOnly)
	} else {
		sb.WriteString("Output Files Read Only: Do not change\n")
	}
	fmt.Fprintf(&sb, "Exclude Generated Files: %t\n", s.ExcludeGenerated)
	fmt.Fprintf(&sb, "Keep Symbolic Links: %t\n", s.KeepSymbolicLinks)
	fmt.Fprintf(&sb, "Replace Link Files: %t\n", s.ReplaceLinkFiles)
	fmt.Fprintf(&sb, "Convert Relative Hint Paths: %t\n", s.ConvertRelativeHintPaths)

	for _, kind := range []filter.Kind{filter.Exclude, filter.Include} {
		for _, rule := range s.Rules {
			if rule.KindOrDefault() == kind {
				sb.WriteString(rule.String())
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
