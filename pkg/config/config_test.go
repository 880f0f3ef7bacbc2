// Test Type: Unit Test
// Description: Tests for settings loading, saving and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/arthur-debert/srcexport/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.True(t, s.ComputeHash)
	assert.True(t, s.ConvertRelativeHintPaths)
	assert.False(t, s.ReplaceLinkFiles)
	assert.True(t, s.RemoveBinding)
	assert.True(t, s.KeepSymbolicLinks)
	assert.True(t, s.OverrideExisting)
	assert.True(t, s.UnprotectFile)
	assert.False(t, s.ExcludeGenerated)
	require.NotNil(t, s.OutputReadOnly)
	assert.False(t, *s.OutputReadOnly)
	assert.Empty(t, s.Replacements)
	assert.Empty(t, s.ExcludedProjects)

	require.Len(t, s.Rules, 76)

	packages := s.Rules[0]
	assert.Equal(t, filter.Include, packages.Kind)
	assert.Equal(t, filter.Regex, packages.Expression)
	assert.True(t, packages.ApplyToPath)
	assert.False(t, packages.ApplyToFileName)

	includes := s.Rules.Of(filter.Include)
	assert.Len(t, includes, 1)
	assert.Len(t, s.Rules.Of(filter.Exclude), 75)

	// every default rule is enabled and compiles
	for i := range s.Rules {
		assert.True(t, s.Rules[i].Enabled(), s.Rules[i].Pattern)
	}
}

func TestDefault_RulesMatch(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name  string
		isDir bool
		rel   string
		kind  filter.Kind
		want  bool
	}{
		{"suo file", false, "App.suo", filter.Exclude, true},
		{"user file case-insensitive", false, "src/App.csproj.USER", filter.Exclude, true},
		{"obj directory", true, "src/obj", filter.Exclude, true},
		{"obj file is kept", false, "src/obj", filter.Exclude, false},
		{"source file", false, "src/Program.cs", filter.Exclude, false},
		{"resharper dir", true, "_ReSharper.App", filter.Exclude, true},
		{"nuget package", false, "packages/Newtonsoft.Json/lib/a.dll", filter.Include, true},
		{"nested nuget package", false, "src/packages/x/a.dll", filter.Include, true},
		{"not a package", false, "src/mypackages/a.dll", filter.Include, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := tt.rel[strings.LastIndex(tt.rel, "/")+1:]
			assert.Equal(t, tt.want, s.Rules.AnyMatch(tt.kind, tt.isDir, tt.rel, name))
		})
	}
}

func TestDefault_EnvOverrides(t *testing.T) {
	t.Setenv("SRCEXPORT_COMPUTE_HASH", "no")
	t.Setenv("SRCEXPORT_EXCLUDE_GENERATED", "true")
	t.Setenv("SRCEXPORT_RULES", "ignored")

	s, err := Default()
	require.NoError(t, err)

	assert.False(t, s.ComputeHash)
	assert.True(t, s.ExcludeGenerated)
	assert.Len(t, s.Rules, 76)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Len(t, s.Rules, 76)
}

func TestLoad_TOML(t *testing.T) {
	path := writeSettings(t, "settings.toml", `
compute_hash = false
remove_binding = true

[[rules]]
pattern = "*.log"

[[rules]]
pattern = "keep.log"
kind = "include"
apply_to_path = false
case_sensitive = true

[[rules]]
pattern = "disabled"
enabled = false

[[replacements]]
search = "Acme"
replace = "Contoso"

[[excluded_projects]]
id = "{8A2B6A0E-1F3C-4D5E-9A7B-1C2D3E4F5A6B}"
name = "Legacy"
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.False(t, s.ComputeHash)
	assert.True(t, s.RemoveBinding)
	assert.False(t, s.KeepSymbolicLinks, "a file replaces the defaults")
	assert.Nil(t, s.OutputReadOnly)

	require.Len(t, s.Rules, 3)
	first := s.Rules[0]
	assert.Equal(t, filter.Exclude, first.Kind)
	assert.Equal(t, filter.Glob, first.Expression)
	assert.True(t, first.ApplyToFileName)
	assert.True(t, first.ApplyToPath)
	assert.True(t, first.ApplyToFile)
	assert.True(t, first.ApplyToDirectory)
	assert.True(t, first.Enabled())

	second := s.Rules[1]
	assert.Equal(t, filter.Include, second.Kind)
	assert.False(t, second.ApplyToPath)
	assert.True(t, second.CaseSensitive)

	assert.False(t, s.Rules[2].Enabled())

	assert.Equal(t, []rewrite.Replacement{{SearchText: "Acme", ReplacementText: "Contoso"}}, s.Replacements)
	require.Len(t, s.ExcludedProjects, 1)
	assert.Equal(t, "8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b", s.ExcludedProjects[0].ID)
	assert.Equal(t, []string{"{8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b}"}, s.ExcludedProjectIDs())
}

func TestLoad_YAML(t *testing.T) {
	path := writeSettings(t, "settings.yml", `
compute_hash: true
unprotect: "off"
output_read_only: true
rules:
  - pattern: '^bin$'
    expression: regex
    apply_to_file: false
replacements:
  - search: foo
    replace: bar
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.ComputeHash)
	assert.False(t, s.UnprotectFile)
	require.NotNil(t, s.OutputReadOnly)
	assert.True(t, *s.OutputReadOnly)
	require.Len(t, s.Rules, 1)
	assert.Equal(t, filter.Regex, s.Rules[0].Expression)
	assert.False(t, s.Rules[0].ApplyToFile)
	assert.True(t, s.Rules.AnyMatch(filter.Exclude, true, "bin", "bin"))
	assert.True(t, s.CanReplaceText())
}

func TestLoad_XML(t *testing.T) {
	path := writeSettings(t, "settings.xml", `<?xml version="1.0" encoding="utf-8"?>
<Settings xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ComputeHash="true" RemoveTfsBinding="false" UnprotectFile="true" KeepSymbolicLinks="true">
  <ExcludedProjects>
    <Project Id="8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b" Name="Legacy" />
  </ExcludedProjects>
  <Filters>
    <Filter ApplyToFileName="true" ApplyToFile="true" FilterType="Exclude">*.suo</Filter>
    <Filter ApplyToPath="true" ExpressionType="Regex" FilterType="Include">(.*/|)packages/.*</Filter>
    <Filter ApplyToFileName="true" Enabled="false">*.txt</Filter>
  </Filters>
  <OutputReadOnly xsi:nil="true" />
  <Replace text="Acme" by="Contoso" />
</Settings>`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.ComputeHash)
	assert.False(t, s.RemoveBinding)
	assert.False(t, s.OverrideExisting)
	assert.True(t, s.KeepSymbolicLinks)
	assert.Nil(t, s.OutputReadOnly)

	require.Len(t, s.Rules, 3)
	assert.Equal(t, "*.suo", s.Rules[0].Pattern)
	assert.True(t, s.Rules[0].ApplyToFile)
	assert.False(t, s.Rules[0].ApplyToDirectory)
	assert.False(t, s.Rules[0].ApplyToPath)
	assert.Equal(t, filter.Include, s.Rules[1].Kind)
	assert.Equal(t, filter.Regex, s.Rules[1].Expression)
	assert.False(t, s.Rules[2].Enabled())

	require.Len(t, s.ExcludedProjects, 1)
	assert.Equal(t, "Legacy", s.ExcludedProjects[0].Name)
	assert.Equal(t, []rewrite.Replacement{{SearchText: "Acme", ReplacementText: "Contoso"}}, s.Replacements)
}

func TestLoad_XMLWindowsPathRules(t *testing.T) {
	path := writeSettings(t, "settings.xml", `<?xml version="1.0" encoding="utf-8"?>
<Settings xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Filters>
    <Filter ApplyToPath="true" ExpressionType="Regex" FilterType="Include">^(.*\\|)packages\\.*</Filter>
    <Filter ApplyToFileName="true" ApplyToFile="true" FilterType="Exclude">*.dll</Filter>
  </Filters>
</Settings>
`)

	s, err := Load(path)
	require.NoError(t, err)

	rules := filter.Set(s.Rules)
	assert.True(t, rules.AnyMatch(filter.Include, false, "packages/Newtonsoft.Json/lib/net45/Newtonsoft.Json.dll", "Newtonsoft.Json.dll"))
	assert.True(t, rules.AnyMatch(filter.Exclude, false, "bin/App.dll", "App.dll"))
	assert.False(t, rules.AnyMatch(filter.Include, false, "bin/App.dll", "App.dll"))
}

func TestLoad_XMLOutputReadOnlyValue(t *testing.T) {
	path := writeSettings(t, "settings.xml", `<Settings><OutputReadOnly>true</OutputReadOnly></Settings>`)

	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s.OutputReadOnly)
	assert.True(t, *s.OutputReadOnly)
	assert.Empty(t, s.Rules)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{"unknown extension", "settings.ini", "a=b", errors.ErrConfigLoad},
		{"broken toml", "settings.toml", "[[rules]\npattern=", errors.ErrConfigParse},
		{"wrong xml root", "settings.xml", "<Options />", errors.ErrConfigParse},
		{"broken xml", "settings.xml", "<Settings>", errors.ErrConfigParse},
		{"bad xml bool", "settings.xml", `<Settings ComputeHash="maybe" />`, errors.ErrConfigParse},
		{"unknown kind", "settings.toml", "[[rules]]\npattern = 'a'\nkind = 'maybe'", errors.ErrConfigValid},
		{"unknown expression", "settings.toml", "[[rules]]\npattern = 'a'\nexpression = 'wild'", errors.ErrConfigValid},
		{"bad regex", "settings.toml", "[[rules]]\npattern = '('\nexpression = 'regex'", errors.ErrConfigValid},
		{"empty replacement", "settings.toml", "[[replacements]]\nsearch = ''\nreplace = 'x'", errors.ErrConfigValid},
		{"bad project id", "settings.toml", "[[excluded_projects]]\nid = 'nope'", errors.ErrConfigValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestSave_RoundTrip(t *testing.T) {
	original, err := Default()
	require.NoError(t, err)
	original.Replacements = []rewrite.Replacement{{SearchText: "Acme", ReplacementText: "Contoso"}}
	original.ExcludedProjects = []Project{{ID: "8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b", Name: "Legacy"}}
	disabled := filter.NameRule("*.bak", filter.Exclude, false, true)
	disabled.EnabledFlag = false
	disabled.CaseSensitive = true
	original.Rules = append(original.Rules, disabled)

	for _, name := range []string{"out.toml", "out.yaml", "out.xml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, original))

			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, original.ComputeHash, loaded.ComputeHash)
			assert.Equal(t, original.RemoveBinding, loaded.RemoveBinding)
			assert.Equal(t, original.KeepSymbolicLinks, loaded.KeepSymbolicLinks)
			assert.Equal(t, original.OutputReadOnly, loaded.OutputReadOnly)
			assert.Equal(t, original.Replacements, loaded.Replacements)
			assert.Equal(t, original.ExcludedProjects, loaded.ExcludedProjects)
			require.Len(t, loaded.Rules, len(original.Rules))
			for i := range original.Rules {
				assert.True(t, original.Rules[i].Equal(loaded.Rules[i]), "rule %d: %s", i, original.Rules[i].Pattern)
			}
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	err = Save(filepath.Join(t.TempDir(), "out.ini"), s)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSettings_Trace(t *testing.T) {
	s := &Settings{
		RemoveBinding: true,
		Rules: filter.Set{
			filter.NameRule("keep.txt", filter.Include, false, true),
			filter.NameRule("*.obj", filter.Exclude, false, true),
		},
	}

	trace := s.Trace()
	assert.Contains(t, trace, "Remove Tfs Binding: true\n")
	assert.Contains(t, trace, "Output Files Read Only: Do not change\n")

	exclude := strings.Index(trace, "FilterType: exclude, Text: *.obj, CaseSensitive: false")
	include := strings.Index(trace, "FilterType: include, Text: keep.txt, CaseSensitive: false")
	require.NotEqual(t, -1, exclude)
	require.NotEqual(t, -1, include)
	assert.Less(t, exclude, include, "exclude rules are listed first")
}

func TestProject_BracedID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"8A2B6A0E-1F3C-4D5E-9A7B-1C2D3E4F5A6B", "{8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b}"},
		{"{8A2B6A0E-1F3C-4D5E-9A7B-1C2D3E4F5A6B}", "{8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b}"},
		{"not-a-guid", "not-a-guid"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Project{ID: tt.id}.BracedID())
		})
	}
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, DefaultContent(), "[[rules]]")
}
