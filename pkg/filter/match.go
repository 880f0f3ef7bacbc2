package filter

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Match tests the rule against an existing entry. fullPath is used only to
// decide whether the entry is a file or a directory; a path that does not
// exist never matches.
func (r *Rule) Match(fs afero.Fs, fullPath, relativePath, name string) bool {
	info, err := fs.Stat(fullPath)
	if err != nil {
		return false
	}
	return r.MatchTarget(info.IsDir(), relativePath, name)
}

// MatchTarget tests the rule against an entry whose type is already known.
// Relative paths are compared with forward slashes whatever the platform,
// then with backslashes, the separator of rules written for Windows.
func (r *Rule) MatchTarget(isDir bool, relativePath, name string) bool {
	if !r.appliesTo(isDir) {
		return false
	}

	re, err := r.Compile()
	if err != nil {
		return false
	}

	if r.ApplyToFileName && re.MatchString(name) {
		return true
	}
	if r.ApplyToPath {
		slashed := filepath.ToSlash(relativePath)
		if re.MatchString(slashed) {
			return true
		}
		if strings.Contains(slashed, "/") && re.MatchString(strings.ReplaceAll(slashed, "/", `\`)) {
			return true
		}
	}
	return false
}

// appliesTo is the file/directory gate. Only a one-sided flag restricts;
// both set or both clear apply to everything.
func (r *Rule) appliesTo(isDir bool) bool {
	if isDir && r.ApplyToFile && !r.ApplyToDirectory {
		return false
	}
	if !isDir && r.ApplyToDirectory && !r.ApplyToFile {
		return false
	}
	return true
}

// Set is an ordered rule list
type Set []Rule

// Of returns the enabled rules of one kind, in list order
func (s Set) Of(kind Kind) []*Rule {
	var out []*Rule
	for i := range s {
		if s[i].Enabled() && s[i].KindOrDefault() == kind {
			out = append(out, &s[i])
		}
	}
	return out
}

// AnyMatch reports whether an enabled rule of the given kind matches the entry
func (s Set) AnyMatch(kind Kind, isDir bool, relativePath, name string) bool {
	for _, rule := range s.Of(kind) {
		if rule.MatchTarget(isDir, relativePath, name) {
			return true
		}
	}
	return false
}
