package traversal

import (
	"path/filepath"

	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/spf13/afero"
)

// GeneratedDetector flags generated files
type GeneratedDetector interface {
	IsGenerated(path, relativePath string) bool
}

// Resolver is the include/exclude gate for every traversal candidate
type Resolver struct {
	fs               afero.Fs
	rules            filter.Set
	excludeGenerated bool
	detector         GeneratedDetector
}

// NewResolver creates a resolver. detector may be nil when generated files
// are not excluded.
func NewResolver(fs afero.Fs, rules filter.Set, excludeGenerated bool, detector GeneratedDetector) *Resolver {
	return &Resolver{
		fs:               fs,
		rules:            rules,
		excludeGenerated: excludeGenerated,
		detector:         detector,
	}
}

// MustExclude decides whether the entry at path is left out of the export.
//
// Precedence does not depend on rule order: any matching include rule keeps
// the entry, otherwise any matching exclude rule drops it, otherwise the
// generated-file heuristic decides when it is switched on. Entries that do
// not exist are never excluded.
func (r *Resolver) MustExclude(path, relativePath string) bool {
	if len(r.rules) == 0 {
		return false
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return false
	}
	isDir := info.IsDir()
	name := filepath.Base(path)

	if r.rules.AnyMatch(filter.Include, isDir, relativePath, name) {
		return false
	}
	if r.rules.AnyMatch(filter.Exclude, isDir, relativePath, name) {
		return true
	}
	return r.excludeGenerated && r.detector != nil && r.detector.IsGenerated(path, relativePath)
}
