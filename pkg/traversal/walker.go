// Package traversal produces the ordered stream of source entries of an
// export: at every level the included files come first, then the included
// subdirectories, each followed depth-first by its own contents.
package traversal

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Entry is one emitted source entry
type Entry struct {
	Path         string
	RelativePath string
	Name         string
	IsDir        bool
	// IsSymlink is only reported when links are kept
	IsSymlink bool
}

// WalkFunc is called for every emitted entry; a non-nil error stops the walk
// and is returned from Walk.
type WalkFunc func(entry Entry) error

// Options configure a Walker
type Options struct {
	FS       afero.Fs
	Resolver *Resolver
	// Linker is consulted only when KeepLinks is set
	Linker    types.Linker
	KeepLinks bool
	Events    types.EventSink
}

// Walker enumerates a source tree
type Walker struct {
	fs        afero.Fs
	resolver  *Resolver
	linker    types.Linker
	keepLinks bool
	events    types.EventSink
	logger    zerolog.Logger
}

// NewWalker creates a walker
func NewWalker(opts Options) *Walker {
	events := opts.Events
	if events == nil {
		events = types.NopSink{}
	}
	return &Walker{
		fs:        opts.FS,
		resolver:  opts.Resolver,
		linker:    opts.Linker,
		keepLinks: opts.KeepLinks && opts.Linker != nil,
		events:    events,
		logger:    logging.GetLogger("traversal"),
	}
}

// Walk visits every included entry below root. Each call re-reads the
// filesystem.
func (w *Walker) Walk(root string, fn WalkFunc) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "cannot read source directory %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", root)
	}
	return w.walkDir(root, root, []os.FileInfo{info}, fn)
}

func (w *Walker) walkDir(root, dir string, ancestors []os.FileInfo, fn WalkFunc) error {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list directory %s", dir)
	}

	var files, dirs []Entry
	dirInfos := map[string]os.FileInfo{}
	for _, info := range infos {
		entry, target, ok := w.classify(root, dir, info)
		if !ok {
			continue
		}
		if entry.IsDir {
			dirs = append(dirs, entry)
			dirInfos[entry.Path] = target
		} else {
			files = append(files, entry)
		}
	}

	for _, entry := range files {
		if !w.decide(entry) {
			continue
		}
		if err := fn(entry); err != nil {
			return err
		}
	}

	var included []Entry
	for _, entry := range dirs {
		if w.decide(entry) {
			included = append(included, entry)
		}
	}

	for _, entry := range included {
		if err := fn(entry); err != nil {
			return err
		}
		if entry.IsSymlink {
			// kept links are recreated, never descended
			continue
		}
		target := dirInfos[entry.Path]
		if isAncestor(target, ancestors) {
			w.logger.Warn().Str("path", entry.Path).Msg("link cycle detected, not descending")
			continue
		}
		if err := w.walkDir(root, entry.Path, append(ancestors, target), fn); err != nil {
			return err
		}
	}
	return nil
}

// classify resolves the entry type through links. Dangling links are
// reported as files when links are kept and skipped otherwise.
func (w *Walker) classify(root, dir string, info os.FileInfo) (Entry, os.FileInfo, bool) {
	path := filepath.Join(dir, info.Name())
	entry := Entry{
		Path:         path,
		RelativePath: filesystem.RelativePath(root, path),
		Name:         info.Name(),
		IsDir:        info.IsDir(),
	}

	target := info
	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := w.fs.Stat(path)
		if err != nil {
			if !w.keepLinks {
				w.logger.Warn().Err(err).Str("path", path).Msg("skipping dangling link")
				return entry, nil, false
			}
		} else {
			target = resolved
			entry.IsDir = resolved.IsDir()
		}
	}

	if w.keepLinks {
		entry.IsSymlink = w.linker.IsSymbolicLink(path)
	}
	return entry, target, true
}

// decide applies the resolver and reports the decision
func (w *Walker) decide(entry Entry) bool {
	if w.resolver != nil && w.resolver.MustExclude(entry.Path, entry.RelativePath) {
		w.events.Log(types.CategoryExclude, entry.Path)
		return false
	}
	w.events.Log(types.CategoryInclude, entry.Path)
	return true
}

func isAncestor(info os.FileInfo, ancestors []os.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}
