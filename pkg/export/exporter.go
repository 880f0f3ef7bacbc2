package export

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/srcexport/pkg/config"
	"github.com/arthur-debert/srcexport/pkg/copier"
	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
	"github.com/arthur-debert/srcexport/pkg/generated"
	"github.com/arthur-debert/srcexport/pkg/internal/hashutil"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/rewrite"
	"github.com/arthur-debert/srcexport/pkg/sanitize"
	"github.com/arthur-debert/srcexport/pkg/sniff"
	"github.com/arthur-debert/srcexport/pkg/traversal"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Result counts the entries of one run
type Result struct {
	Directories int
	Files       int
}

// Options carry the collaborators of an Exporter. Every field is optional.
type Options struct {
	// FS defaults to the operating system filesystem
	FS     afero.Fs
	Events types.EventSink
	// Linker defaults to the link capability of FS
	Linker  types.Linker
	Sniffer types.TextSniffer
	Hasher  types.Hasher
	// SpecialFolders defaults to sanitize.DefaultSpecialFolders
	SpecialFolders []sanitize.FolderLookup
}

// Exporter exports one source tree
type Exporter struct {
	sourceRoot string
	settings   *config.Settings
	fs         afero.Fs
	events     types.EventSink
	linker     types.Linker
	sniffer    types.TextSniffer
	hasher     types.Hasher
	folders    []sanitize.FolderLookup
	rewriter   *rewrite.Rewriter
	logger     zerolog.Logger
}

// New creates an exporter for sourceRoot. When sourceRoot names a file, its
// directory is exported.
func New(sourceRoot string, settings *config.Settings, opts Options) (*Exporter, error) {
	if settings == nil {
		return nil, errors.New(errors.ErrInvalidInput, "settings are required")
	}
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source directory is required")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if filesystem.IsFile(fs, sourceRoot) {
		sourceRoot = filepath.Dir(sourceRoot)
	}
	if abs, err := filepath.Abs(sourceRoot); err == nil {
		sourceRoot = abs
	}

	events := opts.Events
	if events == nil {
		events = types.NopSink{}
	}
	linker := opts.Linker
	if linker == nil {
		linker = filesystem.NewLinker(fs)
	}
	sniffer := opts.Sniffer
	if sniffer == nil {
		sniffer = sniff.New(fs)
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = hashutil.NewFileHasher(fs)
	}

	return &Exporter{
		sourceRoot: sourceRoot,
		settings:   settings,
		fs:         fs,
		events:     events,
		linker:     linker,
		sniffer:    sniffer,
		hasher:     hasher,
		folders:    opts.SpecialFolders,
		rewriter:   rewrite.New(settings.Replacements),
		logger:     logging.GetLogger("export"),
	}, nil
}

// SourceRoot returns the directory the exporter reads from
func (e *Exporter) SourceRoot() string {
	return e.sourceRoot
}

// Export copies the source tree into destRoot
func (e *Exporter) Export(destRoot string) (Result, error) {
	var result Result
	if destRoot == "" {
		return result, errors.New(errors.ErrInvalidInput, "destination directory is required")
	}
	if abs, err := filepath.Abs(destRoot); err == nil {
		destRoot = abs
	}
	if filesystem.IsChildOrEqual(e.sourceRoot, destRoot) {
		return result, errors.Newf(errors.ErrInvalidInput,
			"destination %s must not lie inside the source %s", destRoot, e.sourceRoot).
			WithDetail("source", e.sourceRoot).
			WithDetail("destination", destRoot)
	}

	done := logging.LogOperationStart(e.logger, "export")
	defer done()

	r, err := e.newRun()
	if err != nil {
		return result, err
	}

	e.events.Log(types.CategoryConfiguration, e.settings.Trace())

	if !filesystem.IsDir(e.fs, destRoot) {
		e.events.Log(types.CategoryCreateDirectory, destRoot)
		if err := e.fs.MkdirAll(destRoot, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate, "cannot create destination %s", destRoot)
		}
	}

	err = r.walker.Walk(e.sourceRoot, func(entry traversal.Entry) error {
		dst := filepath.Join(destRoot, e.rewriter.Apply(entry.RelativePath))
		if entry.IsDir {
			result.Directories++
			return r.exportDirectory(entry, dst)
		}
		result.Files++
		return r.exportFile(entry, dst)
	})

	e.events.Log(types.CategorySummary, fmt.Sprintf("%d directories, %d files", result.Directories, result.Files))
	e.logger.Info().
		Str("source", e.sourceRoot).
		Str("destination", destRoot).
		Int("directories", result.Directories).
		Int("files", result.Files).
		Err(err).
		Msg("Export finished")
	return result, err
}

// newRun builds the per-run state: one copier and its mismatch counter
// serve every file of the run
func (e *Exporter) newRun() (*run, error) {
	s := e.settings

	cp, err := copier.New(copier.Options{
		FS:     e.fs,
		Hasher: e.hasher,
		Verify: s.ComputeHash,
		Events: e.events,
	})
	if err != nil {
		return nil, err
	}

	resolver := traversal.NewResolver(e.fs, s.Rules, s.ExcludeGenerated, generated.NewDetector(e.fs))
	r := &run{
		Exporter: e,
		copier:   cp,
		walker: traversal.NewWalker(traversal.Options{
			FS:        e.fs,
			Resolver:  resolver,
			Linker:    e.linker,
			KeepLinks: s.KeepSymbolicLinks,
			Events:    e.events,
		}),
	}
	r.sanitizer = sanitize.New(e.fs, sanitize.Options{
		RemoveBinding:    s.RemoveBinding,
		ConvertHintPaths: s.ConvertRelativeHintPaths,
		ReplaceLinkFiles: s.ReplaceLinkFiles,
		ExcludedProjects: s.ExcludedProjectIDs(),
		SourceRoot:       e.sourceRoot,
		SpecialFolders:   e.folders,
	}, cp, r.copyFile, e.events)
	return r, nil
}
