// Package sanitize transforms build project files on their way to the
// export destination.
//
// Four formats are recognized by extension: solution files and installer
// projects are filtered line by line, MSBuild and legacy Visual C++ projects
// are parsed as XML, edited and written back. Every handler writes to the
// path it is given; the caller funnels that output through the text rewrite
// pass.
package sanitize

import (
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// BinaryCopier is the verified copy used when a file cannot or need not be
// transformed
type BinaryCopier interface {
	CopyBinary(src, dst string) error
}

// DispatchFunc copies one file through the ordinary per-type dispatch. It
// is used to materialize linked project items.
type DispatchFunc func(src, dst string) error

// Options select the transforms
type Options struct {
	RemoveBinding    bool
	ConvertHintPaths bool
	ReplaceLinkFiles bool

	// ExcludedProjects are project identifiers in braced form; solution
	// lines containing one of them are dropped
	ExcludedProjects []string

	// SourceRoot anchors relative hint paths
	SourceRoot string

	// SpecialFolders are the locations hint paths may be absolutized into.
	// Nil selects DefaultSpecialFolders.
	SpecialFolders []FolderLookup
}

// Sanitizer runs the format-specific transforms of one export run
type Sanitizer struct {
	fs       afero.Fs
	opts     Options
	copier   BinaryCopier
	dispatch DispatchFunc
	events   types.EventSink
	excluded []string
	folders  []FolderLookup
	handlers map[Kind]func(src, dst, finalDst string) error
	logger   zerolog.Logger
}

// New creates a sanitizer. dispatch may be nil when linked files are not
// replaced.
func New(fs afero.Fs, opts Options, copier BinaryCopier, dispatch DispatchFunc, events types.EventSink) *Sanitizer {
	if events == nil {
		events = types.NopSink{}
	}
	folders := opts.SpecialFolders
	if folders == nil {
		folders = DefaultSpecialFolders()
	}

	excluded := make([]string, 0, len(opts.ExcludedProjects))
	for _, id := range opts.ExcludedProjects {
		if id != "" {
			excluded = append(excluded, strings.ToLower(id))
		}
	}

	s := &Sanitizer{
		fs:       fs,
		opts:     opts,
		copier:   copier,
		dispatch: dispatch,
		events:   events,
		excluded: excluded,
		folders:  folders,
		logger:   logging.GetLogger("sanitize"),
	}
	s.handlers = map[Kind]func(src, dst, finalDst string) error{
		KindSolution:         func(src, dst, _ string) error { return s.Solution(src, dst) },
		KindInstallerProject: func(src, dst, _ string) error { return s.InstallerProject(src, dst) },
		KindXMLProject:       s.XMLProject,
		KindLegacyXMLProject: func(src, dst, _ string) error { return s.LegacyXMLProject(src, dst) },
	}
	return s
}

// Handles reports whether kind has a dedicated transform
func (s *Sanitizer) Handles(kind Kind) bool {
	_, ok := s.handlers[kind]
	return ok
}

// Sanitize runs the transform of kind from src into dst. finalDst is where
// the output eventually lands; linked files are placed next to it.
func (s *Sanitizer) Sanitize(kind Kind, src, dst, finalDst string) error {
	handler, ok := s.handlers[kind]
	if !ok {
		return errors.Newf(errors.ErrInternal, "no sanitizer for %s files", kind)
	}
	s.logger.Debug().Str("kind", kind.String()).Str("source", src).Msg("Sanitizing project file")
	return handler(src, dst, finalDst)
}
