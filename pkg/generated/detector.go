// Package generated recognizes tool-generated source files, either by a
// designer/generated naming convention or by a banner in their content.
package generated

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Markers are the lower-case banners that flag generated content
var Markers = []string{
	"this code was generated by a tool.",
	"ce code a été généré par un outil.",
	"<auto-generated",
	"<autogenerated",
	"// $antlr",
}

// Detector flags generated files
type Detector struct {
	fs     afero.Fs
	rules  filter.Set
	logger zerolog.Logger
}

// NewDetector creates a detector reading through fs
func NewDetector(fs afero.Fs) *Detector {
	return &Detector{
		fs: fs,
		rules: filter.Set{
			filter.NameRule("*.designer.*", filter.Exclude, false, true),
			filter.NameRule("*.g.*", filter.Exclude, false, true),
		},
		logger: logging.GetLogger("generated"),
	}
}

// IsGenerated reports whether the file at path looks generated. Directories
// and missing paths are never generated.
func (d *Detector) IsGenerated(path, relativePath string) bool {
	info, err := d.fs.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if d.rules.AnyMatch(filter.Exclude, false, relativePath, filepath.Base(path)) {
		d.logger.Trace().Str("path", relativePath).Msg("generated by name")
		return true
	}

	return d.hasMarker(path)
}

// hasMarker scans the file line by line until a marker or EOF
func (d *Detector) hasMarker(path string) bool {
	f, err := d.fs.Open(path)
	if err != nil {
		d.logger.Debug().Err(err).Str("path", path).Msg("cannot read file for markers")
		return false
	}
	defer func() { _ = f.Close() }()

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && containsMarker(line) {
			d.logger.Trace().Str("path", path).Msg("generated by content")
			return true
		}
		if err != nil {
			if err != io.EOF {
				d.logger.Debug().Err(err).Str("path", path).Msg("marker scan stopped")
			}
			return false
		}
	}
}

func containsMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range Markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
