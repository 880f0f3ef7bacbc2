// Package sniff decides whether a file is perceived as text, first by
// well-known extensions and then by content detection.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".rst": true, ".csv": true, ".log": true,
	".cs": true, ".vb": true, ".fs": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true,
	".go": true, ".java": true, ".js": true, ".ts": true, ".py": true, ".rb": true, ".ps1": true,
	".sh": true, ".bat": true, ".cmd": true, ".sql": true,
	".xml": true, ".xaml": true, ".xsd": true, ".xsl": true, ".xslt": true, ".config": true,
	".resx": true, ".settings": true, ".props": true, ".targets": true, ".nuspec": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".htm": true, ".html": true, ".css": true, ".aspx": true, ".ascx": true, ".cshtml": true,
	".asax": true, ".asmx": true, ".svc": true, ".master": true, ".tt": true,
}

var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".pdb": true, ".lib": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true, ".nupkg": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".bmp": true, ".webp": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true, ".snk": true, ".pfx": true,
	".pyc": true, ".pyo": true, ".class": true, ".o": true, ".a": true, ".obj": true,
}

// Sniffer implements types.TextSniffer on a filesystem
type Sniffer struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// New creates a sniffer reading through fs
func New(fs afero.Fs) *Sniffer {
	return &Sniffer{fs: fs, logger: logging.GetLogger("sniff")}
}

// IsProbablyText reports whether the file at path looks like text.
// Unreadable files are treated as binary.
func (s *Sniffer) IsProbablyText(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if textExtensions[ext] {
		return true
	}
	if binaryExtensions[ext] {
		return false
	}

	f, err := s.fs.Open(path)
	if err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("cannot open file for sniffing")
		return false
	}
	defer func() { _ = f.Close() }()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("content detection failed")
		return false
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	s.logger.Trace().Str("path", path).Str("mime", mtype.String()).Msg("not text")
	return false
}
