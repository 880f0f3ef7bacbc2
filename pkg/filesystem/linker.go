package filesystem

import (
	"os"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Linker implements types.Linker over an afero filesystem
type Linker struct {
	fs     afero.Fs
	logger zerolog.Logger
}

var _ types.Linker = (*Linker)(nil)

// NewLinker creates a link capability for fs
func NewLinker(fs afero.Fs) *Linker {
	return &Linker{
		fs:     fs,
		logger: logging.GetLogger("filesystem.linker"),
	}
}

// IsSymbolicLink reports whether path is itself a symbolic link
func (l *Linker) IsSymbolicLink(path string) bool {
	lstater, ok := l.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ResolveLinkTarget returns the target text stored in the link at path
func (l *Linker) ResolveLinkTarget(path string) (string, error) {
	reader, ok := l.fs.(afero.LinkReader)
	if !ok {
		return "", errors.Newf(errors.ErrFileAccess, "filesystem cannot read links: %s", path)
	}
	target, err := reader.ReadlinkIfPossible(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", path)
	}
	return target, nil
}

// CreateLink creates a link at path pointing to target, replacing a link
// already present at path
func (l *Linker) CreateLink(path, target string, kind types.LinkKind) error {
	linker, ok := l.fs.(afero.Linker)
	if !ok {
		return errors.Newf(errors.ErrSymlinkCreate, "filesystem cannot create links: %s", path)
	}

	if err := EnsureParentDir(l.fs, path); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", path)
	}

	if l.IsSymbolicLink(path) {
		if err := l.fs.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to replace link %s", path)
		}
	}

	l.logger.Debug().
		Str("path", path).
		Str("target", target).
		Str("kind", kind.String()).
		Msg("Creating symbolic link")

	if err := linker.SymlinkIfPossible(target, path); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s -> %s", path, target)
	}
	return nil
}
