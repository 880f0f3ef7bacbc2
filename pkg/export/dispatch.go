package export

import (
	"github.com/arthur-debert/srcexport/pkg/copier"
	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/sanitize"
	"github.com/arthur-debert/srcexport/pkg/traversal"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/spf13/afero"
)

// run is the state of one Export call
type run struct {
	*Exporter
	copier    *copier.Copier
	walker    *traversal.Walker
	sanitizer *sanitize.Sanitizer
}

func (r *run) exportDirectory(entry traversal.Entry, dst string) error {
	if entry.IsSymlink {
		return r.recreateLink(entry.Path, dst, types.LinkDirectory)
	}
	if err := r.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dst)
	}
	return nil
}

func (r *run) exportFile(entry traversal.Entry, dst string) error {
	if entry.IsSymlink {
		return r.recreateLink(entry.Path, dst, types.LinkFile)
	}
	return r.copyFile(entry.Path, dst)
}

// recreateLink points a new link at the raw target text of the source link
func (r *run) recreateLink(src, dst string, kind types.LinkKind) error {
	target, err := r.linker.ResolveLinkTarget(src)
	if err != nil {
		return err
	}
	return r.linker.CreateLink(dst, target, kind)
}

// copyFile copies one file with the handler of its type. Linked project
// items are copied through here as well.
func (r *run) copyFile(src, dst string) error {
	s := r.settings

	if s.OverrideExisting {
		if err := r.copier.Delete(dst, s.UnprotectFile); err != nil {
			return err
		}
	}

	var err error
	if !s.CanReplaceText() && !s.RemoveBinding && !s.ConvertRelativeHintPaths {
		err = r.copier.CopyBinary(src, dst)
	} else if kind := sanitize.KindFor(src); r.sanitizer.Handles(kind) {
		err = r.copyProject(kind, src, dst)
	} else if s.CanReplaceText() && r.sniffer.IsProbablyText(src) {
		err = r.copier.CopyText(src, dst, r.rewriter.Apply)
	} else {
		err = r.copier.CopyBinary(src, dst)
	}
	if err != nil {
		return err
	}

	if s.OutputReadOnly != nil {
		return r.copier.SetReadOnly(dst, *s.OutputReadOnly)
	}
	return nil
}

// copyProject sanitizes into a temporary file, then rewrites that file into
// dst. A sanitizer failure other than a failed verification falls back to a
// plain copy.
func (r *run) copyProject(kind sanitize.Kind, src, dst string) error {
	tmp, err := afero.TempFile(r.fs, "", "srcexport-*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCreate, "cannot create temporary file")
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := r.fs.Remove(tmpPath); err != nil {
			r.logger.Debug().Err(err).Str("path", tmpPath).Msg("cannot remove temporary file")
		}
	}()

	if err := r.sanitizer.Sanitize(kind, src, tmpPath, dst); err != nil {
		if errors.IsErrorCode(err, errors.ErrVerifyFailed) {
			return err
		}
		r.logger.Warn().
			Err(err).
			Str("source", src).
			Str("kind", kind.String()).
			Msg("Project could not be sanitized, copying it unchanged")
		return r.copier.CopyBinary(src, dst)
	}

	if err := r.copier.CopyText(tmpPath, dst, r.rewriter.Apply); err != nil {
		return err
	}
	return r.copier.CopyMode(src, dst)
}
