// Package copier implements the verified file copy of an export run.
//
// A Copier belongs to exactly one run. When verification is on, every binary
// copy is followed by a digest of both sides; a mismatch is retried, and the
// consecutive-mismatch counter is shared by all files of the run. Once it
// exceeds MaxConsecutiveFailures the copy fails with ErrVerifyFailed, which
// aborts the run.
package copier

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// MaxConsecutiveFailures is the number of verification mismatches tolerated
// in a row before a run is aborted
const MaxConsecutiveFailures = 5

// Options configure a Copier
type Options struct {
	FS afero.Fs
	// Hasher is required when Verify is set
	Hasher types.Hasher
	Verify bool
	Events types.EventSink
}

// Copier copies files for one export run
type Copier struct {
	fs       afero.Fs
	hasher   types.Hasher
	verify   bool
	events   types.EventSink
	failures int
	logger   zerolog.Logger
}

// New creates a copier
func New(opts Options) (*Copier, error) {
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "copier needs a filesystem")
	}
	if opts.Verify && opts.Hasher == nil {
		return nil, errors.New(errors.ErrInvalidInput, "verified copy needs a hasher")
	}
	events := opts.Events
	if events == nil {
		events = types.NopSink{}
	}
	return &Copier{
		fs:     opts.FS,
		hasher: opts.Hasher,
		verify: opts.Verify,
		events: events,
		logger: logging.GetLogger("copier"),
	}, nil
}

// Failures returns the current consecutive-mismatch count
func (c *Copier) Failures() int {
	return c.failures
}

// CopyBinary copies src to dst byte for byte, overwriting dst, and verifies
// the result when verification is on.
func (c *Copier) CopyBinary(src, dst string) error {
	for {
		c.events.Log(types.CategoryCopy, fmt.Sprintf("%s -> %s", src, dst))
		if err := c.copyBytes(src, dst); err != nil {
			return err
		}
		if !c.verify {
			return c.CopyMode(src, dst)
		}

		same, err := c.sameContent(src, dst)
		if err != nil {
			return err
		}
		if same {
			c.failures = 0
			c.events.Log(types.CategoryVerify, dst)
			return c.CopyMode(src, dst)
		}

		c.failures++
		if c.failures > MaxConsecutiveFailures {
			return errors.Newf(errors.ErrVerifyFailed,
				"copy of %s could not be verified after %d consecutive mismatches", src, c.failures).
				WithDetail("source", src).
				WithDetail("destination", dst)
		}
		c.logger.Warn().
			Str("source", src).
			Int("failures", c.failures).
			Msg("Checksum mismatch, retrying copy")
		c.events.Log(types.CategoryVerify, fmt.Sprintf("different hash (%d): %s", c.failures, dst))
	}
}

// CopyText reads src as text, passes it through transform and writes the
// result to dst. A nil transform copies the text unchanged.
func (c *Copier) CopyText(src, dst string, transform func(string) string) error {
	c.events.Log(types.CategoryCopy, fmt.Sprintf("%s -> %s (rewrite)", src, dst))

	data, err := afero.ReadFile(c.fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	text := string(data)
	if transform != nil {
		text = transform(text)
	}

	if err := filesystem.EnsureParentDir(c.fs, dst); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dst)
	}
	if err := afero.WriteFile(c.fs, dst, []byte(text), c.modeOf(src)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}

// Delete removes the file at path if it exists. With unprotect set, a
// read-only file is made writable first.
func (c *Copier) Delete(path string, unprotect bool) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	if info.IsDir() {
		return nil
	}

	if unprotect && info.Mode().Perm()&0200 == 0 {
		if err := c.fs.Chmod(path, info.Mode().Perm()|0200); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot unprotect %s", path)
		}
	}
	if err := c.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot delete %s", path)
	}
	return nil
}

// SetReadOnly forces the read-only state of the file at path
func (c *Copier) SetReadOnly(path string, readOnly bool) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}

	perm := info.Mode().Perm()
	if readOnly {
		perm &^= 0222
	} else {
		perm |= 0200
	}
	if perm == info.Mode().Perm() {
		return nil
	}
	if err := c.fs.Chmod(path, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot change mode of %s", path)
	}
	return nil
}

func (c *Copier) copyBytes(src, dst string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	if err := filesystem.EnsureParentDir(c.fs, dst); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dst)
	}
	out, err := c.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dst)
	}
	return nil
}

func (c *Copier) sameContent(src, dst string) (bool, error) {
	srcSum, err := c.hasher.Checksum(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot checksum %s", src)
	}
	dstSum, err := c.hasher.Checksum(dst)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot checksum %s", dst)
	}
	return srcSum == dstSum, nil
}

// CopyMode gives dst the permission bits of src. Failures are logged and
// ignored.
func (c *Copier) CopyMode(src, dst string) error {
	mode := c.modeOf(src)
	info, err := c.fs.Stat(dst)
	if err != nil || info.Mode().Perm() == mode {
		return nil
	}
	if err := c.fs.Chmod(dst, mode); err != nil {
		c.logger.Debug().Err(err).Str("path", dst).Msg("cannot copy file mode")
	}
	return nil
}

func (c *Copier) modeOf(path string) os.FileMode {
	info, err := c.fs.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}
