package sanitize

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
)

var bindingSectionStarts = []string{
	"GlobalSection(SourceCodeControl)",
	"GlobalSection(TeamFoundationVersionControl)",
}

const bindingSectionEnd = "EndGlobalSection"

var installerBindingKeys = []string{
	`"SccProjectName"`,
	`"SccLocalPath"`,
	`"SccAuxPath"`,
	`"SccProvider"`,
}

// Solution copies a solution file line by line. Source-control binding
// sections are dropped when binding removal is on, and lines naming an
// excluded project are always dropped.
func (s *Sanitizer) Solution(src, dst string) error {
	skipping := false
	return s.filterLines(src, dst, func(line string) bool {
		trimmed := strings.TrimSpace(line)
		if skipping {
			if strings.HasPrefix(trimmed, bindingSectionEnd) {
				skipping = false
			}
			return false
		}
		if s.opts.RemoveBinding && hasAnyPrefix(trimmed, bindingSectionStarts) {
			skipping = true
			return false
		}
		return !s.namesExcludedProject(line)
	})
}

// InstallerProject drops the source-control keys of an installer project.
// Without binding removal the file is a verified binary copy.
func (s *Sanitizer) InstallerProject(src, dst string) error {
	if !s.opts.RemoveBinding {
		return s.copier.CopyBinary(src, dst)
	}
	return s.filterLines(src, dst, func(line string) bool {
		return !hasAnyPrefix(strings.TrimSpace(line), installerBindingKeys)
	})
}

func (s *Sanitizer) namesExcludedProject(line string) bool {
	if len(s.excluded) == 0 {
		return false
	}
	lower := strings.ToLower(line)
	for _, id := range s.excluded {
		if strings.Contains(lower, id) {
			return true
		}
	}
	return false
}

// filterLines copies the lines of src for which keep returns true. Lines
// are written exactly as read, line endings included.
func (s *Sanitizer) filterLines(src, dst string, keep func(line string) bool) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	if err := filesystem.EnsureParentDir(s.fs, dst); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dst)
	}
	out, err := s.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", dst)
	}
	defer func() { _ = out.Close() }()

	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" && keep(line) {
			if _, err := writer.WriteString(line); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Wrapf(readErr, errors.ErrFileAccess, "cannot read %s", src)
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
