package sanitize

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
	"github.com/arthur-debert/srcexport/pkg/internal/xmldoc"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// MSBuildNamespace is the schema namespace of MSBuild project files
const MSBuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// bindingNames are the source-control binding elements of a project file,
// and the attributes of a legacy project root
var bindingNames = []string{
	"SccProjectName",
	"SccLocalPath",
	"SccAuxPath",
	"SccProvider",
}

// XMLProject edits an MSBuild project: binding elements are removed, hint
// paths leaving the source tree for a shared location are made absolute and
// linked compile items are materialized next to finalDst. Invalid XML is
// passed through as a verified binary copy.
func (s *Sanitizer) XMLProject(src, dst, finalDst string) error {
	if !s.opts.RemoveBinding && !s.opts.ConvertHintPaths {
		return s.copier.CopyBinary(src, dst)
	}

	doc, err := s.readXML(src)
	if err != nil {
		return s.passThrough(src, dst, "Invalid project", err)
	}
	root := doc.Root()

	if s.opts.RemoveBinding {
		for _, name := range bindingNames {
			for _, el := range findMSBuild(root, name) {
				removeElement(el)
			}
		}
	}

	if s.opts.ConvertHintPaths {
		for _, el := range findMSBuild(root, "HintPath") {
			if abs, ok := s.absolutizeHintPath(el.Text()); ok {
				s.logger.Debug().Str("from", el.Text()).Str("to", abs).Msg("Absolutized hint path")
				el.SetText(abs)
			}
		}
	}

	if s.opts.ReplaceLinkFiles {
		if err := s.replaceLinkFiles(root, filepath.Dir(src), filepath.Dir(finalDst)); err != nil {
			return err
		}
	}

	return s.writeXML(doc, dst)
}

// LegacyXMLProject removes the binding attributes from the root element of
// a legacy Visual C++ project
func (s *Sanitizer) LegacyXMLProject(src, dst string) error {
	if !s.opts.RemoveBinding {
		return s.copier.CopyBinary(src, dst)
	}

	doc, err := s.readXML(src)
	if err != nil {
		return s.passThrough(src, dst, "Invalid legacy project", err)
	}

	root := doc.Root()
	for _, name := range bindingNames {
		root.RemoveAttr(name)
	}
	return s.writeXML(doc, dst)
}

// replaceLinkFiles copies every linked compile item to its link location
// and turns the item into a plain reference to the copy
func (s *Sanitizer) replaceLinkFiles(root *etree.Element, srcDir, dstDir string) error {
	if s.dispatch == nil || !isMSBuild(root, "Project") {
		return nil
	}

	for _, group := range childrenMSBuild(root, "ItemGroup") {
		for _, item := range childrenMSBuild(group, "Compile") {
			include := item.SelectAttr("Include")
			if include == nil {
				continue
			}
			for _, link := range childrenMSBuild(item, "Link") {
				target := link.Text()
				copySrc := filepath.Join(srcDir, nativePath(include.Value))
				copyDst := filepath.Join(dstDir, nativePath(target))

				if err := s.dispatch(copySrc, copyDst); err != nil {
					if errors.IsErrorCode(err, errors.ErrVerifyFailed) {
						return err
					}
					s.logger.Warn().Err(err).Str("include", include.Value).Msg("Cannot materialize linked file, keeping link")
					continue
				}

				removeElement(link)
				include.Value = target
			}
		}
	}
	return nil
}

// absolutizeHintPath returns the absolute form of a hint path that leaves
// the source tree for one of the special folders. Any other path, and any
// path that cannot be resolved, is left alone.
func (s *Sanitizer) absolutizeHintPath(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	path := nativePath(text)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.opts.SourceRoot, path)
	}
	if filesystem.IsChildOrEqual(s.opts.SourceRoot, path) {
		return "", false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	for _, lookup := range s.folders {
		folder, err := lookup()
		if err != nil || folder == "" {
			continue
		}
		if filesystem.IsChildOrEqual(folder, abs) {
			return abs, true
		}
	}
	return "", false
}

func (s *Sanitizer) readXML(src string) (*xmldoc.Document, error) {
	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrXMLParse, "cannot parse %s", src)
	}
	return doc, nil
}

func (s *Sanitizer) writeXML(doc *xmldoc.Document, dst string) error {
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	out, err := doc.Bytes()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot serialize %s", dst)
	}
	if err := filesystem.EnsureParentDir(s.fs, dst); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dst)
	}
	if err := afero.WriteFile(s.fs, dst, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}

// passThrough reports an unreadable project and copies it unchanged
func (s *Sanitizer) passThrough(src, dst, reason string, cause error) error {
	s.logger.Warn().Err(cause).Str("source", src).Msg(reason)
	s.events.Log(types.CategoryCopy, reason+": "+src)
	return s.copier.CopyBinary(src, dst)
}

// isMSBuild matches an element in the MSBuild namespace or in no namespace
func isMSBuild(el *etree.Element, tag string) bool {
	if el.Tag != tag {
		return false
	}
	uri := el.NamespaceURI()
	return uri == MSBuildNamespace || uri == ""
}

// findMSBuild returns every descendant of root (root included) named tag,
// in document order
func findMSBuild(root *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if isMSBuild(el, tag) {
			found = append(found, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return found
}

func childrenMSBuild(parent *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	for _, child := range parent.ChildElements() {
		if isMSBuild(child, tag) {
			found = append(found, child)
		}
	}
	return found
}

// removeElement detaches el together with the indentation in front of it
func removeElement(el *etree.Element) {
	parent := el.Parent()
	if parent == nil {
		return
	}
	index := el.Index()
	parent.RemoveChildAt(index)
	if index > 0 {
		if cd, ok := parent.Child[index-1].(*etree.CharData); ok && cd.IsWhitespace() {
			parent.RemoveChildAt(index - 1)
		}
	}
}

// nativePath turns a project path, usually written with backslashes, into a
// path of the running platform
func nativePath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}
