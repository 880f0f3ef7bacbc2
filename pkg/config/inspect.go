package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/internal/xmldoc"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// InspectProject reads the ProjectGuid of an MSBuild or legacy project
// file. The project name is the file name without its extension.
func InspectProject(fs afero.Fs, path string) (Project, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Project{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read project %s", path).
			WithDetail("path", path)
	}

	doc, err := xmldoc.Parse(data)
	if err != nil {
		return Project{}, errors.Wrapf(err, errors.ErrXMLParse, "invalid project %s", path)
	}

	raw := ""
	if el := doc.FindElement("//ProjectGuid"); el != nil {
		raw = el.Text()
	} else if el := doc.FindElement("//*[@ProjectGUID]"); el != nil {
		// legacy .vcproj keeps the identifier on the root element
		raw = el.SelectAttrValue("ProjectGUID", "")
	}
	if strings.TrimSpace(raw) == "" {
		return Project{}, errors.Newf(errors.ErrNotFound, "project %s has no ProjectGuid", path).
			WithDetail("path", path)
	}

	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Project{}, errors.Wrapf(err, errors.ErrInvalidInput, "project %s has an invalid ProjectGuid %q", path, raw)
	}

	name := filepath.Base(path)
	return Project{
		ID:   id.String(),
		Name: strings.TrimSuffix(name, filepath.Ext(name)),
	}, nil
}
