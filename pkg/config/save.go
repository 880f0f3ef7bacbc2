package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a settings document layout
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// FormatFor returns the document format implied by a file extension
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported settings format %q", ext)
	}
}

// Marshal renders settings in the given format
func Marshal(s *Settings, format Format) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrInvalidInput, "settings are required")
	}

	switch format {
	case FormatTOML:
		data, err := toml.Marshal(newDocument(s))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigSave, "failed to render TOML settings")
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(newDocument(s))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigSave, "failed to render YAML settings")
		}
		return data, nil
	case FormatXML:
		return marshalXML(s)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported settings format %q", format)
	}
}

// Save writes settings to path in the format implied by its extension
func Save(path string, s *Settings) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(s, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrConfigSave, "cannot create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot write settings file %s", path).
			WithDetail("path", path)
	}
	return nil
}
