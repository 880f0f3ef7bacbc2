package config

import (
	_ "embed"

	"github.com/arthur-debert/srcexport/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the built-in settings document, the one printed by
// `srcexport defaults`
func DefaultContent() string {
	return string(defaultConfig)
}

// embeddedProvider feeds the built-in document to koanf. Only ReadBytes is
// meaningful; the parser does the rest.
type embeddedProvider struct{ data []byte }

func (p embeddedProvider) ReadBytes() ([]byte, error) { return p.data, nil }

func (p embeddedProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "embedded settings must be read as bytes")
}
