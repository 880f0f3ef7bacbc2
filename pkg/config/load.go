package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables that override toggles
const EnvPrefix = "SRCEXPORT_"

// envToggles are the keys an environment variable may set
var envToggles = map[string]bool{
	"compute_hash":        true,
	"convert_hint_paths":  true,
	"replace_link_files":  true,
	"remove_binding":      true,
	"keep_symbolic_links": true,
	"override_existing":   true,
	"unprotect":           true,
	"exclude_generated":   true,
	"output_read_only":    true,
}

// Default returns the built-in settings with environment overrides applied
func Default() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(embeddedProvider{data: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse built-in configuration")
	}
	return finish(k, "built-in")
}

// Load reads settings from path. The format follows the extension: .toml,
// .yaml, .yml or .xml. A settings file replaces the built-in defaults
// entirely. An empty path returns Default().
func Load(path string) (*Settings, error) {
	if path == "" {
		return Default()
	}

	logger := logging.GetLogger("config")
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read settings file %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = k.Load(file.Provider(path), toml.Parser())
	case ".yaml", ".yml":
		err = k.Load(file.Provider(path), yaml.Parser())
	case ".xml":
		err = loadXML(k, path)
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported settings format %q", ext).
			WithDetail("path", path)
	}
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrConfigParse) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings file %s", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Msg("Loaded settings file")
	return finish(k, path)
}

func loadXML(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read settings file %s", path)
	}
	m, err := xmlSettingsMap(data)
	if err != nil {
		return err
	}
	return k.Load(confmap.Provider(m, "."), nil)
}

// finish applies environment overrides, decodes and validates
func finish(k *koanf.Koanf, origin string) (*Settings, error) {
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !envToggles[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var doc document
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &doc,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				wordToBoolHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &doc, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode settings from %s", origin)
	}

	s, err := doc.settings()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// wordToBoolHookFunc accepts yes/no and on/off for boolean fields
func wordToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		switch strings.ToLower(strings.TrimSpace(data.(string))) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		return data, nil
	}
}
