package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Options selects the sources Load reads on top of the defaults.
type Options struct {
	// File is a YAML config file; empty means none.
	File string
	// Overrides are dotted config paths set last, typically from flags.
	Overrides map[string]any
}

// Load builds the configuration. Sources apply in order, later ones winning:
// defaults, the config file, FIELDPATHS_* environment variables, overrides.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if opts.File != "" {
		data, err := readFile(opts.File)
		if err != nil {
			return nil, err
		}

		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", opts.File, err)
		}
	}

	if err := loadEnvironment(k); err != nil {
		return nil, err
	}

	for path, value := range opts.Overrides {
		if err := k.Set(path, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", path, err)
		}
	}

	return unmarshalAndValidate(k)
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	out := make(map[string]any)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return out, nil
}

func loadEnvironment(k *koanf.Koanf) error {
	envToPath := make(map[string]string)
	for _, m := range EnvMappings() {
		envToPath[EnvPrefix+m.EnvVar] = m.ConfigPath
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// unknown variables are dropped
			return envToPath[key], value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	return nil
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var cfg Config

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSpaceHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// trimSpaceHook trims list items given as "a, b".
func trimSpaceHook(_, to reflect.Type, data any) (any, error) {
	if s, ok := data.(string); ok && to.Kind() == reflect.String {
		return strings.TrimSpace(s), nil
	}

	return data, nil
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration cannot be nil")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("ReadBytes not implemented")
}
