package config

import (
	"io"
	"reflect"
	"sync"

	"fieldpaths/internal/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FIELDPATHS_"

// Config is the configuration of the fieldpaths command.
type Config struct {
	Log     LogConfig     `koanf:"log"     json:"log"     yaml:"log"`
	Analyze AnalyzeConfig `koanf:"analyze" json:"analyze" yaml:"analyze"`
	Output  OutputConfig  `koanf:"output"  json:"output"  yaml:"output"`
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	Level string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error" env:"LOG_LEVEL"`
	JSON  bool   `koanf:"json"  json:"json"  yaml:"json"                                          env:"LOG_JSON"`
}

// AnalyzeConfig controls the static describer.
type AnalyzeConfig struct {
	Packages  []string `koanf:"packages"  json:"packages"  yaml:"packages"  validate:"dive,required" env:"ANALYZE_PACKAGES"`
	Terminals []string `koanf:"terminals" json:"terminals" yaml:"terminals" validate:"dive,required" env:"ANALYZE_TERMINALS"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format   string `koanf:"format"    json:"format"    yaml:"format"    validate:"oneof=text json yaml" env:"OUTPUT_FORMAT"`
	Outline  bool   `koanf:"outline"   json:"outline"   yaml:"outline"                                   env:"OUTPUT_OUTLINE"`
	MaxDepth int    `koanf:"max_depth" json:"max_depth" yaml:"max_depth" validate:"min=1,max=64"         env:"OUTPUT_MAX_DEPTH"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: string(logger.WarnLevel),
		},
		Analyze: AnalyzeConfig{
			Packages:  []string{"./..."},
			Terminals: []string{},
		},
		Output: OutputConfig{
			Format:   "text",
			MaxDepth: 8,
		},
	}
}

// LoggerConfig returns the logger configuration for output.
func (c *Config) LoggerConfig(output io.Writer) *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.Level(c.Log.Level)
	cfg.JSON = c.Log.JSON
	cfg.Output = output

	return cfg
}

// EnvMapping binds an environment variable, without EnvPrefix, to a config path.
type EnvMapping struct {
	EnvVar     string
	ConfigPath string
}

var (
	envMappings     []EnvMapping
	envMappingsOnce sync.Once
)

// EnvMappings lists the environment variables declared on Config.
func EnvMappings() []EnvMapping {
	envMappingsOnce.Do(func() {
		envMappings = extractMappings(reflect.TypeFor[Config](), "")
	})

	return envMappings
}

func extractMappings(t reflect.Type, prefix string) []EnvMapping {
	var mappings []EnvMapping

	for i := range t.NumField() {
		field := t.Field(i)

		key := field.Tag.Get("koanf")
		if key == "" || key == "-" {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if env := field.Tag.Get("env"); env != "" {
			mappings = append(mappings, EnvMapping{EnvVar: env, ConfigPath: path})
		}

		if field.Type.Kind() == reflect.Struct {
			mappings = append(mappings, extractMappings(field.Type, path)...)
		}
	}

	return mappings
}
