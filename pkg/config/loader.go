package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadOptions selects the configuration sources beyond the embedded defaults
type LoadOptions struct {
	// ConfigFile is an explicit project file. It must exist when set.
	ConfigFile string

	// WorkingDir is searched for ProjectFileName when ConfigFile is empty
	WorkingDir string

	// Overrides are applied last, keyed by dotted koanf paths such as "features.boot"
	Overrides map[string]interface{}

	// SkipEnv ignores KASSEMBLE_ variables
	SkipEnv bool
}

// Load builds the configuration from, in increasing precedence: the embedded
// defaults, the project file, the environment and the overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Project file
	projectFile, err := projectFilePath(opts)
	if err != nil {
		return nil, err
	}
	if projectFile != "" {
		if err := k.Load(file.Provider(projectFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", projectFile).
				WithDetail("path", projectFile)
		}
		logger.Debug().Str("path", projectFile).Msg("Loaded project configuration")
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Validate
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Defaults returns the embedded default configuration
func Defaults() *Config {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	if err != nil {
		// the embedded defaults are covered by tests
		panic(err)
	}
	return cfg
}

// envKey maps KASSEMBLE_MAVEN__REPOSITORIES to maven.repositories. A single
// underscore stays part of the key, as in work_dir.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func projectFilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	candidate := filepath.Join(opts.WorkingDir, ProjectFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}
