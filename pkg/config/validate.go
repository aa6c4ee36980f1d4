package config

import (
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/registry"
	"github.com/gobwas/glob"
)

// Validate checks the values Load cannot check while decoding
func Validate(cfg *Config) error {
	if cfg.DefaultStartLevel <= 0 {
		return errors.Newf(errors.ErrConfigValid, "default_start_level must be positive, got %d", cfg.DefaultStartLevel)
	}

	if _, err := registry.ParsePolicy(cfg.RegistryPolicy); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid registry_policy")
	}

	if cfg.WorkDir == "" {
		return errors.New(errors.ErrConfigValid, "work_dir must not be empty")
	}

	lists := map[string][]string{
		"features.startup":   cfg.Features.Startup,
		"features.boot":      cfg.Features.Boot,
		"features.installed": cfg.Features.Installed,
	}
	for key, patterns := range lists {
		for _, pattern := range patterns {
			if _, err := glob.Compile(pattern); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "invalid pattern %q in %s", pattern, key)
			}
		}
	}

	for i, input := range cfg.Inputs {
		if input.Location == "" && input.File == "" {
			return errors.Newf(errors.ErrConfigValid, "inputs[%d] needs a location or a file", i)
		}
	}

	return nil
}
