package manifest

import (
	"strings"

	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

// Keys of the features configuration file
const (
	FeaturesBootKey         = "featuresBoot"
	FeaturesRepositoriesKey = "featuresRepositories"
)

const tokenSeparator = ","

// FeaturesConfig is the features service configuration holding the boot feature
// list and the feature repository list. Both values are comma separated token
// lists. Membership is exact token equality, so foo is not listed by foo-ext.
type FeaturesConfig struct {
	fs     types.FS
	path   string
	props  *properties.Properties
	logger zerolog.Logger
}

// NewFeaturesConfig creates an empty configuration stored at path
func NewFeaturesConfig(fs types.FS, path string) *FeaturesConfig {
	return &FeaturesConfig{
		fs:     fs,
		path:   path,
		props:  newProperties(),
		logger: logging.GetLogger("manifest.features"),
	}
}

// Path returns the configuration file location
func (c *FeaturesConfig) Path() string {
	return c.path
}

// Load replaces the in-memory state with the file content. A missing file is
// created by the next Save.
func (c *FeaturesConfig) Load() error {
	props, exists, err := loadProperties(c.fs, c.path)
	if err != nil {
		return err
	}
	c.props = props
	c.logger.Debug().Str("path", c.path).Bool("exists", exists).Msg("Features configuration loaded")
	return nil
}

// BootFeatures returns the boot feature tokens in order
func (c *FeaturesConfig) BootFeatures() []string {
	return c.tokens(FeaturesBootKey)
}

// Repositories returns the feature repository tokens in order
func (c *FeaturesConfig) Repositories() []string {
	return c.tokens(FeaturesRepositoriesKey)
}

// AddBootFeature appends name to the boot list unless already listed. A change
// is written to disk immediately.
func (c *FeaturesConfig) AddBootFeature(name string) (bool, error) {
	return c.appendToken(FeaturesBootKey, name)
}

// AddRepository appends uri to the repository list unless already listed. A
// change is written to disk immediately.
func (c *FeaturesConfig) AddRepository(uri string) (bool, error) {
	return c.appendToken(FeaturesRepositoriesKey, uri)
}

// Get returns the raw value of key
func (c *FeaturesConfig) Get(key string) (string, bool) {
	return c.props.Get(key)
}

// Save writes the configuration, creating its directory when needed
func (c *FeaturesConfig) Save() error {
	if err := saveProperties(c.fs, c.path, "", c.props); err != nil {
		return err
	}
	c.logger.Debug().Str("path", c.path).Msg("Features configuration saved")
	return nil
}

func (c *FeaturesConfig) appendToken(key, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" || contains(c.tokens(key), token) {
		return false, nil
	}

	value, _ := c.props.Get(key)
	value = strings.TrimRight(strings.TrimSpace(value), tokenSeparator)
	if value != "" {
		value += tokenSeparator
	}
	_, _, _ = c.props.Set(key, value+token)

	c.logger.Info().Str("key", key).Str("value", token).Msg("Updated features configuration")
	return true, c.Save()
}

func (c *FeaturesConfig) tokens(key string) []string {
	value, ok := c.props.Get(key)
	if !ok {
		return nil
	}
	return splitTokens(value)
}

// splitTokens splits a list value. Stage parentheses, as in "(a, b), c", are not
// part of a token.
func splitTokens(value string) []string {
	var tokens []string
	for _, raw := range strings.Split(value, tokenSeparator) {
		token := strings.Trim(strings.TrimSpace(raw), "()")
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
