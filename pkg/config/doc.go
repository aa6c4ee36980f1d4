// Package config handles configuration management for kassemble.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML project file, environment variables
// and command-line flags.
package config
