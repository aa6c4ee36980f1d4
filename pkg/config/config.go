package config

import (
	"github.com/arthur-debert/kassemble/pkg/types"
)

// DefaultStartLevel is the start level used when neither a bundle nor the
// configuration sets one
const DefaultStartLevel = 30

// ProjectFileName is the configuration file looked up in the working directory
const ProjectFileName = "kassemble.toml"

// EnvPrefix prefixes every environment variable read as configuration
const EnvPrefix = "KASSEMBLE_"

// Config is the complete assembly configuration
type Config struct {
	// WorkDir is the directory the assembly is built in
	WorkDir string `koanf:"work_dir" toml:"work_dir" comment:"Directory the assembly is built in"`

	// SystemDir, StartupManifest and FeaturesCfg default to locations below WorkDir
	SystemDir       string `koanf:"system_dir" toml:"system_dir" comment:"System repository, defaults to <work_dir>/system"`
	StartupManifest string `koanf:"startup_manifest" toml:"startup_manifest" comment:"Defaults to <work_dir>/etc/startup.properties"`
	FeaturesCfg     string `koanf:"features_cfg" toml:"features_cfg" comment:"Defaults to <work_dir>/etc/org.apache.karaf.features.cfg"`

	DefaultStartLevel    int    `koanf:"default_start_level" toml:"default_start_level" comment:"Start level of bundles that declare none"`
	IgnoreDependencyFlag bool   `koanf:"ignore_dependency_flag" toml:"ignore_dependency_flag" comment:"Install bundles flagged as dependency as well"`
	RegistryPolicy       string `koanf:"registry_policy" toml:"registry_policy" comment:"last-write-wins or any-startup"`

	Features Features `koanf:"features" toml:"features"`
	Maven    Maven    `koanf:"maven" toml:"maven"`

	Inputs []types.InputArtifact `koanf:"inputs" toml:"inputs,omitempty"`
}

// Features holds the tier membership lists. Entries are names or glob patterns.
type Features struct {
	Startup   []string `koanf:"startup" toml:"startup" comment:"Features whose bundles go to the startup manifest"`
	Boot      []string `koanf:"boot" toml:"boot" comment:"Features appended to featuresBoot"`
	Installed []string `koanf:"installed" toml:"installed" comment:"Features only installed into the system repository"`
}

// Maven configures artifact lookup
type Maven struct {
	Repositories []string `koanf:"repositories" toml:"repositories" comment:"Local repositories searched for artifacts, in order"`
}
