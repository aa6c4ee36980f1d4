package types

import "fmt"

// DefaultFeatureVersion is used when a feature declares no version
const DefaultFeatureVersion = "0.0.0"

// FeatureID identifies a feature by name and version
type FeatureID struct {
	Name    string
	Version string
}

// String returns name/version
func (id FeatureID) String() string {
	return fmt.Sprintf("%s/%s", id.Name, id.Version)
}

// FeatureRepository is a parsed feature-repository descriptor.
// It is never mutated after parsing.
type FeatureRepository struct {
	// URI is the location the repository was resolved from
	URI string

	// Name is the optional repository name
	Name string

	// Repositories lists nested repository references in declaration order
	Repositories []string

	// Features lists the features defined by this repository in declaration order
	Features []*Feature
}

// Feature is a named, versioned set of bundles, configuration files and
// dependencies on other features
type Feature struct {
	Name        string
	Version     string
	Description string

	Bundles      []Bundle
	ConfigFiles  []ConfigFile
	Dependencies []Dependency
}

// ID returns the identity of the feature
func (f *Feature) ID() FeatureID {
	version := f.Version
	if version == "" {
		version = DefaultFeatureVersion
	}
	return FeatureID{Name: f.Name, Version: version}
}

// Bundle is a deployable artifact with an activation order
type Bundle struct {
	// Location is the bundle URI, possibly carrying a protocol prefix such as wrap:
	Location string

	// StartLevel is the declared start level, 0 when unspecified
	StartLevel int

	// Dependency marks the bundle as transitively pulled in
	Dependency bool
}

// EffectiveStartLevel returns the start level, or def when none is declared
func (b Bundle) EffectiveStartLevel(def int) int {
	if b.StartLevel == 0 {
		return def
	}
	return b.StartLevel
}

// ConfigFile is a file copied verbatim into the system repository
type ConfigFile struct {
	Location  string
	Finalname string
}

// Dependency references another feature by name and optional version or range
type Dependency struct {
	Name    string
	Version string
}
