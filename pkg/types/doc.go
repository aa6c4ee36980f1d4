// Package types defines the core types and interfaces used throughout kassemble.
// This includes the feature model parsed from feature repositories (FeatureRepository,
// Feature, Bundle, ConfigFile, Dependency), the installation tiers, the build inputs
// and the FS interface every component performs its I/O through.
package types
