// Package testutil provides utilities for testing kassemble components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem implementing types.FS
//   - Repository: a local maven repository fixture artifacts are published to
//   - FeaturesXML: declarative builder for feature-repository descriptors
//   - BuildKar: writes kar archives with repository/ and resources/ entries
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; only archive and CLI tests need real files
//   - All test data should be defined inline, not in external files
package testutil
