// Package registry keeps track of what a run has discovered.
//
// RepositoryRegistry records every feature repository processed in the current
// run, FeatureRegistry every feature those repositories define together with its
// startup flag. Both preserve discovery order, which drives the order features are
// classified and resolved in. Resolver walks repository references recursively
// and fills both registries.
package registry
