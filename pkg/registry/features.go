package registry

import (
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/types"
)

// Policy decides the startup flag of a feature reached through several repositories
type Policy string

const (
	// PolicyLastWriteWins keeps the flag of the last repository that registered the feature
	PolicyLastWriteWins Policy = "last-write-wins"

	// PolicyAnyStartup sets the flag when any repository registered the feature as startup
	PolicyAnyStartup Policy = "any-startup"
)

// Policies lists the known policies, default first
var Policies = []Policy{PolicyLastWriteWins, PolicyAnyStartup}

// PolicyNames returns the names of Policies
func PolicyNames() []string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = string(p)
	}
	return names
}

// ParsePolicy validates a policy name. The empty name selects the default.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return PolicyLastWriteWins, nil
	}
	for _, p := range Policies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown registry policy %q", name).WithDetail("policy", name)
}

// FeatureEntry is a registered feature with its startup flag
type FeatureEntry struct {
	Feature *types.Feature
	Startup bool
}

// FeatureRegistry maps feature identities to their startup flag in first
// discovery order. The first definition of an identity is kept, later
// registrations only update the flag according to the policy.
type FeatureRegistry struct {
	policy  Policy
	entries Registry[types.FeatureID, *FeatureEntry]
}

// NewFeatureRegistry creates an empty registry using policy
func NewFeatureRegistry(policy Policy) *FeatureRegistry {
	if policy == "" {
		policy = PolicyLastWriteWins
	}
	return &FeatureRegistry{
		policy:  policy,
		entries: New[types.FeatureID, *FeatureEntry](),
	}
}

// Policy returns the merge policy in use
func (r *FeatureRegistry) Policy() Policy {
	return r.policy
}

// Register records feature with the startup flag of the repository it came from
func (r *FeatureRegistry) Register(feature *types.Feature, startup bool) {
	id := feature.ID()
	existing, err := r.entries.Get(id)
	if err != nil {
		r.entries.Put(id, &FeatureEntry{Feature: feature, Startup: startup})
		return
	}

	switch r.policy {
	case PolicyAnyStartup:
		existing.Startup = existing.Startup || startup
	default:
		existing.Startup = startup
	}
}

// Entries returns all entries in discovery order
func (r *FeatureRegistry) Entries() []*FeatureEntry {
	return r.entries.Values()
}

// Features returns all features in discovery order
func (r *FeatureRegistry) Features() []*types.Feature {
	entries := r.entries.Values()
	features := make([]*types.Feature, 0, len(entries))
	for _, e := range entries {
		features = append(features, e.Feature)
	}
	return features
}

// IsStartup returns the startup flag of id
func (r *FeatureRegistry) IsStartup(id types.FeatureID) bool {
	entry, err := r.entries.Get(id)
	return err == nil && entry.Startup
}

// Get returns the feature registered under id
func (r *FeatureRegistry) Get(id types.FeatureID) (*types.Feature, bool) {
	entry, err := r.entries.Get(id)
	if err != nil {
		return nil, false
	}
	return entry.Feature, true
}

// Lookup returns the features named name whose version satisfies constraint, in
// discovery order. An empty constraint matches every version.
func (r *FeatureRegistry) Lookup(name, constraint string) []*types.Feature {
	var matches []*types.Feature
	for _, e := range r.entries.Values() {
		if e.Feature.Name != name {
			continue
		}
		if MatchVersion(e.Feature.ID().Version, constraint) {
			matches = append(matches, e.Feature)
		}
	}
	return matches
}

// Count returns the number of registered features
func (r *FeatureRegistry) Count() int {
	return r.entries.Count()
}
