package registry

import (
	"github.com/arthur-debert/kassemble/pkg/sysrepo"
	"github.com/arthur-debert/kassemble/pkg/types"
)

// RepositoryEntry is a repository processed during the run
type RepositoryEntry struct {
	URI     string
	Primary bool

	// Installed and Repository are set once the descriptor was materialized and parsed
	Installed  *sysrepo.Installed
	Repository *types.FeatureRepository
}

// RepositoryRegistry is the set of repositories processed in the current run
type RepositoryRegistry struct {
	entries Registry[string, *RepositoryEntry]
}

// NewRepositoryRegistry creates an empty registry
func NewRepositoryRegistry() *RepositoryRegistry {
	return &RepositoryRegistry{entries: New[string, *RepositoryEntry]()}
}

// Record adds uri. It returns nil when uri was already processed.
func (r *RepositoryRegistry) Record(uri string, primary bool) *RepositoryEntry {
	entry := &RepositoryEntry{URI: uri, Primary: primary}
	if err := r.entries.Register(uri, entry); err != nil {
		return nil
	}
	return entry
}

// Has reports whether uri was already processed
func (r *RepositoryRegistry) Has(uri string) bool {
	return r.entries.Has(uri)
}

// Entries returns the processed repositories in processing order
func (r *RepositoryRegistry) Entries() []*RepositoryEntry {
	return r.entries.Values()
}

// URIs returns the processed repository URIs in processing order
func (r *RepositoryRegistry) URIs() []string {
	return r.entries.Keys()
}
