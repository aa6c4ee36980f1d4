package assembly

import (
	"io"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/sysrepo"
	"github.com/arthur-debert/kassemble/pkg/types"
	"gopkg.in/yaml.v3"
)

// FeatureResult is the outcome of one discovered feature
type FeatureResult struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Tier    types.Tier `yaml:"tier"`
}

// Report summarizes a run
type Report struct {
	SystemDir       string `yaml:"system_dir"`
	StartupManifest string `yaml:"startup_manifest"`
	FeaturesCfg     string `yaml:"features_cfg"`

	// Inputs lists the processed inputs, skipped ones excluded
	Inputs []string `yaml:"inputs"`

	// Repositories lists every repository processed, in processing order
	Repositories []string `yaml:"repositories"`

	// Features lists every discovered feature, in discovery order
	Features []FeatureResult `yaml:"features"`

	// Artifacts lists what was materialized for repositories and features
	Artifacts []*sysrepo.Installed `yaml:"artifacts"`

	// Restored lists startup entries that were missing from the system repository
	Restored []string `yaml:"restored,omitempty"`

	StartupEntries int      `yaml:"startup_entries"`
	BootFeatures   []string `yaml:"boot_features"`
}

// Tier returns the names of the features classified as tier
func (r *Report) Tier(tier types.Tier) []string {
	var names []string
	for _, f := range r.Features {
		if f.Tier == tier {
			names = append(names, f.Name)
		}
	}
	return names
}

// Copied returns the number of artifacts written by the run
func (r *Report) Copied() int {
	n := 0
	for _, a := range r.Artifacts {
		if a.Copied {
			n++
		}
	}
	return n
}

// WriteYAML serializes the report
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	return enc.Close()
}
