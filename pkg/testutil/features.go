package testutil

import (
	"strconv"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// FeaturesNamespace is the namespace written on generated descriptors
const FeaturesNamespace = "http://karaf.apache.org/xmlns/features/v1.3.0"

// FeaturesXML declares a feature-repository descriptor
type FeaturesXML struct {
	Name         string
	Repositories []string
	Features     []types.Feature
}

// NewFeaturesXML starts a descriptor with the given repository name
func NewFeaturesXML(name string) *FeaturesXML {
	return &FeaturesXML{Name: name}
}

// WithRepository adds a nested repository reference
func (f *FeaturesXML) WithRepository(uri string) *FeaturesXML {
	f.Repositories = append(f.Repositories, uri)
	return f
}

// WithFeature adds a feature definition
func (f *FeaturesXML) WithFeature(feature types.Feature) *FeaturesXML {
	f.Features = append(f.Features, feature)
	return f
}

// Render writes the descriptor as XML
func (f *FeaturesXML) Render(t *testing.T) string {
	t.Helper()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("features")
	root.CreateAttr("xmlns", FeaturesNamespace)
	if f.Name != "" {
		root.CreateAttr("name", f.Name)
	}

	for _, repo := range f.Repositories {
		root.CreateElement("repository").SetText(repo)
	}

	for _, feature := range f.Features {
		el := root.CreateElement("feature")
		el.CreateAttr("name", feature.Name)
		if feature.Version != "" {
			el.CreateAttr("version", feature.Version)
		}
		if feature.Description != "" {
			el.CreateAttr("description", feature.Description)
		}
		for _, dep := range feature.Dependencies {
			d := el.CreateElement("feature")
			if dep.Version != "" {
				d.CreateAttr("version", dep.Version)
			}
			d.SetText(dep.Name)
		}
		for _, cfg := range feature.ConfigFiles {
			c := el.CreateElement("configfile")
			if cfg.Finalname != "" {
				c.CreateAttr("finalname", cfg.Finalname)
			}
			c.SetText(cfg.Location)
		}
		for _, bundle := range feature.Bundles {
			b := el.CreateElement("bundle")
			if bundle.StartLevel != 0 {
				b.CreateAttr("start-level", strconv.Itoa(bundle.StartLevel))
			}
			if bundle.Dependency {
				b.CreateAttr("dependency", "true")
			}
			b.SetText(bundle.Location)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}
