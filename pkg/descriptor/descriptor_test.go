package descriptor_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/descriptor"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/testutil"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLParser_Parse(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<features name="sample-1.0" xmlns="http://karaf.apache.org/xmlns/features/v1.3.0">
  <repository>mvn:org.sample/nested/1.0/xml/features</repository>
  <repository>  mvn:org.sample/other/1.0/xml/features  </repository>
  <feature name="core" version="1.0" description="Core services">
    <details>ignored</details>
    <feature>base</feature>
    <feature version="[1,2)">logging</feature>
    <configfile finalname="/etc/core.cfg">mvn:org.sample/core-cfg/1.0/cfg</configfile>
    <bundle>mvn:org.sample/core-impl/1.0</bundle>
    <bundle start-level="20" dependency="true">wrap:mvn:org.sample/lib/2.0</bundle>
  </feature>
  <feature name="base">
    <bundle start-level="10">mvn:org.sample/base/1.0</bundle>
  </feature>
</features>`

	repo, err := descriptor.NewXMLParser().Parse("mvn:org.sample/sample/1.0/xml/features", strings.NewReader(xml))
	require.NoError(t, err)

	assert.Equal(t, "mvn:org.sample/sample/1.0/xml/features", repo.URI)
	assert.Equal(t, "sample-1.0", repo.Name)
	assert.Equal(t, []string{
		"mvn:org.sample/nested/1.0/xml/features",
		"mvn:org.sample/other/1.0/xml/features",
	}, repo.Repositories)
	require.Len(t, repo.Features, 2)

	core := repo.Features[0]
	assert.Equal(t, types.FeatureID{Name: "core", Version: "1.0"}, core.ID())
	assert.Equal(t, "Core services", core.Description)
	assert.Equal(t, []types.Dependency{{Name: "base"}, {Name: "logging", Version: "[1,2)"}}, core.Dependencies)
	assert.Equal(t, []types.ConfigFile{{Location: "mvn:org.sample/core-cfg/1.0/cfg", Finalname: "/etc/core.cfg"}}, core.ConfigFiles)
	assert.Equal(t, []types.Bundle{
		{Location: "mvn:org.sample/core-impl/1.0"},
		{Location: "wrap:mvn:org.sample/lib/2.0", StartLevel: 20, Dependency: true},
	}, core.Bundles)

	base := repo.Features[1]
	assert.Equal(t, types.FeatureID{Name: "base", Version: types.DefaultFeatureVersion}, base.ID())
	assert.Equal(t, 10, base.Bundles[0].StartLevel)
}

func TestXMLParser_RoundTripsBuilder(t *testing.T) {
	want := types.Feature{
		Name:         "web",
		Version:      "2.1",
		Dependencies: []types.Dependency{{Name: "http", Version: "2.1"}},
		ConfigFiles:  []types.ConfigFile{{Location: "mvn:g/web-cfg/2.1/cfg"}},
		Bundles:      []types.Bundle{{Location: "war:mvn:g/web/2.1/war", StartLevel: 80}},
	}
	xml := testutil.NewFeaturesXML("web").WithRepository("mvn:g/http/2.1/xml/features").WithFeature(want).Render(t)

	repo, err := descriptor.NewXMLParser().Parse("web.xml", strings.NewReader(xml))
	require.NoError(t, err)

	require.Len(t, repo.Features, 1)
	assert.Equal(t, want, *repo.Features[0])
	assert.Equal(t, []string{"mvn:g/http/2.1/xml/features"}, repo.Repositories)
}

func TestXMLParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		code errors.ErrorCode
	}{
		{"malformed xml", `<features><feature name="a">`, errors.ErrDescriptorParse},
		{"wrong root", `<project/>`, errors.ErrDescriptorInvalid},
		{"empty document", ``, errors.ErrDescriptorInvalid},
		{"feature without name", `<features><feature version="1.0"/></features>`, errors.ErrDescriptorInvalid},
		{"empty bundle", `<features><feature name="a"><bundle> </bundle></feature></features>`, errors.ErrDescriptorInvalid},
		{"bad start level", `<features><feature name="a"><bundle start-level="x">mvn:g/a/1</bundle></feature></features>`, errors.ErrDescriptorInvalid},
		{"empty dependency", `<features><feature name="a"><feature/></feature></features>`, errors.ErrDescriptorInvalid},
		{"empty configfile", `<features><feature name="a"><configfile/></feature></features>`, errors.ErrDescriptorInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := descriptor.NewXMLParser().Parse("test.xml", strings.NewReader(tt.xml))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}
