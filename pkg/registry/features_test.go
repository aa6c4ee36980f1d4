package registry

import (
	"testing"

	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feature(name, version string) *types.Feature {
	return &types.Feature{Name: name, Version: version}
}

func TestFeatureRegistry_Policies(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		flags  []bool
		want   bool
	}{
		{"last write wins true then false", PolicyLastWriteWins, []bool{true, false}, false},
		{"last write wins false then true", PolicyLastWriteWins, []bool{false, true}, true},
		{"any startup true then false", PolicyAnyStartup, []bool{true, false}, true},
		{"any startup false then false", PolicyAnyStartup, []bool{false, false}, false},
		{"default is last write wins", "", []bool{true, false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewFeatureRegistry(tt.policy)
			for _, flag := range tt.flags {
				reg.Register(feature("core", "1.0"), flag)
			}
			assert.Equal(t, tt.want, reg.IsStartup(types.FeatureID{Name: "core", Version: "1.0"}))
			assert.Equal(t, 1, reg.Count())
		})
	}
}

func TestFeatureRegistry_DiscoveryOrder(t *testing.T) {
	reg := NewFeatureRegistry(PolicyLastWriteWins)
	first := feature("b", "1.0")
	reg.Register(first, false)
	reg.Register(feature("a", "1.0"), false)
	reg.Register(feature("b", "1.0"), true)
	reg.Register(feature("b", "2.0"), false)

	var ids []string
	for _, f := range reg.Features() {
		ids = append(ids, f.ID().String())
	}
	assert.Equal(t, []string{"b/1.0", "a/1.0", "b/2.0"}, ids)

	got, ok := reg.Get(types.FeatureID{Name: "b", Version: "1.0"})
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestFeatureRegistry_Lookup(t *testing.T) {
	reg := NewFeatureRegistry(PolicyLastWriteWins)
	reg.Register(feature("http", "1.0"), false)
	reg.Register(feature("http", "2.1"), false)
	reg.Register(feature("jetty", "9.0"), false)
	reg.Register(feature("unversioned", ""), false)

	assert.Len(t, reg.Lookup("http", ""), 2)
	assert.Equal(t, "2.1", reg.Lookup("http", "[2,3)")[0].Version)
	assert.Equal(t, "1.0", reg.Lookup("http", "1.0")[0].Version)
	assert.Empty(t, reg.Lookup("http", "3.0"))
	assert.Empty(t, reg.Lookup("missing", ""))
	assert.Len(t, reg.Lookup("unversioned", "0.0.0"), 1)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLastWriteWins, p)

	p, err = ParsePolicy("any-startup")
	require.NoError(t, err)
	assert.Equal(t, PolicyAnyStartup, p)

	_, err = ParsePolicy("first-wins")
	assert.Error(t, err)
}

func TestRepositoryRegistry(t *testing.T) {
	reg := NewRepositoryRegistry()

	entry := reg.Record("mvn:g/a/1.0/xml/features", true)
	require.NotNil(t, entry)
	assert.True(t, entry.Primary)
	assert.Nil(t, reg.Record("mvn:g/a/1.0/xml/features", false))
	require.NotNil(t, reg.Record("mvn:g/b/1.0/xml/features", false))

	assert.True(t, reg.Has("mvn:g/a/1.0/xml/features"))
	assert.Equal(t, []string{"mvn:g/a/1.0/xml/features", "mvn:g/b/1.0/xml/features"}, reg.URIs())
	assert.Len(t, reg.Entries(), 2)
}

func TestPolicyNames(t *testing.T) {
	assert.Equal(t, []string{"last-write-wins", "any-startup"}, PolicyNames())
}
