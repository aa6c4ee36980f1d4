package manifest_test

import (
	"testing"

	"github.com/arthur-debert/kassemble/pkg/manifest"
	"github.com/arthur-debert/kassemble/pkg/testutil"
	"github.com/magiconair/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfgPath = "/work/etc/org.apache.karaf.features.cfg"

func TestFeaturesConfig_BootExactTokens(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, cfgPath, "featuresBoot = foo-ext\n")

	cfg := manifest.NewFeaturesConfig(fs, cfgPath)
	require.NoError(t, cfg.Load())

	added, err := cfg.AddBootFeature("foo")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = cfg.AddBootFeature("foo")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"foo-ext", "foo"}, cfg.BootFeatures())

	persisted := properties.MustLoadString(testutil.ReadFile(t, fs, cfgPath))
	assert.Equal(t, "foo-ext,foo", persisted.MustGetString(manifest.FeaturesBootKey))
}

func TestFeaturesConfig_PersistsImmediately(t *testing.T) {
	fs := testutil.NewTestFS()
	cfg := manifest.NewFeaturesConfig(fs, cfgPath)
	require.NoError(t, cfg.Load())
	assert.False(t, testutil.FileExists(fs, cfgPath))

	_, err := cfg.AddRepository("mvn:org.sample/features/1.0/xml/features")
	require.NoError(t, err)
	testutil.AssertFileExists(t, fs, cfgPath)

	_, err = cfg.AddRepository("mvn:org.sample/more/1.0/xml/features")
	require.NoError(t, err)

	reloaded := manifest.NewFeaturesConfig(fs, cfgPath)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{
		"mvn:org.sample/features/1.0/xml/features",
		"mvn:org.sample/more/1.0/xml/features",
	}, reloaded.Repositories())
}

func TestFeaturesConfig_PreservesOtherEntries(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, cfgPath, `# Comma separated list of features repositories to register by default
featuresRepositories = mvn:org.apache.karaf.features/standard/4.0.0/xml/features

# Comma separated list of features to install at startup
featuresBoot = (instance, package), ssh

resolverParameters = ${karaf.etc}/resolver
`)

	cfg := manifest.NewFeaturesConfig(fs, cfgPath)
	require.NoError(t, cfg.Load())
	assert.Equal(t, []string{"instance", "package", "ssh"}, cfg.BootFeatures())

	added, err := cfg.AddBootFeature("package")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = cfg.AddBootFeature("web")
	require.NoError(t, err)
	assert.True(t, added)

	reloaded := manifest.NewFeaturesConfig(fs, cfgPath)
	require.NoError(t, reloaded.Load())
	boot, _ := reloaded.Get(manifest.FeaturesBootKey)
	assert.Equal(t, "(instance, package), ssh,web", boot)
	resolver, _ := reloaded.Get("resolverParameters")
	assert.Equal(t, "${karaf.etc}/resolver", resolver)
	assert.Equal(t, []string{"mvn:org.apache.karaf.features/standard/4.0.0/xml/features"}, reloaded.Repositories())
}

func TestFeaturesConfig_IgnoresBlankTokens(t *testing.T) {
	cfg := manifest.NewFeaturesConfig(testutil.NewTestFS(), cfgPath)
	require.NoError(t, cfg.Load())

	added, err := cfg.AddBootFeature("  ")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, cfg.BootFeatures())
}
