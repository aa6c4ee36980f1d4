package kar_test

import (
	"testing"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/kar"
	"github.com/arthur-debert/kassemble/pkg/testutil"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleKar(t *testing.T) map[string]string {
	features := testutil.NewFeaturesXML("sample").WithFeature(types.Feature{
		Name:    "core",
		Version: "1.0",
		Bundles: []types.Bundle{{Location: "mvn:org.sample/core-impl/1.0"}},
	}).Render(t)

	return map[string]string{
		"META-INF/MANIFEST.MF":                                     "Manifest-Version: 1.0\n",
		"repository/org/sample/core-impl/1.0/core-impl-1.0.jar":    "jar",
		"repository/org/sample/sample/1.0/sample-1.0-features.xml": features,
		"repository/org/sample/sample/1.0/sample-1.0.pom":          "<project/>",
		"repository/org/sample/other/1.0/other-1.0-notes.xml":      "<notes/>",
		"resources/etc/custom.cfg":                                 "key = value\n",
	}
}

func TestExtract(t *testing.T) {
	fs := testutil.NewTestFS()
	karFile := testutil.BuildKar(t, fs, "/inputs/sample.kar", sampleKar(t))

	result, err := kar.Extract(fs, karFile, "/work/system", "/work")
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/system/org/sample/sample/1.0/sample-1.0-features.xml"}, result.Repositories)
	assert.Empty(t, result.Kept)

	assert.Equal(t, "jar", testutil.ReadFile(t, fs, "/work/system/org/sample/core-impl/1.0/core-impl-1.0.jar"))
	assert.Equal(t, "key = value\n", testutil.ReadFile(t, fs, "/work/etc/custom.cfg"))
	testutil.AssertFileExists(t, fs, "/work/system/org/sample/other/1.0/other-1.0-notes.xml")
	assert.False(t, testutil.FileExists(fs, "/work/META-INF/MANIFEST.MF"))
}

func TestExtract_KeepsExistingFiles(t *testing.T) {
	fs := testutil.NewTestFS()
	karFile := testutil.BuildKar(t, fs, "/inputs/sample.kar", sampleKar(t))
	testutil.WriteFile(t, fs, "/work/system/org/sample/core-impl/1.0/core-impl-1.0.jar", "existing")

	result, err := kar.Extract(fs, karFile, "/work/system", "/work")
	require.NoError(t, err)

	assert.Equal(t, "existing", testutil.ReadFile(t, fs, "/work/system/org/sample/core-impl/1.0/core-impl-1.0.jar"))
	assert.Contains(t, result.Kept, "/work/system/org/sample/core-impl/1.0/core-impl-1.0.jar")

	again, err := kar.Extract(fs, karFile, "/work/system", "/work")
	require.NoError(t, err)
	assert.Empty(t, again.Written)
	assert.Equal(t, result.Repositories, again.Repositories)
}

func TestExtract_ArchiveOrder(t *testing.T) {
	fs := testutil.NewTestFS()
	first := testutil.NewFeaturesXML("a").Render(t)
	second := testutil.NewFeaturesXML("b").Render(t)
	karFile := testutil.BuildKar(t, fs, "/k.kar", map[string]string{
		"repository/a/features.xml": first,
		"repository/b/features.xml": second,
	})

	result, err := kar.Extract(fs, karFile, "/sys", "/res")
	require.NoError(t, err)
	assert.Equal(t, []string{"/sys/a/features.xml", "/sys/b/features.xml"}, result.Repositories)
}

func TestExtract_Errors(t *testing.T) {
	fs := testutil.NewTestFS()

	_, err := kar.Extract(fs, "/missing.kar", "/sys", "/res")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKarExtract))
	assert.Equal(t, "/missing.kar", errors.GetErrorDetails(err)["path"])

	escaping := testutil.BuildKar(t, fs, "/escaping.kar", map[string]string{
		"repository/g/../../../outside.txt": "x",
	})
	_, err = kar.Extract(fs, escaping, "/sys", "/res")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKarExtract))
	assert.False(t, testutil.FileExists(fs, "/outside.txt"))

	testutil.WriteFile(t, fs, "/broken.kar", "not a zip")
	_, err = kar.Extract(fs, "/broken.kar", "/sys", "/res")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKarExtract))
}
