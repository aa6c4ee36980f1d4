package maven_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/testutil"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocator_Locate(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, "/m2/first/g/a/1.0/a-1.0.jar", "first")
	testutil.WriteFile(t, fs, "/m2/second/g/a/1.0/a-1.0.jar", "second")
	testutil.WriteFile(t, fs, "/m2/second/g/b/2.0/b-2.0.jar", "b")
	testutil.WriteFile(t, fs, "/opt/local.jar", "local")

	locator := maven.NewLocalLocator(fs, []string{"/m2/first", "/m2/second"})

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"first repository wins", "mvn:g/a/1.0", "/m2/first/g/a/1.0/a-1.0.jar"},
		{"falls through to second", "mvn:g/b/2.0", "/m2/second/g/b/2.0/b-2.0.jar"},
		{"prefix stripped", "wrap:mvn:g/b/2.0", "/m2/second/g/b/2.0/b-2.0.jar"},
		{"file uri", "file:/opt/local.jar", "/opt/local.jar"},
		{"file uri with authority", "file:///opt/local.jar", "/opt/local.jar"},
		{"plain path", "/opt/local.jar", "/opt/local.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locator.Locate(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalLocator_NotFound(t *testing.T) {
	locator := maven.NewLocalLocator(testutil.NewTestFS(), []string{"/m2"})

	_, err := locator.Locate("mvn:g/missing/1.0")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArtifactNotFound))
	assert.Equal(t, "g/missing/1.0/missing-1.0.jar", errors.GetErrorDetails(err)["path"])

	_, err = locator.Locate("file:/nowhere.jar")
	assert.True(t, errors.IsErrorCode(err, errors.ErrArtifactNotFound))
}

func TestLocalLocator_PathAndSnapshot(t *testing.T) {
	locator := maven.NewLocalLocator(testutil.NewTestFS(), nil)

	rel, err := locator.RelativePath("war:mvn:g/web/1.0/war")
	require.NoError(t, err)
	assert.Equal(t, "g/web/1.0/web-1.0.war", rel)

	_, err = locator.RelativePath("file:/tmp/a.jar")
	assert.Error(t, err)

	assert.True(t, locator.IsSnapshot("mvn:g/a/1.0-SNAPSHOT"))
	assert.False(t, locator.IsSnapshot("mvn:g/a/1.0"))
	assert.False(t, locator.IsSnapshot("file:/tmp/a-1.0-SNAPSHOT.jar"))
}

func TestMetadataWriter_Generate(t *testing.T) {
	fs := testutil.NewTestFS()
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	writer := maven.NewMetadataWriter(fs).WithClock(func() time.Time { return fixed })

	coord, err := maven.ParseCoordinate("mvn:org.sample/core/1.0-SNAPSHOT")
	require.NoError(t, err)

	target, err := writer.Generate(coord, "/system/org/sample/core/1.0-SNAPSHOT")
	require.NoError(t, err)
	assert.Equal(t, "/system/org/sample/core/1.0-SNAPSHOT/"+maven.MetadataFileName, target)

	data, err := fs.ReadFile(target)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.SelectElement("metadata")
	require.NotNil(t, root)
	assert.Equal(t, "org.sample", root.SelectElement("groupId").Text())
	assert.Equal(t, "core", root.SelectElement("artifactId").Text())
	assert.Equal(t, "1.0-SNAPSHOT", root.SelectElement("version").Text())
	assert.Equal(t, "true", root.FindElement("versioning/snapshot/localCopy").Text())
	assert.Equal(t, "20240301123045", root.FindElement("versioning/lastUpdated").Text())
}

func TestLocalLocator_GenerateMetadata(t *testing.T) {
	fs := testutil.NewTestFS()
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	locator := maven.NewLocalLocator(fs, nil).WithClock(func() time.Time { return fixed })

	target, err := locator.GenerateMetadata("wrap:mvn:g/a/2.0-SNAPSHOT", "/system/g/a/2.0-SNAPSHOT")
	require.NoError(t, err)
	testutil.AssertFileExists(t, fs, target)

	_, err = locator.GenerateMetadata("file:/tmp/a.jar", "/system")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMetadataGenerate))
}
