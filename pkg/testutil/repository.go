package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/stretchr/testify/require"
)

// Repository is a local maven repository used as artifact source in tests
type Repository struct {
	FS   types.FS
	Root string
}

// NewRepository creates a repository rooted at root on fs
func NewRepository(t *testing.T, fs types.FS, root string) *Repository {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &Repository{FS: fs, Root: root}
}

// Publish stores content under the canonical path of location and returns the file path
func (r *Repository) Publish(t *testing.T, location, content string) string {
	t.Helper()
	coord, err := maven.ParseCoordinate(location)
	require.NoError(t, err)
	path := filepath.Join(r.Root, filepath.FromSlash(coord.Path()))
	WriteFile(t, r.FS, path, content)
	return path
}

// PublishFeatures renders a features descriptor and publishes it under location
func (r *Repository) PublishFeatures(t *testing.T, location string, features *FeaturesXML) string {
	t.Helper()
	return r.Publish(t, location, features.Render(t))
}

// Locator returns a locator searching only this repository
func (r *Repository) Locator() *maven.LocalLocator {
	return maven.NewLocalLocator(r.FS, []string{r.Root})
}
