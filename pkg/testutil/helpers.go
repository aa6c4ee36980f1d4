package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

// ReadFile returns the content of path, failing the test if it cannot be read
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// FileExists reports whether path exists on fs
func FileExists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// AssertFileExists fails the test when path is missing
func AssertFileExists(t *testing.T, fs types.FS, path string) {
	t.Helper()
	_, err := fs.Stat(path)
	require.False(t, os.IsNotExist(err), "expected %s to exist", path)
	require.NoError(t, err)
}

// Digest returns the sha256 digest of content, as recorded for installed artifacts
func Digest(content string) digest.Digest {
	return digest.FromString(content)
}
