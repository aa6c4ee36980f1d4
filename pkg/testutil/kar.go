package testutil

import (
	"bytes"
	"sort"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// BuildKar writes a kar archive at path on fs. Entries are written in sorted name order.
func BuildKar(t *testing.T, fs types.FS, path string, entries map[string]string) string {
	t.Helper()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	WriteFile(t, fs, path, buf.String())
	return path
}
