package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/config"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New(config.Defaults(), "/project")
	require.NoError(t, err)

	assert.Equal(t, "/project", p.BaseDir())
	assert.Equal(t, "/project/target/assembly", p.WorkDir())
	assert.Equal(t, "/project/target/assembly/system", p.SystemDir())
	assert.Equal(t, "/project/target/assembly", p.ResourceDir())
	assert.Equal(t, "/project/target/assembly/etc/startup.properties", p.StartupManifest())
	assert.Equal(t, "/project/target/assembly/etc/org.apache.karaf.features.cfg", p.FeaturesCfg())
	assert.Equal(t, []string{filepath.Join(home, ".m2/repository")}, p.MavenRepositories())
}

func TestNew_Configured(t *testing.T) {
	cfg := config.Defaults()
	cfg.WorkDir = "/abs/work"
	cfg.SystemDir = "repo"
	cfg.StartupManifest = "/etc/custom/startup.properties"
	cfg.FeaturesCfg = "./cfg/features.cfg"
	cfg.Maven.Repositories = []string{"/srv/m2", "local-m2"}

	p, err := New(cfg, "/project")
	require.NoError(t, err)

	assert.Equal(t, "/abs/work", p.WorkDir())
	assert.Equal(t, "/project/repo", p.SystemDir())
	assert.Equal(t, "/etc/custom/startup.properties", p.StartupManifest())
	assert.Equal(t, "/project/cfg/features.cfg", p.FeaturesCfg())
	assert.Equal(t, []string{"/srv/m2", "/project/local-m2"}, p.MavenRepositories())
}

func TestNormalizePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := &paths{baseDir: "/base"}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/m2", filepath.Join(home, "m2")},
		{"~other/m2", "/base/~other/m2"},
		{"rel/../dir", "/base/dir"},
		{"/abs//dir/", "/abs/dir"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.NormalizePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := p.NormalizePath("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestNew_EmptyWorkDir(t *testing.T) {
	cfg := config.Defaults()
	cfg.WorkDir = ""

	_, err := New(cfg, "/project")
	assert.Error(t, err)
}
