package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/config"
	"github.com/arthur-debert/kassemble/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// Default locations below the work directory
const (
	SystemDirName       = "system"
	EtcDirName          = "etc"
	StartupManifestName = "startup.properties"
	FeaturesCfgName     = "org.apache.karaf.features.cfg"
)

// Paths provides the locations of an assembly
type Paths interface {
	BaseDir() string
	WorkDir() string
	SystemDir() string
	ResourceDir() string
	StartupManifest() string
	FeaturesCfg() string
	MavenRepositories() []string
	NormalizePath(path string) (string, error)
}

type paths struct {
	baseDir         string
	workDir         string
	systemDir       string
	startupManifest string
	featuresCfg     string
	repositories    []string
}

// New derives the assembly paths from cfg. Relative paths are resolved against
// baseDir, or the current directory when baseDir is empty.
func New(cfg *config.Config, baseDir string) (Paths, error) {
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		baseDir = cwd
	}

	p := &paths{baseDir: filepath.Clean(baseDir)}

	var err error
	if p.workDir, err = p.NormalizePath(cfg.WorkDir); err != nil {
		return nil, err
	}
	if p.systemDir, err = p.orDefault(cfg.SystemDir, SystemDirName); err != nil {
		return nil, err
	}
	if p.startupManifest, err = p.orDefault(cfg.StartupManifest, EtcDirName, StartupManifestName); err != nil {
		return nil, err
	}
	if p.featuresCfg, err = p.orDefault(cfg.FeaturesCfg, EtcDirName, FeaturesCfgName); err != nil {
		return nil, err
	}

	for _, repo := range cfg.Maven.Repositories {
		normalized, err := p.NormalizePath(repo)
		if err != nil {
			return nil, err
		}
		p.repositories = append(p.repositories, normalized)
	}

	return p, nil
}

func (p *paths) orDefault(configured string, defaultParts ...string) (string, error) {
	if configured != "" {
		return p.NormalizePath(configured)
	}
	return filepath.Join(append([]string{p.workDir}, defaultParts...)...), nil
}

// BaseDir returns the directory relative paths are resolved against
func (p *paths) BaseDir() string {
	return p.baseDir
}

// WorkDir returns the assembly work directory
func (p *paths) WorkDir() string {
	return p.workDir
}

// SystemDir returns the system repository directory
func (p *paths) SystemDir() string {
	return p.systemDir
}

// ResourceDir returns where kar resources are extracted, the work directory itself
func (p *paths) ResourceDir() string {
	return p.workDir
}

// StartupManifest returns the startup manifest file
func (p *paths) StartupManifest() string {
	return p.startupManifest
}

// FeaturesCfg returns the features configuration file
func (p *paths) FeaturesCfg() string {
	return p.featuresCfg
}

// MavenRepositories returns the local repositories searched for artifacts
func (p *paths) MavenRepositories() []string {
	return p.repositories
}

// NormalizePath expands ~ and makes path absolute against the base directory
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(p.baseDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
