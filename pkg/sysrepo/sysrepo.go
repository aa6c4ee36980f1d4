// Package sysrepo materializes artifacts into the system repository of an assembly.
//
// The system repository uses the maven layout. A path is written at most once: an
// artifact already present at its canonical path is never overwritten, which is what
// makes repeated assemblies against the same work directory idempotent.
package sysrepo

import (
	"os"
	"path"
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/location"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"
)

// Installed describes the outcome of installing one location
type Installed struct {
	// Location is the location as declared
	Location string `yaml:"location"`

	// RelPath is the canonical repository-relative path. For non-maven locations it
	// is the stripped location itself.
	RelPath string `yaml:"path"`

	// Path is the file backing the artifact after installation
	Path string `yaml:"file"`

	// Copied is set when this call wrote the file
	Copied bool `yaml:"copied"`

	// Snapshot is set for SNAPSHOT coordinates
	Snapshot bool `yaml:"snapshot,omitempty"`

	Digest digest.Digest `yaml:"digest"`
}

// Writer installs artifacts into a system repository directory
type Writer struct {
	fs        types.FS
	locator   maven.Locator
	systemDir string
	logger    zerolog.Logger
}

// NewWriter creates a writer installing into systemDir
func NewWriter(fs types.FS, locator maven.Locator, systemDir string) *Writer {
	return &Writer{
		fs:        fs,
		locator:   locator,
		systemDir: systemDir,
		logger:    logging.GetLogger("sysrepo"),
	}
}

// SystemDir returns the root of the system repository
func (w *Writer) SystemDir() string {
	return w.systemDir
}

// Path returns the absolute path of a repository-relative path
func (w *Writer) Path(relPath string) string {
	return filepath.Join(w.systemDir, filepath.FromSlash(relPath))
}

// Exists reports whether relPath is present in the system repository
func (w *Writer) Exists(relPath string) bool {
	_, err := w.fs.Stat(w.Path(relPath))
	return err == nil
}

// RelPath returns the canonical repository-relative path of loc, the stripped
// location itself for non-maven locations
func (w *Writer) RelPath(loc string) (string, error) {
	stripped := location.Strip(loc)
	if !location.IsMaven(stripped) {
		return stripped, nil
	}
	return w.locator.RelativePath(stripped)
}

// Install copies the artifact behind loc into the system repository unless its
// canonical path is already taken. Non-maven locations are already local and are
// only located.
func (w *Writer) Install(loc string) (*Installed, error) {
	stripped := location.Strip(loc)
	if !location.IsMaven(stripped) {
		file, err := w.locator.Locate(stripped)
		if err != nil {
			return nil, err
		}
		return w.describe(&Installed{Location: loc, RelPath: stripped, Path: file})
	}

	rel, err := w.locator.RelativePath(stripped)
	if err != nil {
		return nil, err
	}
	installed := &Installed{
		Location: loc,
		RelPath:  rel,
		Path:     w.Path(rel),
		Snapshot: w.locator.IsSnapshot(stripped),
	}

	if w.Exists(rel) {
		w.logger.Trace().Str("location", loc).Str("path", rel).Msg("Already installed")
		return w.describe(installed)
	}

	source, err := w.locator.Locate(stripped)
	if err != nil {
		return nil, err
	}

	copied, err := w.copyIfAbsent(source, installed.Path)
	if err != nil {
		return nil, err
	}
	installed.Copied = copied

	if copied {
		w.logger.Debug().Str("location", loc).Str("path", rel).Msg("Installed artifact")
		if installed.Snapshot {
			w.generateMetadata(stripped, filepath.Dir(installed.Path))
		}
	}

	return w.describe(installed)
}

// InstallPath installs the artifact whose canonical path is relPath, used to
// restore startup entries missing from the system repository
func (w *Writer) InstallPath(relPath string) (*Installed, error) {
	if !looksLikeRepositoryPath(relPath) {
		return w.Install(relPath)
	}
	coord, err := maven.ParsePath(relPath)
	if err != nil {
		return nil, err
	}
	return w.Install(coord.String())
}

// generateMetadata is best effort, a failure only costs snapshot freshness
func (w *Writer) generateMetadata(loc, dir string) {
	target, err := w.locator.GenerateMetadata(loc, dir)
	if err != nil {
		w.logger.Warn().
			Err(err).
			Str("location", loc).
			Msg("Could not create " + maven.MetadataFileName + ", this SNAPSHOT may be overwritten by an older remote one")
		return
	}
	w.logger.Debug().Str("location", loc).Str("metadata", target).Msg("Generated snapshot metadata")
}

// copyIfAbsent creates target exclusively. A target created concurrently is left alone.
func (w *Writer) copyIfAbsent(source, target string) (bool, error) {
	content, err := w.fs.ReadFile(source)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileCopy, "cannot read %s", source).WithDetail("path", source)
	}

	dir := filepath.Dir(target)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir).WithDetail("path", dir)
	}

	f, err := w.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileCopy, "cannot create %s", target).WithDetail("path", target)
	}

	_, werr := f.Write(content)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = w.fs.Remove(target)
		return false, errors.Wrapf(werr, errors.ErrFileCopy, "cannot write %s", target).WithDetail("path", target)
	}
	return true, nil
}

func (w *Writer) describe(installed *Installed) (*Installed, error) {
	content, err := w.fs.ReadFile(installed.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", installed.Path).
			WithDetail("path", installed.Path)
	}
	installed.Digest = digest.FromBytes(content)
	return installed, nil
}

func looksLikeRepositoryPath(p string) bool {
	return !path.IsAbs(p) && !filepath.IsAbs(p) && !location.IsMaven(p) && !hasScheme(p)
}

func hasScheme(p string) bool {
	for i, r := range p {
		switch {
		case r == ':':
			return i > 0
		case r == '/':
			return false
		}
	}
	return false
}
