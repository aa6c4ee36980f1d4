package maven

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/location"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/rs/zerolog"
)

// Locator maps artifact locations to local files and canonical repository paths
type Locator interface {
	// Locate returns the local file backing location
	Locate(location string) (string, error)

	// RelativePath returns the canonical repository-relative path of a maven location
	RelativePath(location string) (string, error)

	// IsSnapshot reports whether location denotes a SNAPSHOT version
	IsSnapshot(location string) bool

	// GenerateMetadata writes local snapshot metadata for location into dir
	GenerateMetadata(location, dir string) (string, error)
}

// LocalLocator resolves maven coordinates against local repository directories.
// Non-maven locations (file: URIs and plain paths) resolve to themselves.
type LocalLocator struct {
	fs           types.FS
	repositories []string
	metadata     *MetadataWriter
	logger       zerolog.Logger
}

// NewLocalLocator creates a locator searching repositories in order
func NewLocalLocator(fs types.FS, repositories []string) *LocalLocator {
	return &LocalLocator{
		fs:           fs,
		repositories: repositories,
		metadata:     NewMetadataWriter(fs),
		logger:       logging.GetLogger("maven.locator"),
	}
}

// Locate implements Locator
func (l *LocalLocator) Locate(loc string) (string, error) {
	stripped := location.Strip(loc)
	if !location.IsMaven(stripped) {
		return l.locateFile(stripped)
	}

	coord, err := ParseCoordinate(stripped)
	if err != nil {
		return "", err
	}
	if coord.Repository != "" {
		l.logger.Debug().
			Str("location", loc).
			Str("repository", coord.Repository).
			Msg("Remote repository ignored, searching local repositories")
	}

	rel := filepath.FromSlash(coord.Path())
	for _, repo := range l.repositories {
		candidate := filepath.Join(repo, rel)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			l.logger.Trace().Str("location", loc).Str("file", candidate).Msg("Artifact located")
			return candidate, nil
		}
	}

	return "", errors.Newf(errors.ErrArtifactNotFound, "cannot locate %s", loc).
		WithDetail("path", coord.Path()).
		WithDetail("repositories", l.repositories)
}

// RelativePath implements Locator
func (l *LocalLocator) RelativePath(loc string) (string, error) {
	coord, err := ParseCoordinate(loc)
	if err != nil {
		return "", err
	}
	return coord.Path(), nil
}

// IsSnapshot implements Locator
func (l *LocalLocator) IsSnapshot(loc string) bool {
	coord, err := ParseCoordinate(loc)
	if err != nil {
		return false
	}
	return coord.IsSnapshot()
}

// GenerateMetadata implements Locator
func (l *LocalLocator) GenerateMetadata(loc, dir string) (string, error) {
	coord, err := ParseCoordinate(loc)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataGenerate, "cannot generate metadata for %s", loc)
	}
	return l.metadata.Generate(coord, dir)
}

// WithClock replaces the time source used for snapshot metadata
func (l *LocalLocator) WithClock(now func() time.Time) *LocalLocator {
	l.metadata.WithClock(now)
	return l
}

func (l *LocalLocator) locateFile(loc string) (string, error) {
	file := loc
	if strings.HasPrefix(loc, "file:") {
		u, err := url.Parse(loc)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrCoordinateInvalid, "invalid file location %s", loc)
		}
		file = u.Path
		if file == "" {
			file = u.Opaque
		}
	}

	if _, err := l.fs.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrArtifactNotFound, "cannot locate %s", loc).WithDetail("path", file)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", file)
	}
	return file, nil
}
