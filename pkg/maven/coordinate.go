package maven

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/location"
)

const (
	// DefaultType is the artifact type used when a coordinate declares none
	DefaultType = "jar"

	// SnapshotSuffix marks a mutable version
	SnapshotSuffix = "-SNAPSHOT"

	repositorySeparator = "!"
)

// Coordinate identifies a maven artifact
type Coordinate struct {
	Repository string
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
}

// ParseCoordinate parses a mvn: location. Location prefixes such as wrap: are
// stripped first.
func ParseCoordinate(loc string) (Coordinate, error) {
	stripped := location.Strip(loc)
	if !strings.HasPrefix(stripped, location.MavenScheme) {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid, "not a maven coordinate: %s", loc)
	}
	body := strings.TrimPrefix(stripped, location.MavenScheme)

	var c Coordinate
	if i := strings.LastIndex(body, repositorySeparator); i >= 0 {
		c.Repository = body[:i]
		body = body[i+1:]
	}

	parts := strings.Split(body, "/")
	if len(parts) < 3 || len(parts) > 5 {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid,
			"expected groupId/artifactId/version[/type[/classifier]] in %s", loc)
	}
	c.GroupID = parts[0]
	c.ArtifactID = parts[1]
	c.Version = parts[2]
	if len(parts) > 3 {
		c.Type = parts[3]
	}
	if len(parts) > 4 {
		c.Classifier = parts[4]
	}
	if c.Type == "" {
		c.Type = DefaultType
	}

	if c.GroupID == "" || c.ArtifactID == "" || c.Version == "" {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid,
			"groupId, artifactId and version are required in %s", loc)
	}
	return c, nil
}

// ParsePath inverts Coordinate.Path for a repository-relative path
func ParsePath(rel string) (Coordinate, error) {
	segments := strings.Split(strings.Trim(path.Clean(rel), "/"), "/")
	if len(segments) < 4 {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid, "not a repository path: %s", rel)
	}

	n := len(segments)
	c := Coordinate{
		GroupID:    strings.Join(segments[:n-3], "."),
		ArtifactID: segments[n-3],
		Version:    segments[n-2],
	}

	prefix := c.ArtifactID + "-" + c.Version
	file := segments[n-1]
	if !strings.HasPrefix(file, prefix) {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid,
			"file name %s does not match %s in %s", file, prefix, rel)
	}
	rest := strings.TrimPrefix(file, prefix)

	switch {
	case strings.HasPrefix(rest, "."):
		c.Type = rest[1:]
	case strings.HasPrefix(rest, "-"):
		dot := strings.Index(rest, ".")
		if dot < 0 {
			return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid, "missing extension in %s", rel)
		}
		c.Classifier = rest[1:dot]
		c.Type = rest[dot+1:]
	}
	if c.Type == "" {
		return Coordinate{}, errors.Newf(errors.ErrCoordinateInvalid, "missing extension in %s", rel)
	}
	return c, nil
}

// Path returns the canonical repository-relative path, always slash separated
func (c Coordinate) Path() string {
	return path.Join(c.Dir(), c.FileName())
}

// Dir returns the repository-relative version directory
func (c Coordinate) Dir() string {
	return path.Join(strings.ReplaceAll(c.GroupID, ".", "/"), c.ArtifactID, c.Version)
}

// FileName returns artifactId-version[-classifier].type
func (c Coordinate) FileName() string {
	name := c.ArtifactID + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.typeOrDefault()
}

// IsSnapshot reports whether the coordinate denotes a mutable version
func (c Coordinate) IsSnapshot() bool {
	return strings.HasSuffix(c.Version, SnapshotSuffix)
}

// String renders the coordinate as a mvn: location without repository URL
func (c Coordinate) String() string {
	s := fmt.Sprintf("%s%s/%s/%s", location.MavenScheme, c.GroupID, c.ArtifactID, c.Version)
	if c.Classifier != "" {
		return s + "/" + c.typeOrDefault() + "/" + c.Classifier
	}
	if c.typeOrDefault() != DefaultType {
		return s + "/" + c.Type
	}
	return s
}

func (c Coordinate) typeOrDefault() string {
	if c.Type == "" {
		return DefaultType
	}
	return c.Type
}
