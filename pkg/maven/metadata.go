package maven

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/beevik/etree"
)

// MetadataFileName is the side-car written next to SNAPSHOT artifacts
const MetadataFileName = "maven-metadata-local.xml"

const lastUpdatedLayout = "20060102150405"

// MetadataWriter generates local snapshot metadata files
type MetadataWriter struct {
	fs  types.FS
	now func() time.Time
}

// NewMetadataWriter creates a metadata writer stamping files with the current time
func NewMetadataWriter(fs types.FS) *MetadataWriter {
	return &MetadataWriter{fs: fs, now: time.Now}
}

// WithClock replaces the time source, used by tests
func (w *MetadataWriter) WithClock(now func() time.Time) *MetadataWriter {
	w.now = now
	return w
}

// Generate writes MetadataFileName for coord into dir and returns its path
func (w *MetadataWriter) Generate(coord Coordinate, dir string) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	metadata := doc.CreateElement("metadata")
	metadata.CreateElement("groupId").SetText(coord.GroupID)
	metadata.CreateElement("artifactId").SetText(coord.ArtifactID)
	metadata.CreateElement("version").SetText(coord.Version)

	versioning := metadata.CreateElement("versioning")
	versioning.CreateElement("snapshot").CreateElement("localCopy").SetText("true")
	versioning.CreateElement("lastUpdated").SetText(w.now().UTC().Format(lastUpdatedLayout))

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataGenerate, "cannot render metadata for %s", coord)
	}

	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataGenerate, "cannot create %s", dir)
	}
	target := filepath.Join(dir, MetadataFileName)
	if err := w.fs.WriteFile(target, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataGenerate, "cannot write %s", target)
	}
	return target, nil
}
