// Package manifest maintains the two files an assembly records its state in: the
// startup manifest (bundle path to start level) and the features configuration
// (boot feature list and feature repository list).
//
// Both are java properties files. They are loaded at the start of a run, merged
// with what the run resolves and written back at the end, so hand edits between
// runs survive as long as the syntax stays valid.
package manifest

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/magiconair/properties"
)

const commentPrefix = "# "

// loadProperties reads path without expanding ${} references. A missing file
// yields empty properties.
func loadProperties(fs types.FS, path string) (*properties.Properties, bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newProperties(), false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read %s", path).WithDetail("path", path)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, true, errors.Wrapf(err, errors.ErrManifestLoad, "cannot parse %s", path).WithDetail("path", path)
	}
	return p, true, nil
}

func newProperties() *properties.Properties {
	p := properties.NewProperties()
	p.DisableExpansion = true
	return p
}

// saveProperties writes p to path, preceded by an optional header comment
func saveProperties(fs types.FS, path, header string, p *properties.Properties) error {
	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(commentPrefix + header + "\n")
		if p.Len() > 0 {
			buf.WriteString("\n")
		}
	}
	if _, err := p.WriteComment(&buf, commentPrefix, properties.UTF8); err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "cannot render %s", path).WithDetail("path", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "cannot create %s", filepath.Dir(path)).WithDetail("path", path)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "cannot write %s", path).WithDetail("path", path)
	}
	return nil
}
