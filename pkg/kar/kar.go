// Package kar unpacks kar archives into an assembly.
//
// A kar is a zip holding a maven-layout repository/ tree and an optional resources/
// tree. The repository part lands in the system repository, the resources part in the
// assembly work directory. Feature descriptors found in the repository part are
// returned so the caller can resolve them.
package kar

import (
	"bytes"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kassemble/pkg/descriptor"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"
)

const (
	// RepositoryDir is the archive directory copied into the system repository
	RepositoryDir = "repository/"

	// ResourcesDir is the archive directory copied into the resource directory
	ResourcesDir = "resources/"
)

// Result describes what an extraction produced
type Result struct {
	// Repositories are the extracted feature-repository files, in archive order
	Repositories []string

	// Written lists files created by this extraction
	Written []string

	// Kept lists files that already existed and were left untouched
	Kept []string
}

// Extract unpacks karFile. Existing files are never overwritten.
func Extract(fs types.FS, karFile, systemDir, resourceDir string) (*Result, error) {
	logger := logging.GetLogger("kar")

	data, err := fs.ReadFile(karFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrKarExtract, "cannot read kar %s", karFile).
			WithDetail("path", karFile)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrKarExtract, "cannot open kar %s", karFile).
			WithDetail("path", karFile)
	}

	result := &Result{}
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		var base, rel string
		switch {
		case strings.HasPrefix(entry.Name, RepositoryDir):
			base, rel = systemDir, strings.TrimPrefix(entry.Name, RepositoryDir)
		case strings.HasPrefix(entry.Name, ResourcesDir):
			base, rel = resourceDir, strings.TrimPrefix(entry.Name, ResourcesDir)
		default:
			logger.Trace().Str("entry", entry.Name).Msg("Skipping kar entry")
			continue
		}

		target, err := targetPath(base, rel)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrKarExtract, "invalid entry %s in %s", entry.Name, karFile)
		}

		content, err := readEntry(entry)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrKarExtract, "cannot read entry %s in %s", entry.Name, karFile)
		}

		written, err := writeIfAbsent(fs, target, content)
		if err != nil {
			return nil, err
		}
		if written {
			result.Written = append(result.Written, target)
		} else {
			result.Kept = append(result.Kept, target)
		}

		if base == systemDir && isFeaturesDescriptor(entry.Name, content) {
			result.Repositories = append(result.Repositories, target)
		}
	}

	logger.Debug().
		Str("kar", karFile).
		Int("written", len(result.Written)).
		Int("kept", len(result.Kept)).
		Int("repositories", len(result.Repositories)).
		Msg("Kar extracted")

	return result, nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// targetPath joins rel below base, refusing entries that escape it
func targetPath(base, rel string) (string, error) {
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", errors.Newf(errors.ErrInvalidInput, "entry %q escapes its directory", rel)
	}
	return filepath.Join(base, filepath.FromSlash(clean)), nil
}

func writeIfAbsent(fs types.FS, target string, content []byte) (bool, error) {
	if _, err := fs.Stat(target); err == nil {
		return false, nil
	}
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
	}
	if err := fs.WriteFile(target, content, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrKarExtract, "cannot write %s", target).WithDetail("path", target)
	}
	return true, nil
}

func isFeaturesDescriptor(name string, content []byte) bool {
	if !strings.EqualFold(path.Ext(name), ".xml") {
		return false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.Tag == descriptor.RootElement
}
