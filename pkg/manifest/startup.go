package manifest

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

// StartupHeader is written at the top of every startup manifest
const StartupHeader = "Bundles to be started on startup, with startlevel"

// FeatureComment returns the comment introducing the first entry of a feature
func FeatureComment(id types.FeatureID) string {
	return fmt.Sprintf("feature: %s version: %s", id.Name, id.Version)
}

// StartupManifest is the ordered mapping of bundle paths to start levels
type StartupManifest struct {
	fs     types.FS
	path   string
	props  *properties.Properties
	exists bool

	// commented holds the features that already introduced an entry this run
	commented map[types.FeatureID]bool
	logger    zerolog.Logger
}

// NewStartupManifest creates an empty manifest stored at path
func NewStartupManifest(fs types.FS, path string) *StartupManifest {
	return &StartupManifest{
		fs:        fs,
		path:      path,
		props:     newProperties(),
		commented: make(map[types.FeatureID]bool),
		logger:    logging.GetLogger("manifest.startup"),
	}
}

// Path returns the manifest file location
func (m *StartupManifest) Path() string {
	return m.path
}

// Exists reports whether the manifest was present on disk when loaded or saved
func (m *StartupManifest) Exists() bool {
	return m.exists
}

// Load replaces the in-memory state with the file content. A missing file is an
// empty manifest.
func (m *StartupManifest) Load() error {
	props, exists, err := loadProperties(m.fs, m.path)
	if err != nil {
		return err
	}

	keys := props.Keys()
	if len(keys) > 0 {
		comments := props.GetComments(keys[0])
		if len(comments) > 0 && comments[0] == StartupHeader {
			props.SetComments(keys[0], comments[1:])
		}
	}

	m.props = props
	m.exists = exists
	m.logger.Debug().Str("path", m.path).Bool("exists", exists).Int("entries", len(keys)).Msg("Startup manifest loaded")
	return nil
}

// Add records relPath at level for feature. An existing entry keeps the lower of
// both levels. The first new entry of a feature is preceded by FeatureComment.
// Add reports whether the manifest changed.
func (m *StartupManifest) Add(relPath string, level int, feature types.FeatureID) bool {
	if existing, ok := m.Level(relPath); ok {
		if existing <= level {
			return false
		}
		m.set(relPath, level)
		m.logger.Debug().Str("bundle", relPath).Int("from", existing).Int("to", level).Msg("Lowered start level")
		return true
	}

	if raw, ok := m.props.Get(relPath); ok {
		m.logger.Warn().Str("bundle", relPath).Str("value", raw).Msg("Replacing invalid start level")
		m.set(relPath, level)
		return true
	}

	m.set(relPath, level)
	if !m.commented[feature] {
		m.props.SetComments(relPath, []string{FeatureComment(feature)})
		m.commented[feature] = true
	}
	return true
}

// Keys returns the bundle paths in file order
func (m *StartupManifest) Keys() []string {
	return m.props.Keys()
}

// Level returns the start level recorded for relPath
func (m *StartupManifest) Level(relPath string) (int, bool) {
	raw, ok := m.props.Get(relPath)
	if !ok {
		return 0, false
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return level, true
}

// Comments returns the comment lines preceding relPath
func (m *StartupManifest) Comments(relPath string) []string {
	return m.props.GetComments(relPath)
}

// Len returns the number of entries
func (m *StartupManifest) Len() int {
	return m.props.Len()
}

// Save writes the manifest, creating its directory when needed
func (m *StartupManifest) Save() error {
	if err := saveProperties(m.fs, m.path, StartupHeader, m.props); err != nil {
		return err
	}
	m.exists = true
	m.logger.Debug().Str("path", m.path).Int("entries", m.props.Len()).Msg("Startup manifest saved")
	return nil
}

func (m *StartupManifest) set(key string, level int) {
	// Set only fails on circular expansion, which is disabled
	_, _, _ = m.props.Set(key, strconv.Itoa(level))
}
