package assembly

import (
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/gobwas/glob"
)

// NameList matches feature names against names or glob patterns
type NameList struct {
	patterns []string
	globs    []glob.Glob
}

// NewNameList compiles patterns
func NewNameList(patterns []string) (*NameList, error) {
	l := &NameList{patterns: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid feature pattern %q", p)
		}
		l.globs = append(l.globs, g)
	}
	return l, nil
}

// Matches reports whether name is listed
func (l *NameList) Matches(name string) bool {
	if l == nil {
		return false
	}
	for _, g := range l.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Patterns returns the configured entries
func (l *NameList) Patterns() []string {
	if l == nil {
		return nil
	}
	return l.patterns
}

// Classifier assigns tiers from the three membership lists
type Classifier struct {
	Startup   *NameList
	Boot      *NameList
	Installed *NameList
}

// NewClassifier compiles the three membership lists
func NewClassifier(startup, boot, installed []string) (*Classifier, error) {
	c := &Classifier{}
	var err error
	if c.Startup, err = NewNameList(startup); err != nil {
		return nil, err
	}
	if c.Boot, err = NewNameList(boot); err != nil {
		return nil, err
	}
	if c.Installed, err = NewNameList(installed); err != nil {
		return nil, err
	}
	return c, nil
}

// Classify returns the tier of a feature. A feature coming from a startup
// repository is always a startup feature, otherwise the lists are checked in
// order startup, boot, installed.
func (c *Classifier) Classify(name string, startupFlag bool) types.Tier {
	switch {
	case startupFlag || c.Startup.Matches(name):
		return types.TierStartup
	case c.Boot.Matches(name):
		return types.TierBoot
	case c.Installed.Matches(name):
		return types.TierInstalled
	default:
		return types.TierUnlisted
	}
}
