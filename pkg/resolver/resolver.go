// Package resolver materializes features into the system repository.
//
// Resolution is depth first: the features a feature depends on are resolved
// before its own bundles and configuration files are installed. Features on the
// current resolution path are tracked so a dependency cycle fails with the cycle
// spelled out instead of recursing forever.
package resolver

import (
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/registry"
	"github.com/arthur-debert/kassemble/pkg/sysrepo"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/rs/zerolog"
)

// Context carries the state shared by every resolution of a run
type Context struct {
	Registry *registry.FeatureRegistry
	Writer   *sysrepo.Writer

	// IgnoreDependencyFlag installs bundles marked as dependency too
	IgnoreDependencyFlag bool

	path      []types.FeatureID
	visiting  map[types.FeatureID]bool
	resolved  map[types.FeatureID]bool
	order     []types.FeatureID
	installed []*sysrepo.Installed
	seen      map[string]bool
	logger    zerolog.Logger
}

// NewContext creates a resolution context
func NewContext(reg *registry.FeatureRegistry, writer *sysrepo.Writer, ignoreDependencyFlag bool) *Context {
	return &Context{
		Registry:             reg,
		Writer:               writer,
		IgnoreDependencyFlag: ignoreDependencyFlag,
		visiting:             make(map[types.FeatureID]bool),
		resolved:             make(map[types.FeatureID]bool),
		seen:                 make(map[string]bool),
		logger:               logging.GetLogger("resolver"),
	}
}

// Resolved returns the resolved features in completion order, dependencies first
func (c *Context) Resolved() []types.FeatureID {
	return c.order
}

// IsResolved reports whether id was fully resolved in this context
func (c *Context) IsResolved(id types.FeatureID) bool {
	return c.resolved[id]
}

// Installed returns every artifact installed through this context, once per path
func (c *Context) Installed() []*sysrepo.Installed {
	return c.installed
}

// Resolve installs the dependencies of feature, then its bundles and configuration
// files. A feature already resolved in ctx is skipped.
func Resolve(ctx *Context, feature *types.Feature) error {
	id := feature.ID()
	if ctx.resolved[id] {
		return nil
	}
	if ctx.visiting[id] {
		return cycleError(ctx.path, id)
	}

	ctx.visiting[id] = true
	ctx.path = append(ctx.path, id)
	defer func() {
		delete(ctx.visiting, id)
		ctx.path = ctx.path[:len(ctx.path)-1]
	}()

	for _, dep := range feature.Dependencies {
		matches := ctx.Registry.Lookup(dep.Name, dep.Version)
		if len(matches) == 0 {
			ctx.logger.Debug().
				Str("feature", id.String()).
				Str("dependency", dep.Name).
				Str("version", dep.Version).
				Msg("Dependency not provided by any resolved repository")
			continue
		}
		for _, match := range matches {
			if err := Resolve(ctx, match); err != nil {
				return err
			}
		}
	}

	ctx.logger.Info().Str("feature", id.String()).Msg("Resolving feature")

	for _, bundle := range feature.Bundles {
		if !ctx.IgnoreDependencyFlag && bundle.Dependency {
			ctx.logger.Warn().
				Str("feature", id.String()).
				Str("bundle", bundle.Location).
				Msg("Bundle is defined as dependency, so it's not installed")
			continue
		}
		if err := ctx.install(bundle.Location); err != nil {
			return err
		}
	}

	for _, cfg := range feature.ConfigFiles {
		if err := ctx.install(cfg.Location); err != nil {
			return err
		}
	}

	ctx.resolved[id] = true
	ctx.order = append(ctx.order, id)
	return nil
}

func (c *Context) install(loc string) error {
	installed, err := c.Writer.Install(loc)
	if err != nil {
		return err
	}
	if !c.seen[installed.RelPath] {
		c.seen[installed.RelPath] = true
		c.installed = append(c.installed, installed)
	}
	c.logger.Debug().Str("location", loc).Bool("copied", installed.Copied).Msg("Installed")
	return nil
}

func cycleError(path []types.FeatureID, id types.FeatureID) error {
	start := 0
	for i, p := range path {
		if p == id {
			start = i
			break
		}
	}

	names := make([]string, 0, len(path)-start+1)
	for _, p := range path[start:] {
		names = append(names, p.Name)
	}
	names = append(names, id.Name)
	cycle := strings.Join(names, " -> ")

	return errors.Newf(errors.ErrCircularDependency, "circular feature dependency: %s", cycle).
		WithDetail("cycle", cycle)
}
