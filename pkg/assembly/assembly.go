// Package assembly drives a complete run.
//
// A run loads the manifests left by previous runs, resolves the feature
// repositories reachable from the inputs, classifies every discovered feature into
// a tier and applies the tier's side effects, restores startup entries missing
// from the system repository and finally saves both manifests. Everything happens
// on the calling goroutine in input and discovery order.
package assembly

import (
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/descriptor"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/kar"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/manifest"
	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/registry"
	"github.com/arthur-debert/kassemble/pkg/resolver"
	"github.com/arthur-debert/kassemble/pkg/sysrepo"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures an Assembler
type Options struct {
	SystemDir       string
	ResourceDir     string
	StartupManifest string
	FeaturesCfg     string

	DefaultStartLevel    int
	IgnoreDependencyFlag bool
	Policy               registry.Policy

	StartupFeatures   []string
	BootFeatures      []string
	InstalledFeatures []string
}

// Assembler builds an assembly from inputs
type Assembler struct {
	fs         types.FS
	locator    maven.Locator
	parser     descriptor.Parser
	opts       Options
	classifier *Classifier
	logger     zerolog.Logger
}

// New creates an assembler reading artifacts through locator
func New(fs types.FS, locator maven.Locator, opts Options) (*Assembler, error) {
	if opts.DefaultStartLevel <= 0 {
		return nil, errors.Newf(errors.ErrConfigValid, "default start level must be positive, got %d", opts.DefaultStartLevel)
	}
	classifier, err := NewClassifier(opts.StartupFeatures, opts.BootFeatures, opts.InstalledFeatures)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		fs:         fs,
		locator:    locator,
		parser:     descriptor.NewXMLParser(),
		opts:       opts,
		classifier: classifier,
		logger:     logging.GetLogger("assembly"),
	}, nil
}

// run holds the state of a single Run
type run struct {
	*Assembler
	writer   *sysrepo.Writer
	startup  *manifest.StartupManifest
	cfg      *manifest.FeaturesConfig
	features *registry.FeatureRegistry
	repos    *registry.Resolver
	ctx      *resolver.Context
	report   *Report
}

// Run executes the whole pipeline over inputs
func (a *Assembler) Run(inputs []types.InputArtifact) (*Report, error) {
	r := &run{
		Assembler: a,
		writer:    sysrepo.NewWriter(a.fs, a.locator, a.opts.SystemDir),
		startup:   manifest.NewStartupManifest(a.fs, a.opts.StartupManifest),
		cfg:       manifest.NewFeaturesConfig(a.fs, a.opts.FeaturesCfg),
		features:  registry.NewFeatureRegistry(a.opts.Policy),
		report: &Report{
			SystemDir:       a.opts.SystemDir,
			StartupManifest: a.opts.StartupManifest,
			FeaturesCfg:     a.opts.FeaturesCfg,
		},
	}
	r.repos = registry.NewResolver(a.fs, r.writer, a.parser, r.cfg, registry.NewRepositoryRegistry(), r.features)
	r.ctx = resolver.NewContext(r.features, r.writer, a.opts.IgnoreDependencyFlag)

	if err := r.prepare(); err != nil {
		return nil, err
	}
	for _, input := range inputs {
		if err := r.processInput(input); err != nil {
			return nil, err
		}
	}
	if err := r.installFeatures(); err != nil {
		return nil, err
	}
	if err := r.restoreStartupEntries(); err != nil {
		return nil, err
	}
	if err := r.save(); err != nil {
		return nil, err
	}

	r.collect()
	return r.report, nil
}

func (r *run) prepare() error {
	r.logger.Info().Str("path", r.opts.SystemDir).Msg("Creating system directory")
	if err := r.fs.MkdirAll(r.opts.SystemDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create system directory %s", r.opts.SystemDir).
			WithDetail("path", r.opts.SystemDir)
	}
	if err := r.startup.Load(); err != nil {
		return err
	}
	return r.cfg.Load()
}

func (r *run) processInput(input types.InputArtifact) error {
	if !input.Included() {
		r.logger.Debug().Str("input", input.String()).Str("scope", string(input.EffectiveScope())).Msg("Skipping input scope")
		return nil
	}
	wantsStartup := input.WantsStartup()

	switch {
	case input.IsKar():
		file, err := r.inputFile(input)
		if err != nil {
			return err
		}
		r.logger.Info().Str("kar", input.String()).Msg("Extracting kar")
		result, err := kar.Extract(r.fs, file, r.opts.SystemDir, r.opts.ResourceDir)
		if err != nil {
			return err
		}
		r.report.Inputs = append(r.report.Inputs, input.String())
		for _, repo := range result.Repositories {
			if err := r.repos.ResolveRepository(r.repositoryURI(repo), true, wantsStartup); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), "cannot install kar %s", input)
			}
		}

	case input.IsFeaturesRepository():
		uri := input.Location
		if uri == "" {
			uri = input.File
		}
		r.report.Inputs = append(r.report.Inputs, input.String())
		if err := r.repos.ResolveRepository(uri, true, wantsStartup); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "cannot install features repository %s", input)
		}

	default:
		r.logger.Debug().Str("input", input.String()).Msg("Input is neither a kar nor a features repository")
	}
	return nil
}

func (r *run) inputFile(input types.InputArtifact) (string, error) {
	if input.File != "" {
		return input.File, nil
	}
	return r.locator.Locate(input.Location)
}

// repositoryURI names an extracted repository file by its maven coordinate so
// the same descriptor shipped in several kars is processed once
func (r *run) repositoryURI(file string) string {
	rel, err := filepath.Rel(r.opts.SystemDir, file)
	if err != nil {
		return file
	}
	coord, err := maven.ParsePath(filepath.ToSlash(rel))
	if err != nil {
		return file
	}
	return coord.String()
}

func (r *run) installFeatures() error {
	for _, entry := range r.features.Entries() {
		feature := entry.Feature
		tier := r.classifier.Classify(feature.Name, entry.Startup)
		r.report.Features = append(r.report.Features, FeatureResult{
			Name:    feature.Name,
			Version: feature.ID().Version,
			Tier:    tier,
		})

		logger := r.logger.With().Str("feature", feature.ID().String()).Str("tier", tier.String()).Logger()
		var err error
		switch tier {
		case types.TierStartup:
			logger.Info().Msg("Installing startup feature")
			err = r.installStartup(feature)
		case types.TierBoot:
			logger.Info().Msg("Installing boot feature")
			if _, err = r.cfg.AddBootFeature(feature.Name); err == nil {
				err = resolver.Resolve(r.ctx, feature)
			}
		case types.TierInstalled:
			logger.Info().Msg("Installing feature")
			err = resolver.Resolve(r.ctx, feature)
		default:
			logger.Debug().Msg("Feature is not installed")
		}
		if err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "cannot install feature %s", feature.ID())
		}
	}
	return nil
}

func (r *run) installStartup(feature *types.Feature) error {
	if err := resolver.Resolve(r.ctx, feature); err != nil {
		return err
	}

	// Every bundle is listed, dependency-flagged ones included; the restore
	// step installs any the resolver skipped.
	for _, bundle := range feature.Bundles {
		rel, err := r.writer.RelPath(bundle.Location)
		if err != nil {
			return err
		}
		r.startup.Add(rel, bundle.EffectiveStartLevel(r.opts.DefaultStartLevel), feature.ID())
	}
	return nil
}

func (r *run) restoreStartupEntries() error {
	for _, key := range r.startup.Keys() {
		if r.writer.Exists(key) {
			continue
		}
		installed, err := r.writer.InstallPath(key)
		if err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "cannot restore startup bundle %s", key)
		}
		if installed.Copied {
			r.logger.Info().Str("bundle", key).Msg("Restored startup bundle")
			r.report.Restored = append(r.report.Restored, key)
			r.report.Artifacts = append(r.report.Artifacts, installed)
		}
	}
	return nil
}

func (r *run) save() error {
	if err := r.startup.Save(); err != nil {
		return err
	}
	return r.cfg.Save()
}

func (r *run) collect() {
	var artifacts []*sysrepo.Installed
	for _, entry := range r.repos.Repositories().Entries() {
		r.report.Repositories = append(r.report.Repositories, entry.URI)
		if entry.Installed != nil {
			artifacts = append(artifacts, entry.Installed)
		}
	}
	artifacts = append(artifacts, r.ctx.Installed()...)
	r.report.Artifacts = append(artifacts, r.report.Artifacts...)
	r.report.StartupEntries = r.startup.Len()
	r.report.BootFeatures = r.cfg.BootFeatures()
}
