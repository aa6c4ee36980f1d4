package registry

import (
	"bytes"

	"github.com/arthur-debert/kassemble/pkg/descriptor"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/sysrepo"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/rs/zerolog"
)

// RepositoryList is the persisted list primary repositories are appended to
type RepositoryList interface {
	AddRepository(uri string) (bool, error)
}

// Resolver walks feature repositories and their nested references
type Resolver struct {
	fs           types.FS
	writer       *sysrepo.Writer
	parser       descriptor.Parser
	list         RepositoryList
	repositories *RepositoryRegistry
	features     *FeatureRegistry
	logger       zerolog.Logger
}

// NewResolver creates a resolver filling repositories and features. list may be
// nil when primary repositories are not persisted.
func NewResolver(fs types.FS, writer *sysrepo.Writer, parser descriptor.Parser, list RepositoryList,
	repositories *RepositoryRegistry, features *FeatureRegistry) *Resolver {
	return &Resolver{
		fs:           fs,
		writer:       writer,
		parser:       parser,
		list:         list,
		repositories: repositories,
		features:     features,
		logger:       logging.GetLogger("registry.resolver"),
	}
}

// Repositories returns the registry of processed repositories
func (r *Resolver) Repositories() *RepositoryRegistry {
	return r.repositories
}

// Features returns the registry of discovered features
func (r *Resolver) Features() *FeatureRegistry {
	return r.features
}

// ResolveRepository processes uri once per run: it installs the descriptor into
// the system repository, parses it, recurses into nested repositories and
// registers every feature with wantsStartup. Only primary repositories are added
// to the persisted repository list. Any failure is fatal.
func (r *Resolver) ResolveRepository(uri string, isPrimary, wantsStartup bool) error {
	if uri == "" {
		return errors.New(errors.ErrInvalidInput, "empty repository reference")
	}

	entry := r.repositories.Record(uri, isPrimary)
	if entry == nil {
		r.logger.Debug().Str("repository", uri).Msg("Repository already processed")
		return nil
	}

	r.logger.Info().
		Str("repository", uri).
		Bool("primary", isPrimary).
		Bool("startup", wantsStartup).
		Msg("Resolving repository")

	if isPrimary && r.list != nil {
		if _, err := r.list.AddRepository(uri); err != nil {
			return err
		}
	}

	installed, err := r.writer.Install(uri)
	if err != nil {
		return err
	}
	entry.Installed = installed

	data, err := r.fs.ReadFile(installed.Path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read repository %s", uri).
			WithDetail("path", installed.Path)
	}

	repo, err := r.parser.Parse(uri, bytes.NewReader(data))
	if err != nil {
		return err
	}
	entry.Repository = repo

	for _, nested := range repo.Repositories {
		if err := r.ResolveRepository(nested, false, wantsStartup); err != nil {
			return err
		}
	}

	for _, feature := range repo.Features {
		r.features.Register(feature, wantsStartup)
	}

	r.logger.Debug().
		Str("repository", uri).
		Int("features", len(repo.Features)).
		Int("nested", len(repo.Repositories)).
		Msg("Repository resolved")
	return nil
}
