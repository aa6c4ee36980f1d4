package kassemble

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/assembly"
	"github.com/arthur-debert/kassemble/pkg/config"
	"github.com/arthur-debert/kassemble/pkg/display"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/filesystem"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/paths"
	"github.com/arthur-debert/kassemble/pkg/registry"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/spf13/cobra"
)

type assembleOptions struct {
	workDir           string
	systemDir         string
	report            string
	format            string
	policy            string
	startLevel        int
	respectDependency bool

	startup      []string
	boot         []string
	installed    []string
	inputs       []string
	repositories []string
}

func newAssembleCmd(configFile *string) *cobra.Command {
	opts := &assembleOptions{}

	cmd := &cobra.Command{
		Use:     "assemble",
		Short:   MsgAssembleShort,
		Long:    MsgAssembleLong,
		Example: MsgAssembleExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd, *configFile, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.workDir, "work-dir", "w", "", MsgFlagWorkDir)
	flags.StringVar(&opts.systemDir, "system-dir", "", MsgFlagSystemDir)
	flags.StringArrayVarP(&opts.startup, "startup-feature", "s", nil, MsgFlagStartupFeature)
	flags.StringArrayVarP(&opts.boot, "boot-feature", "b", nil, MsgFlagBootFeature)
	flags.StringArrayVar(&opts.installed, "installed-feature", nil, MsgFlagInstalledFeature)
	flags.StringArrayVarP(&opts.inputs, "input", "i", nil, MsgFlagInput)
	flags.StringArrayVarP(&opts.repositories, "maven-repository", "m", nil, MsgFlagMavenRepository)
	flags.StringVarP(&opts.report, "report", "r", "", MsgFlagReport)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	flags.IntVar(&opts.startLevel, "default-start-level", config.DefaultStartLevel, MsgFlagStartLevel)
	flags.StringVar(&opts.policy, "policy", string(registry.PolicyLastWriteWins), MsgFlagPolicy)
	flags.BoolVar(&opts.respectDependency, "respect-dependency-flag", false, MsgFlagRespectDependency)

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(display.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("policy", cobra.FixedCompletions(registry.PolicyNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// overrides returns the configuration keys set by flags the user passed
func (o *assembleOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	values := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("work-dir") {
		values["work_dir"] = o.workDir
	}
	if flags.Changed("system-dir") {
		values["system_dir"] = o.systemDir
	}
	if flags.Changed("default-start-level") {
		values["default_start_level"] = o.startLevel
	}
	if flags.Changed("policy") {
		values["registry_policy"] = o.policy
	}
	if flags.Changed("respect-dependency-flag") {
		values["ignore_dependency_flag"] = !o.respectDependency
	}
	return values
}

func runAssemble(cmd *cobra.Command, configFile string, opts *assembleOptions) error {
	logger := logging.GetLogger("cmd.assemble")

	format, err := display.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		WorkingDir: cwd,
		Overrides:  opts.overrides(cmd),
	})
	if err != nil {
		return err
	}
	cfg.Features.Startup = append(cfg.Features.Startup, opts.startup...)
	cfg.Features.Boot = append(cfg.Features.Boot, opts.boot...)
	cfg.Features.Installed = append(cfg.Features.Installed, opts.installed...)
	cfg.Maven.Repositories = append(cfg.Maven.Repositories, opts.repositories...)

	p, err := paths.New(cfg, cwd)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(p, cfg.Inputs, opts.inputs)
	if err != nil {
		return err
	}

	fs := filesystem.NewOS()
	locator := maven.NewLocalLocator(fs, p.MavenRepositories())
	policy, err := registry.ParsePolicy(cfg.RegistryPolicy)
	if err != nil {
		return err
	}

	a, err := assembly.New(fs, locator, assembly.Options{
		SystemDir:            p.SystemDir(),
		ResourceDir:          p.ResourceDir(),
		StartupManifest:      p.StartupManifest(),
		FeaturesCfg:          p.FeaturesCfg(),
		DefaultStartLevel:    cfg.DefaultStartLevel,
		IgnoreDependencyFlag: cfg.IgnoreDependencyFlag,
		Policy:               policy,
		StartupFeatures:      cfg.Features.Startup,
		BootFeatures:         cfg.Features.Boot,
		InstalledFeatures:    cfg.Features.Installed,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("workDir", p.WorkDir()).Int("inputs", len(inputs)).Msg("Starting assembly")
	report, err := a.Run(inputs)
	if err != nil {
		return err
	}
	logger.Info().Int("features", len(report.Features)).Int("copied", report.Copied()).Msg("Assembly finished")

	if opts.report != "" {
		reportPath, err := p.NormalizePath(opts.report)
		if err != nil {
			return err
		}
		if err := writeReport(fs, reportPath, report); err != nil {
			return err
		}
		logger.Info().Str("path", reportPath).Msg("Report written")
	}

	out := cmd.OutOrStdout()
	renderer, err := display.NewRenderer(out, format.Resolve(out))
	if err != nil {
		return err
	}
	return renderer.Render(report)
}

// collectInputs combines configured inputs with the --input values
func collectInputs(p paths.Paths, configured []types.InputArtifact, specs []string) ([]types.InputArtifact, error) {
	var inputs []types.InputArtifact
	for _, input := range configured {
		if input.File != "" {
			file, err := p.NormalizePath(input.File)
			if err != nil {
				return nil, err
			}
			input.File = file
		}
		inputs = append(inputs, input)
	}
	for _, spec := range specs {
		input, err := parseInput(spec)
		if err != nil {
			return nil, err
		}
		if input.File != "" {
			if input.File, err = p.NormalizePath(input.File); err != nil {
				return nil, err
			}
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func writeReport(fs types.FS, path string, report *assembly.Report) error {
	var buf bytes.Buffer
	if err := report.WriteYAML(&buf); err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path)).WithDetail("path", path)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write report %s", path).WithDetail("path", path)
	}
	return nil
}
