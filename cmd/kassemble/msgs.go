package kassemble

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Assemble a Karaf system repository from kars and feature repositories"
	MsgAssembleShort   = "Install kars and feature repositories into an assembly"
	MsgGenConfigShort  = "Print the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose           = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig            = "Configuration file (default ./kassemble.toml when present)"
	MsgFlagWorkDir           = "Directory the assembly is built in"
	MsgFlagSystemDir         = "System repository directory (default <work-dir>/system)"
	MsgFlagStartupFeature    = "Feature name or pattern to install as startup feature (repeatable)"
	MsgFlagBootFeature       = "Feature name or pattern to append to featuresBoot (repeatable)"
	MsgFlagInstalledFeature  = "Feature name or pattern to install into the system repository (repeatable)"
	MsgFlagInput             = "Input artifact as location or file, optionally suffixed with @scope (repeatable)"
	MsgFlagMavenRepository   = "Local maven repository searched for artifacts (repeatable)"
	MsgFlagReport            = "Write the YAML run report to this file"
	MsgFlagFormat            = "Output format: auto, term, text or yaml"
	MsgFlagStartLevel        = "Start level of bundles that declare none"
	MsgFlagPolicy            = "Registry policy for repeated features: last-write-wins or any-startup"
	MsgFlagRespectDependency = "Skip bundles flagged as dependency"
	MsgFlagWrite             = "Write the configuration to ./kassemble.toml instead of stdout"

	// Status messages
	MsgReportWritten = "Report written to %s\n"
	MsgConfigWritten = "Configuration written to %s\n"
	MsgVersionFormat = "kassemble version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrInvalidInput = "invalid input %q: %w"
	MsgErrConfigExists = "%s already exists"
	MsgErrNoCommand    = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/assemble-long.txt
	msgAssembleLongRaw string
	MsgAssembleLong    = strings.TrimSpace(msgAssembleLongRaw)

	//go:embed msgs/assemble-example.txt
	msgAssembleExampleRaw string
	MsgAssembleExample    = strings.TrimRight(msgAssembleExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
