package manipulate

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathext/internal/pathvalue"
	"github.com/temirov/pathext/internal/report"
	"github.com/temirov/pathext/internal/utils"
	flagutils "github.com/temirov/pathext/internal/utils/flags"
	pathutils "github.com/temirov/pathext/internal/utils/path"
)

const (
	expandHomeFlagNameConstant         = "expand-home"
	expandHomeFlagDescriptionConstant  = "Expand a leading ~ to the home directory"
	deduplicateFlagNameConstant        = "deduplicate"
	deduplicateFlagDescriptionConstant = "Drop paths structurally equal to an earlier argument"
	flavorResolutionTemplateConstant   = "unable to resolve path flavor: %w"
	outputResolutionTemplateConstant   = "unable to resolve output format: %w"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// Environment bundles the collaborators a path command needs for one invocation.
type Environment struct {
	Flavor    *pathvalue.Flavor
	Format    report.Format
	Renderer  *report.Renderer
	Sanitizer *pathutils.PathArgumentSanitizer
	Logger    *zap.Logger
}

// BindPathArgumentFlags registers the flags that shape path argument sanitization.
func BindPathArgumentFlags(command *cobra.Command) {
	if command == nil {
		return
	}
	flagutils.AddToggleFlag(command.Flags(), nil, expandHomeFlagNameConstant, DefaultCommandConfiguration().ExpandHome, expandHomeFlagDescriptionConstant)
}

// ResolveEnvironment combines the root command context, the command flags and
// configuration into an Environment. Context values set by the root command win
// over configuration values.
func ResolveEnvironment(command *cobra.Command, configuration CommandConfiguration, loggerProvider LoggerProvider) (Environment, error) {
	sanitizedConfiguration := configuration.Sanitize()
	contextAccessor := utils.NewCommandContextAccessor()

	flavor, flavorAvailable := contextAccessor.PathFlavor(command.Context())
	if !flavorAvailable {
		resolvedFlavor, flavorError := pathvalue.FlavorByName(sanitizedConfiguration.Flavor)
		if flavorError != nil {
			return Environment{}, fmt.Errorf(flavorResolutionTemplateConstant, flavorError)
		}
		flavor = resolvedFlavor
	}

	outputName := sanitizedConfiguration.Output
	if outputFromContext, outputAvailable := contextAccessor.OutputFormat(command.Context()); outputAvailable {
		outputName = outputFromContext
	}
	format, formatError := report.ParseFormat(outputName)
	if formatError != nil {
		return Environment{}, fmt.Errorf(outputResolutionTemplateConstant, formatError)
	}

	sanitizer := pathutils.NewPathArgumentSanitizer(nil, pathutils.PathArgumentSanitizerConfiguration{
		Flavor:      flavor,
		ExpandHome:  resolveToggle(command, expandHomeFlagNameConstant, sanitizedConfiguration.ExpandHome),
		Deduplicate: resolveToggle(command, deduplicateFlagNameConstant, sanitizedConfiguration.Deduplicate),
	})

	return Environment{
		Flavor:    flavor,
		Format:    format,
		Renderer:  report.NewRenderer(utils.NewFlushingWriter(command.OutOrStdout()), format),
		Sanitizer: sanitizer,
		Logger:    resolveLogger(loggerProvider),
	}, nil
}

// BindDeduplicateFlag registers the flag that removes structurally equal path arguments.
func BindDeduplicateFlag(command *cobra.Command) {
	if command == nil {
		return
	}
	flagutils.AddToggleFlag(command.Flags(), nil, deduplicateFlagNameConstant, DefaultCommandConfiguration().Deduplicate, deduplicateFlagDescriptionConstant)
}

func resolveToggle(command *cobra.Command, flagName string, configuredValue bool) bool {
	flag := command.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return configuredValue
	}
	flagValue, flagError := command.Flags().GetBool(flagName)
	if flagError != nil {
		return configuredValue
	}
	return flagValue
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
