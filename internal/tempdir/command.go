package tempdir

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathext/internal/manipulate"
	"github.com/temirov/pathext/internal/pathvalue"
	"github.com/temirov/pathext/internal/report"
	"github.com/temirov/pathext/internal/utils"
	pathutils "github.com/temirov/pathext/internal/utils/path"
)

const (
	temporaryRootUseConstant              = "temp-root"
	temporaryRootShortDescriptionConstant = "Print the system temporary directory"
	temporaryRootLongDescriptionConstant  = "temp-root prints the platform temporary directory as reported by the operating system."

	scratchUseConstant              = "scratch [flags] -- <command> [arguments...]"
	scratchShortDescriptionConstant = "Run a command inside a throwaway directory"
	scratchLongDescriptionConstant  = "scratch creates a private temporary directory, runs the command with it as the working directory and removes the directory afterwards, whether the command succeeds, fails or is interrupted. The directory is also exported as " + ScratchDirectoryEnvironmentVariable + "."
	scratchExampleConstant          = "pathext scratch --prefix build- -- make -C \"$PWD\" test"

	prefixFlagNameConstant           = "prefix"
	prefixFlagDescriptionConstant    = "Text placed before the random part of the directory name"
	suffixFlagNameConstant           = "suffix"
	suffixFlagDescriptionConstant    = "Text placed after the random part of the directory name"
	directoryFlagNameConstant        = "dir"
	directoryFlagDescriptionConstant = "Directory in which to create the scratch directory (defaults to the system temporary directory)"

	commandExitedTemplateConstant    = "%w: %s exited with status %d"
	commandFailedMessageConstant     = "scratch command failed"
	scratchCommandStartedMessage     = "running scratch command"
	scratchCommandLogFieldDirectory  = "directory"
	scratchCommandLogFieldExecutable = "executable"
)

// ScratchDirectoryEnvironmentVariable names the variable carrying the scratch directory.
const ScratchDirectoryEnvironmentVariable = "PATHEXT_SCRATCH_DIR"

// ErrCommandFailed reports a scratch command that exited with a non-zero status.
var ErrCommandFailed = errors.New(commandFailedMessageConstant)

// TemporaryRootCommandBuilder assembles the temp-root command.
type TemporaryRootCommandBuilder struct {
	LoggerProvider        manipulate.LoggerProvider
	ConfigurationProvider func() manipulate.CommandConfiguration
	RootProvider          RootProvider
}

// Build constructs the temp-root command.
func (builder *TemporaryRootCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   temporaryRootUseConstant,
		Short: temporaryRootShortDescriptionConstant,
		Long:  temporaryRootLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *TemporaryRootCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := manipulate.DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	environment, environmentError := manipulate.ResolveEnvironment(command, configuration, builder.LoggerProvider)
	if environmentError != nil {
		return environmentError
	}

	manager := NewManager(Dependencies{Logger: environment.Logger, RootProvider: builder.RootProvider})
	return environment.Renderer.Render(report.TemporaryRootReport{Root: manager.SystemTemporaryRoot().String()})
}

// ScratchCommandBuilder assembles the scratch command.
type ScratchCommandBuilder struct {
	LoggerProvider        manipulate.LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystem            afero.Fs
	NameGenerator         NameGenerator
	RootProvider          RootProvider
	ProcessRunner         utils.ExternalProcessRunner
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the scratch command.
func (builder *ScratchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     scratchUseConstant,
		Short:   scratchShortDescriptionConstant,
		Long:    scratchLongDescriptionConstant,
		Example: scratchExampleConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE:    builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(prefixFlagNameConstant, defaults.Prefix, prefixFlagDescriptionConstant)
	command.Flags().String(suffixFlagNameConstant, defaults.Suffix, suffixFlagDescriptionConstant)
	command.Flags().String(directoryFlagNameConstant, defaults.BaseDirectory, directoryFlagDescriptionConstant)
	command.Flags().SetInterspersed(false)

	return command, nil
}

func (builder *ScratchCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)
	logger := resolveLogger(builder.LoggerProvider)

	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	options := configuration.Options()
	if len(options.BaseDirectory) > 0 {
		options.BaseDirectory = homeExpander.Expand(options.BaseDirectory)
	}

	processRunner := builder.ProcessRunner
	if processRunner == nil {
		processRunner = utils.NewOSExternalProcessRunner()
	}
	commandExecutor := utils.NewCommandExecutor(processRunner)

	manager := NewManager(Dependencies{
		FileSystem:    builder.FileSystem,
		Logger:        logger,
		NameGenerator: builder.NameGenerator,
		RootProvider:  builder.RootProvider,
	})

	executable := arguments[0]
	return manager.WithDirectory(command.Context(), options, func(executionContext context.Context, directory pathvalue.Path) error {
		logger.Debug(scratchCommandStartedMessage,
			zap.String(scratchCommandLogFieldDirectory, directory.String()),
			zap.String(scratchCommandLogFieldExecutable, executable),
		)

		result, executionError := commandExecutor.Execute(executionContext, utils.ExecutableCommand{
			Executable: executable,
			CommandOptions: utils.CommandOptions{
				Arguments:            arguments[1:],
				WorkingDirectory:     directory.String(),
				EnvironmentVariables: map[string]string{ScratchDirectoryEnvironmentVariable: directory.String()},
				StandardInput:        command.InOrStdin(),
				StandardOutput:       command.OutOrStdout(),
				StandardError:        command.ErrOrStderr(),
			},
		})
		if executionError != nil {
			return executionError
		}
		if result.ExitCode != 0 {
			return fmt.Errorf(commandExitedTemplateConstant, ErrCommandFailed, executable, result.ExitCode)
		}
		return nil
	})
}

func (builder *ScratchCommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command.Flags().Changed(prefixFlagNameConstant) {
		configuration.Prefix, _ = command.Flags().GetString(prefixFlagNameConstant)
	}
	if command.Flags().Changed(suffixFlagNameConstant) {
		configuration.Suffix, _ = command.Flags().GetString(suffixFlagNameConstant)
	}
	if command.Flags().Changed(directoryFlagNameConstant) {
		configuration.BaseDirectory, _ = command.Flags().GetString(directoryFlagNameConstant)
	}

	return configuration.Sanitize()
}

func resolveLogger(loggerProvider manipulate.LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	if logger := loggerProvider(); logger != nil {
		return logger
	}
	return zap.NewNop()
}
