package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	workflowcmd "github.com/temirov/pathext/cmd/cli/workflow"
	"github.com/temirov/pathext/internal/manipulate"
	"github.com/temirov/pathext/internal/pathvalue"
	"github.com/temirov/pathext/internal/report"
	"github.com/temirov/pathext/internal/tempdir"
	"github.com/temirov/pathext/internal/utils"
	flagutils "github.com/temirov/pathext/internal/utils/flags"
)

const (
	applicationNameConstant                 = "pathext"
	applicationShortDescriptionConstant     = "Rewrite file system paths by stem, parent and suffix"
	applicationLongDescriptionConstant      = "pathext parses paths with POSIX or Windows rules and rewrites their stem, parent directories and suffix chain without touching the file system. It also runs commands inside throwaway temporary directories."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	flavorFlagNameConstant                  = "flavor"
	flavorFlagUsageConstant                 = "Path grammar used to parse arguments."
	outputFlagNameConstant                  = "output"
	outputFlagUsageConstant                 = "Report encoding."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	pathsConfigurationKeyConstant           = "paths"
	tempdirConfigurationKeyConstant         = "tempdir"
	workflowConfigurationKeyConstant        = "workflow"
	environmentPrefixConstant               = "PATHEXT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFlavorFieldConstant        = "flavor"
	configurationOutputFieldConstant        = "output"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	flavorResolutionErrorTemplateConstant   = "unable to resolve path flavor: %w"
	outputResolutionErrorTemplateConstant   = "unable to resolve output format: %w"
	rootCommandInfoMessageConstant          = "pathext CLI executed"
	rootCommandDebugMessageConstant         = "pathext CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	automaticFlavorChoiceConstant           = "auto"
	posixFlavorChoiceConstant               = "posix"
	windowsFlavorChoiceConstant             = "windows"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Paths    manipulate.CommandConfiguration  `mapstructure:"paths"`
	TempDir  tempdir.CommandConfiguration     `mapstructure:"tempdir"`
	Workflow workflowcmd.CommandConfiguration `mapstructure:"workflow"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	flavorFlagValue        string
	outputFlagValue        string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultConfigurationSearchPaths(applicationNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flagutils.AddChoiceFlag(persistentFlags, &application.logLevelFlagValue, logLevelFlagNameConstant, string(utils.LogLevelInfo), utils.LogLevelNames(), logLevelFlagUsageConstant)
	flagutils.AddChoiceFlag(persistentFlags, &application.logFormatFlagValue, logFormatFlagNameConstant, string(utils.LogFormatStructured), utils.LogFormatNames(), logFormatFlagUsageConstant)
	flagutils.AddChoiceFlag(persistentFlags, &application.flavorFlagValue, flavorFlagNameConstant, automaticFlavorChoiceConstant, []string{automaticFlavorChoiceConstant, posixFlavorChoiceConstant, windowsFlavorChoiceConstant}, flavorFlagUsageConstant)
	flagutils.AddChoiceFlag(persistentFlags, &application.outputFlagValue, outputFlagNameConstant, string(report.FormatText), report.FormatNames(), outputFlagUsageConstant)

	for _, subcommand := range application.buildSubcommands() {
		cobraCommand.AddCommand(subcommand)
	}

	application.rootCommand = cobraCommand

	return application
}

func (application *Application) buildSubcommands() []*cobra.Command {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	pathConfigurationProvider := func() manipulate.CommandConfiguration {
		return application.configuration.Paths
	}

	subcommands := make([]*cobra.Command, 0)

	operationBuilder := manipulate.OperationCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: pathConfigurationProvider,
	}
	operationCommands, operationBuildError := operationBuilder.Build()
	if operationBuildError == nil {
		subcommands = append(subcommands, operationCommands...)
	}

	inspectBuilder := manipulate.InspectCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: pathConfigurationProvider,
	}
	inspectCommand, inspectBuildError := inspectBuilder.Build()
	if inspectBuildError == nil {
		subcommands = append(subcommands, inspectCommand)
	}

	workflowBuilder := workflowcmd.CommandBuilder{
		LoggerProvider:            loggerProvider,
		PathConfigurationProvider: pathConfigurationProvider,
		ConfigurationProvider: func() workflowcmd.CommandConfiguration {
			return application.configuration.Workflow
		},
	}
	workflowCommand, workflowBuildError := workflowBuilder.Build()
	if workflowBuildError == nil {
		subcommands = append(subcommands, workflowCommand)
	}

	temporaryRootBuilder := tempdir.TemporaryRootCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: pathConfigurationProvider,
	}
	temporaryRootCommand, temporaryRootBuildError := temporaryRootBuilder.Build()
	if temporaryRootBuildError == nil {
		subcommands = append(subcommands, temporaryRootCommand)
	}

	scratchBuilder := tempdir.ScratchCommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() tempdir.CommandConfiguration {
			return application.configuration.TempDir
		},
	}
	scratchCommand, scratchBuildError := scratchBuilder.Build()
	if scratchBuildError == nil {
		subcommands = append(subcommands, scratchCommand)
	}

	return subcommands
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := utils.SyncLogger(application.logger); syncError != nil {
		return errors.Join(executionError, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range manipulate.DefaultConfigurationValues(pathsConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range tempdir.DefaultConfigurationValues(tempdirConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range workflowcmd.DefaultConfigurationValues(workflowConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, flavorFlagNameConstant) {
		application.configuration.Paths.Flavor = application.flavorFlagValue
	}
	if application.persistentFlagChanged(command, outputFlagNameConstant) {
		application.configuration.Paths.Output = application.outputFlagValue
	}
	application.configuration.Paths = application.configuration.Paths.Sanitize()

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	flavor, flavorError := pathvalue.FlavorByName(application.configuration.Paths.Flavor)
	if flavorError != nil {
		return fmt.Errorf(flavorResolutionErrorTemplateConstant, flavorError)
	}
	outputFormat, outputError := report.ParseFormat(application.configuration.Paths.Output)
	if outputError != nil {
		return fmt.Errorf(outputResolutionErrorTemplateConstant, outputError)
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFlavorFieldConstant, flavor.Name()),
		zap.String(configurationOutputFieldConstant, string(outputFormat)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithPathFlavor(updatedContext, flavor)
		updatedContext = application.commandContextAccessor.WithOutputFormat(updatedContext, string(outputFormat))
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
