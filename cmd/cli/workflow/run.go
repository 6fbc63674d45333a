package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/temirov/pathext/internal/manipulate"
	pathutils "github.com/temirov/pathext/internal/utils/path"
	"github.com/temirov/pathext/internal/workflow"
)

const (
	commandUseConstant                     = "workflow [plan] <path>..."
	commandShortDescriptionConstant        = "Apply a plan of path operations to every path"
	commandLongDescriptionConstant         = "workflow reads a YAML or JSON plan listing path operations and applies them in order to each path argument. Every path is reported, including those a step rejected."
	commandExampleConstant                 = "pathext workflow release.yaml build/app.tar.gz build/lib.tar.gz"
	planFlagNameConstant                   = "plan"
	planFlagDescriptionConstant            = "Workflow plan file; when set, every positional argument is a path"
	reportOperationNameConstant            = "workflow"
	planPathRequiredMessageConstant        = "workflow plan path required; provide a positional argument, the --plan flag or workflow.plan configuration"
	loadConfigurationErrorTemplateConstant = "unable to load workflow plan: %w"
	buildOperationsErrorTemplateConstant   = "unable to build workflow operations: %w"
)

// ErrPlanPathRequired reports an invocation that did not name a plan.
var ErrPlanPathRequired = errors.New(planPathRequiredMessageConstant)

// CommandBuilder assembles the workflow command.
type CommandBuilder struct {
	LoggerProvider            manipulate.LoggerProvider
	FileSystem                afero.Fs
	HomeExpander              *pathutils.HomeExpander
	ConfigurationProvider     func() CommandConfiguration
	PathConfigurationProvider func() manipulate.CommandConfiguration
}

// Build constructs the workflow command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE:    builder.run,
	}

	command.Flags().String(planFlagNameConstant, "", planFlagDescriptionConstant)
	manipulate.BindPathArgumentFlags(command)
	manipulate.BindDeduplicateFlag(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandConfiguration := builder.resolveConfiguration()

	planPath := commandConfiguration.Plan
	if command.Flags().Changed(planFlagNameConstant) {
		flagValue, _ := command.Flags().GetString(planFlagNameConstant)
		planPath = strings.TrimSpace(flagValue)
	}

	pathArguments := arguments
	if len(planPath) == 0 && len(arguments) > 0 {
		planPath = strings.TrimSpace(arguments[0])
		pathArguments = arguments[1:]
	}
	if len(planPath) == 0 {
		return ErrPlanPathRequired
	}

	pathConfiguration := manipulate.DefaultCommandConfiguration()
	if builder.PathConfigurationProvider != nil {
		pathConfiguration = builder.PathConfigurationProvider()
	}
	environment, environmentError := manipulate.ResolveEnvironment(command, pathConfiguration, builder.LoggerProvider)
	if environmentError != nil {
		return environmentError
	}

	paths := environment.Sanitizer.Sanitize(pathArguments)
	if len(paths) == 0 {
		return manipulate.ErrMissingPath
	}

	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}

	plan, loadError := workflow.LoadConfiguration(fileSystem, homeExpander.Expand(planPath))
	if loadError != nil {
		return fmt.Errorf(loadConfigurationErrorTemplateConstant, loadError)
	}

	operations, operationsError := workflow.BuildOperations(plan)
	if operationsError != nil {
		return fmt.Errorf(buildOperationsErrorTemplateConstant, operationsError)
	}

	executor := workflow.NewExecutor(operations, workflow.Dependencies{Logger: environment.Logger})
	results, applyError := executor.Apply(command.Context(), paths)

	transformations := manipulate.BuildTransformationReport(results, reportOperationNameConstant, planPath)
	if renderError := environment.Renderer.Render(transformations); renderError != nil {
		return renderError
	}
	if applyError == nil {
		return nil
	}
	if summaryError := manipulate.FailureSummary(transformations, len(paths)); summaryError != nil {
		return summaryError
	}
	return applyError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}
