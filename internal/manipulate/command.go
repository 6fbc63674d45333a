package manipulate

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/pathext/internal/report"
	"github.com/temirov/pathext/internal/workflow"
)

const (
	argumentUsageTemplateConstant        = "%s <path> <%s>"
	argumentFreeUsageTemplateConstant    = "%s <path>..."
	missingPathMessageConstant           = "at least one non-empty path argument is required"
	unknownCommandTemplateConstant       = "no command is defined for operation %s"
	transformationFailedTemplateConstant = "%w: %d of %d paths"
	transformationFailedMessageConstant  = "path transformation failed"
)

// ErrTransformationFailed reports that at least one path could not be rewritten.
var ErrTransformationFailed = errors.New(transformationFailedMessageConstant)

// ErrMissingPath reports an invocation whose path arguments were all blank.
var ErrMissingPath = errors.New(missingPathMessageConstant)

type operationCommandDefinition struct {
	operationType    workflow.OperationType
	optionKey        string
	shortDescription string
	longDescription  string
	example          string
}

var operationCommandDefinitions = []operationCommandDefinition{
	{
		operationType:    workflow.OperationTypeWithStem,
		optionKey:        "stem",
		shortDescription: "Replace the stem of a path",
		longDescription:  "with-stem replaces the name of the final component while keeping its last suffix. The stem must be non-empty and free of separators.",
		example:          "pathext with-stem /srv/logs/app.tar.gz current",
	},
	{
		operationType:    workflow.OperationTypePrependStem,
		optionKey:        "prefix",
		shortDescription: "Add text before the stem of a path",
		longDescription:  "prepend-stem inserts the prefix at the start of the final component, before the stem.",
		example:          "pathext prepend-stem reports/summary.txt draft_",
	},
	{
		operationType:    workflow.OperationTypeAppendStem,
		optionKey:        "postfix",
		shortDescription: "Add text after the stem of a path",
		longDescription:  "append-stem inserts the postfix between the stem and the last suffix of the final component.",
		example:          "pathext append-stem reports/summary.txt _v2",
	},
	{
		operationType:    workflow.OperationTypeWithParent,
		optionKey:        "parent",
		shortDescription: "Replace the directory directly above the leaf",
		longDescription:  "with-parent replaces the immediate parent of the final component. The parent may span several components; an anchored parent re-anchors the result.",
		example:          "pathext with-parent src/old/main.go new",
	},
	{
		operationType:    workflow.OperationTypePushParent,
		optionKey:        "node",
		shortDescription: "Insert a directory directly above the leaf",
		longDescription:  "push-parent inserts the node between the final component and its parent. Paths without a name are printed unchanged.",
		example:          "pathext push-parent photos/cat.jpg 2024",
	},
	{
		operationType:    workflow.OperationTypePopParent,
		shortDescription: "Remove the directory directly above the leaf",
		longDescription:  "pop-parent removes the immediate parent of the final component. Paths with fewer than two changeable nodes are printed unchanged.",
		example:          "pathext pop-parent photos/2024/cat.jpg",
	},
	{
		operationType:    workflow.OperationTypePushSuffix,
		optionKey:        "suffix",
		shortDescription: "Append a suffix to the suffix chain",
		longDescription:  "push-suffix adds a suffix after the existing ones. The suffix must start with a dot followed by text.",
		example:          "pathext push-suffix backups/site.tar .gz",
	},
	{
		operationType:    workflow.OperationTypePopSuffix,
		shortDescription: "Strip the last suffix",
		longDescription:  "pop-suffix removes the last suffix of the final component. Names without a suffix are printed unchanged.",
		example:          "pathext pop-suffix backups/site.tar.gz",
	},
	{
		operationType:    workflow.OperationTypeWithName,
		optionKey:        "name",
		shortDescription: "Replace the final component",
		longDescription:  "with-name replaces the final component with a single new component.",
		example:          "pathext with-name notes/todo.txt done.txt",
	},
	{
		operationType:    workflow.OperationTypeWithSuffix,
		optionKey:        "suffix",
		shortDescription: "Replace the last suffix",
		longDescription:  "with-suffix replaces the last suffix of the final component. An empty suffix removes it.",
		example:          "pathext with-suffix notes/todo.txt .md",
	},
}

// OperationCommandBuilder assembles one command per path operation.
type OperationCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the commands for every supported operation.
func (builder *OperationCommandBuilder) Build() ([]*cobra.Command, error) {
	commands := make([]*cobra.Command, 0, len(operationCommandDefinitions))
	for definitionIndex := range operationCommandDefinitions {
		commands = append(commands, builder.buildDefinition(operationCommandDefinitions[definitionIndex]))
	}
	return commands, nil
}

// BuildOperation constructs the command for a single operation.
func (builder *OperationCommandBuilder) BuildOperation(operationType workflow.OperationType) (*cobra.Command, error) {
	normalizedOperation := workflow.NormalizeOperationType(string(operationType))
	for definitionIndex := range operationCommandDefinitions {
		if operationCommandDefinitions[definitionIndex].operationType == normalizedOperation {
			return builder.buildDefinition(operationCommandDefinitions[definitionIndex]), nil
		}
	}
	return nil, fmt.Errorf(unknownCommandTemplateConstant, operationType)
}

func (builder *OperationCommandBuilder) buildDefinition(definition operationCommandDefinition) *cobra.Command {
	command := &cobra.Command{
		Short:   definition.shortDescription,
		Long:    definition.longDescription,
		Example: definition.example,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, definition, arguments)
		},
	}

	if len(definition.optionKey) > 0 {
		command.Use = fmt.Sprintf(argumentUsageTemplateConstant, definition.operationType, definition.optionKey)
		command.Args = cobra.ExactArgs(2)
	} else {
		command.Use = fmt.Sprintf(argumentFreeUsageTemplateConstant, definition.operationType)
		command.Args = cobra.MinimumNArgs(1)
	}

	BindPathArgumentFlags(command)
	return command
}

func (builder *OperationCommandBuilder) run(command *cobra.Command, definition operationCommandDefinition, arguments []string) error {
	environment, environmentError := ResolveEnvironment(command, builder.resolveConfiguration(), builder.LoggerProvider)
	if environmentError != nil {
		return environmentError
	}

	pathArguments := arguments
	argument := ""
	var options map[string]any
	if len(definition.optionKey) > 0 {
		pathArguments = arguments[:1]
		argument = arguments[1]
		options = map[string]any{definition.optionKey: argument}
	}

	operation, operationError := workflow.BuildOperation(definition.operationType, options)
	if operationError != nil {
		return operationError
	}

	paths := environment.Sanitizer.Sanitize(pathArguments)
	if len(paths) == 0 {
		return ErrMissingPath
	}

	executor := workflow.NewExecutor([]workflow.Operation{operation}, workflow.Dependencies{Logger: environment.Logger})
	results, applyError := executor.Apply(command.Context(), paths)

	transformations := BuildTransformationReport(results, string(definition.operationType), argument)
	if renderError := environment.Renderer.Render(transformations); renderError != nil {
		return renderError
	}
	if applyError != nil {
		return FailureSummary(transformations, len(paths))
	}
	return nil
}

func (builder *OperationCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

// BuildTransformationReport converts workflow results into a renderable report.
func BuildTransformationReport(results []workflow.Result, operation string, argument string) report.TransformationReport {
	transformations := make([]report.Transformation, 0, len(results))
	for _, result := range results {
		transformation := report.Transformation{
			Input:     result.Input.String(),
			Operation: operation,
			Argument:  argument,
		}
		if result.Error != nil {
			transformation.Error = result.Error.Error()
		} else {
			transformation.Output = result.Output.String()
		}
		transformations = append(transformations, transformation)
	}
	return report.TransformationReport{Results: transformations}
}

// FailureSummary returns ErrTransformationFailed annotated with the number of failed
// or skipped paths, or nil when every path was transformed.
func FailureSummary(transformations report.TransformationReport, pathCount int) error {
	failureCount := pathCount - len(transformations.Results)
	for _, transformation := range transformations.Results {
		if transformation.Failed() {
			failureCount++
		}
	}
	if failureCount == 0 {
		return nil
	}
	return fmt.Errorf(transformationFailedTemplateConstant, ErrTransformationFailed, failureCount, pathCount)
}
