package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	configurationLoadErrorTemplateConstant            = "failed to load workflow configuration: %w"
	configurationParseErrorTemplateConstant           = "failed to parse workflow configuration: %w"
	configurationPathRequiredMessageConstant          = "workflow configuration path must be provided"
	configurationEmptyStepsMessageConstant            = "workflow configuration must define at least one step"
	configurationOperationMissingTemplateConstant     = "workflow step %d missing operation name"
	configurationToolNameRequiredMessageConstant      = "workflow tool names must be non-empty"
	configurationDuplicateToolNameTemplateConstant    = "workflow configuration defines tool %q more than once"
	configurationToolOperationMissingTemplateConstant = "workflow tool %s missing operation name"
	configurationUnknownToolTemplateConstant          = "workflow step %d references unknown tool %q"
	configurationToolReferenceTypeTemplateConstant    = "workflow step %d tool reference must be a string"
	configurationToolConflictTemplateConstant         = "workflow step %d operation %s conflicts with tool %q operation %s"
	optionToolReferenceKeyConstant                    = "tool"
)

// ErrEmptyPlan reports a workflow configuration without steps.
var ErrEmptyPlan = errors.New(configurationEmptyStepsMessageConstant)

// OperationType identifies supported workflow operations.
type OperationType string

// Supported workflow operations.
const (
	OperationTypeWithStem    OperationType = OperationType("with-stem")
	OperationTypePrependStem OperationType = OperationType("prepend-stem")
	OperationTypeAppendStem  OperationType = OperationType("append-stem")
	OperationTypeWithParent  OperationType = OperationType("with-parent")
	OperationTypePushParent  OperationType = OperationType("push-parent")
	OperationTypePopParent   OperationType = OperationType("pop-parent")
	OperationTypePushSuffix  OperationType = OperationType("push-suffix")
	OperationTypePopSuffix   OperationType = OperationType("pop-suffix")
	OperationTypeWithName    OperationType = OperationType("with-name")
	OperationTypeWithSuffix  OperationType = OperationType("with-suffix")
)

// NormalizeOperationType folds snake, camel and kebab spellings onto the kebab form.
func NormalizeOperationType(rawOperation string) OperationType {
	trimmedOperation := strings.TrimSpace(rawOperation)
	if len(trimmedOperation) == 0 {
		return ""
	}
	return OperationType(strcase.ToKebab(trimmedOperation))
}

// Configuration describes the ordered workflow steps and reusable tool definitions loaded from YAML or JSON.
type Configuration struct {
	Tools []NamedToolConfiguration `yaml:"tools" json:"tools"`
	Steps []StepConfiguration      `yaml:"steps" json:"steps"`

	toolLookup map[string]ToolConfiguration
}

// NamedToolConfiguration captures a reusable operation definition along with its canonical reference name.
type NamedToolConfiguration struct {
	Name              string `yaml:"name" json:"name"`
	ToolConfiguration `yaml:",inline" json:",inline"`
}

// StepConfiguration associates an operation type with declarative options.
// A step may reference a named tool through the "tool" option instead of naming an operation.
type StepConfiguration struct {
	Operation OperationType  `yaml:"operation" json:"operation"`
	Options   map[string]any `yaml:"with" json:"with"`
}

// ToolConfiguration describes reusable workflow options for a specific operation type.
type ToolConfiguration struct {
	Operation OperationType  `yaml:"operation" json:"operation"`
	Options   map[string]any `yaml:"with" json:"with"`
}

// LoadConfiguration reads the workflow definition from fileSystem and performs basic validation.
func LoadConfiguration(fileSystem afero.Fs, filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}

	contentBytes, readError := afero.ReadFile(fileSystem, trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes a YAML or JSON workflow document. The steps may sit at the
// top level or below a "workflow" key.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	unmarshalError := yaml.Unmarshal(contentBytes, &configuration)
	if unmarshalError != nil || configuration.isEmpty() {
		var wrapper struct {
			Workflow Configuration `yaml:"workflow" json:"workflow"`
		}
		nestedError := yaml.Unmarshal(contentBytes, &wrapper)
		switch {
		case nestedError == nil && !wrapper.Workflow.isEmpty():
			configuration = wrapper.Workflow
		case unmarshalError != nil:
			return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
		}
	}

	toolLookup, toolsError := buildToolLookup(configuration.Tools)
	if toolsError != nil {
		return Configuration{}, toolsError
	}
	configuration.toolLookup = toolLookup

	if len(configuration.Steps) == 0 {
		return Configuration{}, ErrEmptyPlan
	}

	for stepIndex := range configuration.Steps {
		normalizedOperation := NormalizeOperationType(string(configuration.Steps[stepIndex].Operation))
		if len(normalizedOperation) == 0 && !stepIncludesToolReference(configuration.Steps[stepIndex].Options) {
			return Configuration{}, fmt.Errorf(configurationOperationMissingTemplateConstant, stepIndex+1)
		}
		configuration.Steps[stepIndex].Operation = normalizedOperation
	}

	return configuration, nil
}

func (configuration Configuration) isEmpty() bool {
	return len(configuration.Tools) == 0 && len(configuration.Steps) == 0
}

// resolveStep expands a tool reference into the tool's operation and options,
// letting the step's own options override the tool's.
func (configuration Configuration) resolveStep(stepIndex int) (ToolConfiguration, error) {
	step := configuration.Steps[stepIndex]

	toolName, referencesTool, referenceError := toolReference(stepIndex, step.Options)
	if referenceError != nil {
		return ToolConfiguration{}, referenceError
	}
	if !referencesTool {
		return ToolConfiguration{Operation: NormalizeOperationType(string(step.Operation)), Options: step.Options}, nil
	}

	tool, toolExists := configuration.toolLookup[toolName]
	if !toolExists {
		return ToolConfiguration{}, fmt.Errorf(configurationUnknownToolTemplateConstant, stepIndex+1, toolName)
	}
	stepOperation := NormalizeOperationType(string(step.Operation))
	if len(stepOperation) > 0 && stepOperation != tool.Operation {
		return ToolConfiguration{}, fmt.Errorf(configurationToolConflictTemplateConstant, stepIndex+1, stepOperation, toolName, tool.Operation)
	}

	mergedOptions := make(map[string]any, len(tool.Options)+len(step.Options))
	for optionKey, optionValue := range tool.Options {
		mergedOptions[optionKey] = optionValue
	}
	for optionKey, optionValue := range step.Options {
		if isToolReferenceKey(optionKey) {
			continue
		}
		mergedOptions[optionKey] = optionValue
	}

	return ToolConfiguration{Operation: tool.Operation, Options: mergedOptions}, nil
}

func buildToolLookup(tools []NamedToolConfiguration) (map[string]ToolConfiguration, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	lookup := make(map[string]ToolConfiguration, len(tools))
	for toolIndex := range tools {
		trimmedName := strings.TrimSpace(tools[toolIndex].Name)
		if len(trimmedName) == 0 {
			return nil, errors.New(configurationToolNameRequiredMessageConstant)
		}
		if _, exists := lookup[trimmedName]; exists {
			return nil, fmt.Errorf(configurationDuplicateToolNameTemplateConstant, trimmedName)
		}
		normalizedOperation := NormalizeOperationType(string(tools[toolIndex].Operation))
		if len(normalizedOperation) == 0 {
			return nil, fmt.Errorf(configurationToolOperationMissingTemplateConstant, trimmedName)
		}
		tools[toolIndex].Name = trimmedName
		tools[toolIndex].Operation = normalizedOperation
		lookup[trimmedName] = ToolConfiguration{
			Operation: normalizedOperation,
			Options:   tools[toolIndex].Options,
		}
	}

	return lookup, nil
}

func toolReference(stepIndex int, options map[string]any) (string, bool, error) {
	for rawKey, rawValue := range options {
		if !isToolReferenceKey(rawKey) {
			continue
		}
		toolName, isString := rawValue.(string)
		if !isString {
			return "", false, fmt.Errorf(configurationToolReferenceTypeTemplateConstant, stepIndex+1)
		}
		return strings.TrimSpace(toolName), true, nil
	}
	return "", false, nil
}

func stepIncludesToolReference(options map[string]any) bool {
	for rawKey := range options {
		if isToolReferenceKey(rawKey) {
			return true
		}
	}
	return false
}

func isToolReferenceKey(rawKey string) bool {
	return strings.EqualFold(strings.TrimSpace(rawKey), optionToolReferenceKeyConstant)
}
