package workflow

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/temirov/pathext/internal/pathvalue"
)

const (
	unsupportedOperationMessageConstant      = "unsupported workflow operation"
	unsupportedOperationTemplateConstant     = "%w: %s"
	unsupportedStepOperationTemplateConstant = "workflow step %d: %w: %s"
	invalidOptionsTemplateConstant           = "workflow step %d (%s) has invalid options: %w"
	decoderConstructionTemplateConstant      = "unable to construct options decoder: %w"
)

// ErrUnsupportedOperation reports an operation name outside the supported set.
var ErrUnsupportedOperation = errors.New(unsupportedOperationMessageConstant)

// Operation rewrites a single path.
type Operation interface {
	Name() OperationType
	Apply(path pathvalue.Path) (pathvalue.Path, error)
}

// WithStemOperation replaces the stem of the path.
type WithStemOperation struct {
	Stem string `mapstructure:"stem"`
}

// Name identifies the operation.
func (operation WithStemOperation) Name() OperationType { return OperationTypeWithStem }

// Apply replaces the stem.
func (operation WithStemOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.WithStem(operation.Stem)
}

// PrependStemOperation prefixes the stem.
type PrependStemOperation struct {
	Prefix string `mapstructure:"prefix"`
}

// Name identifies the operation.
func (operation PrependStemOperation) Name() OperationType { return OperationTypePrependStem }

// Apply prefixes the stem.
func (operation PrependStemOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.PrependStem(operation.Prefix)
}

// AppendStemOperation postfixes the stem.
type AppendStemOperation struct {
	Postfix string `mapstructure:"postfix"`
}

// Name identifies the operation.
func (operation AppendStemOperation) Name() OperationType { return OperationTypeAppendStem }

// Apply postfixes the stem.
func (operation AppendStemOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.AppendStem(operation.Postfix)
}

// WithParentOperation replaces the immediate parent of the leaf.
type WithParentOperation struct {
	Parent string `mapstructure:"parent"`
}

// Name identifies the operation.
func (operation WithParentOperation) Name() OperationType { return OperationTypeWithParent }

// Apply replaces the parent.
func (operation WithParentOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.WithParent(operation.Parent)
}

// PushParentOperation inserts a node above the leaf.
type PushParentOperation struct {
	Node string `mapstructure:"node"`
}

// Name identifies the operation.
func (operation PushParentOperation) Name() OperationType { return OperationTypePushParent }

// Apply inserts the node.
func (operation PushParentOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.PushParent(operation.Node), nil
}

// PopParentOperation removes the immediate parent of the leaf.
type PopParentOperation struct{}

// Name identifies the operation.
func (operation PopParentOperation) Name() OperationType { return OperationTypePopParent }

// Apply removes the parent.
func (operation PopParentOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.PopParent(), nil
}

// PushSuffixOperation appends a suffix to the suffix chain.
type PushSuffixOperation struct {
	Suffix string `mapstructure:"suffix"`
}

// Name identifies the operation.
func (operation PushSuffixOperation) Name() OperationType { return OperationTypePushSuffix }

// Apply appends the suffix.
func (operation PushSuffixOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.PushSuffix(operation.Suffix)
}

// PopSuffixOperation strips the last suffix.
type PopSuffixOperation struct{}

// Name identifies the operation.
func (operation PopSuffixOperation) Name() OperationType { return OperationTypePopSuffix }

// Apply strips the suffix.
func (operation PopSuffixOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.PopSuffix(), nil
}

// WithNameOperation replaces the final component.
type WithNameOperation struct {
	ComponentName string `mapstructure:"name"`
}

// Name identifies the operation.
func (operation WithNameOperation) Name() OperationType { return OperationTypeWithName }

// Apply replaces the final component.
func (operation WithNameOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.WithName(operation.ComponentName)
}

// WithSuffixOperation replaces the last suffix.
type WithSuffixOperation struct {
	Suffix string `mapstructure:"suffix"`
}

// Name identifies the operation.
func (operation WithSuffixOperation) Name() OperationType { return OperationTypeWithSuffix }

// Apply replaces the suffix.
func (operation WithSuffixOperation) Apply(path pathvalue.Path) (pathvalue.Path, error) {
	return path.WithSuffix(operation.Suffix)
}

type operationFactory func(options map[string]any) (Operation, error)

var operationFactories = map[OperationType]operationFactory{
	OperationTypeWithStem:    decodeOperation[WithStemOperation],
	OperationTypePrependStem: decodeOperation[PrependStemOperation],
	OperationTypeAppendStem:  decodeOperation[AppendStemOperation],
	OperationTypeWithParent:  decodeOperation[WithParentOperation],
	OperationTypePushParent:  decodeOperation[PushParentOperation],
	OperationTypePopParent:   decodeOperation[PopParentOperation],
	OperationTypePushSuffix:  decodeOperation[PushSuffixOperation],
	OperationTypePopSuffix:   decodeOperation[PopSuffixOperation],
	OperationTypeWithName:    decodeOperation[WithNameOperation],
	OperationTypeWithSuffix:  decodeOperation[WithSuffixOperation],
}

// OperationTypes lists every supported operation.
func OperationTypes() []OperationType {
	return []OperationType{
		OperationTypeWithStem,
		OperationTypePrependStem,
		OperationTypeAppendStem,
		OperationTypeWithParent,
		OperationTypePushParent,
		OperationTypePopParent,
		OperationTypePushSuffix,
		OperationTypePopSuffix,
		OperationTypeWithName,
		OperationTypeWithSuffix,
	}
}

// BuildOperation constructs a single operation from its name and options.
// Options are decoded strictly: unknown keys and missing required keys both fail.
func BuildOperation(operationType OperationType, options map[string]any) (Operation, error) {
	factory, supported := operationFactories[NormalizeOperationType(string(operationType))]
	if !supported {
		return nil, fmt.Errorf(unsupportedOperationTemplateConstant, ErrUnsupportedOperation, operationType)
	}
	return factory(options)
}

// BuildOperations converts the declarative configuration into executable operations.
func BuildOperations(configuration Configuration) ([]Operation, error) {
	if len(configuration.Steps) == 0 {
		return nil, ErrEmptyPlan
	}
	if configuration.toolLookup == nil {
		toolLookup, toolsError := buildToolLookup(configuration.Tools)
		if toolsError != nil {
			return nil, toolsError
		}
		configuration.toolLookup = toolLookup
	}

	operations := make([]Operation, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		resolvedStep, resolveError := configuration.resolveStep(stepIndex)
		if resolveError != nil {
			return nil, resolveError
		}

		factory, supported := operationFactories[resolvedStep.Operation]
		if !supported {
			return nil, fmt.Errorf(unsupportedStepOperationTemplateConstant, stepIndex+1, ErrUnsupportedOperation, resolvedStep.Operation)
		}

		operation, buildError := factory(resolvedStep.Options)
		if buildError != nil {
			return nil, fmt.Errorf(invalidOptionsTemplateConstant, stepIndex+1, resolvedStep.Operation, buildError)
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func decodeOperation[OperationValue Operation](options map[string]any) (Operation, error) {
	var operation OperationValue
	if options == nil {
		options = map[string]any{}
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		ErrorUnset:       true,
		WeaklyTypedInput: true,
		Result:           &operation,
	})
	if decoderError != nil {
		return nil, fmt.Errorf(decoderConstructionTemplateConstant, decoderError)
	}
	if decodeError := decoder.Decode(options); decodeError != nil {
		return nil, decodeError
	}
	return operation, nil
}
