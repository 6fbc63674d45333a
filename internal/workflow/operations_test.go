package workflow_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pathext/internal/pathvalue"
	"github.com/temirov/pathext/internal/workflow"
)

func TestBuildOperationAppliesPathOperations(testInstance *testing.T) {
	testCases := []struct {
		name           string
		operationType  workflow.OperationType
		options        map[string]any
		input          string
		expectedOutput string
	}{
		{name: "with_stem", operationType: workflow.OperationTypeWithStem, options: map[string]any{"stem": "d"}, input: "/a/b.tar.gz", expectedOutput: "/a/d.gz"},
		{name: "prepend_stem", operationType: workflow.OperationTypePrependStem, options: map[string]any{"prefix": "x_"}, input: "a/b.txt", expectedOutput: "a/x_b.txt"},
		{name: "append_stem", operationType: workflow.OperationTypeAppendStem, options: map[string]any{"postfix": "_v2"}, input: "a/b.txt", expectedOutput: "a/b_v2.txt"},
		{name: "with_parent", operationType: workflow.OperationTypeWithParent, options: map[string]any{"parent": "z"}, input: "a/b/c", expectedOutput: "a/z/c"},
		{name: "push_parent", operationType: workflow.OperationTypePushParent, options: map[string]any{"node": "d"}, input: "a/b", expectedOutput: "a/d/b"},
		{name: "pop_parent", operationType: workflow.OperationTypePopParent, input: "a/b", expectedOutput: "b"},
		{name: "push_suffix", operationType: workflow.OperationTypePushSuffix, options: map[string]any{"suffix": ".gz"}, input: "a/b.tar", expectedOutput: "a/b.tar.gz"},
		{name: "pop_suffix", operationType: workflow.OperationTypePopSuffix, input: "a/b.tar.gz", expectedOutput: "a/b.tar"},
		{name: "with_name", operationType: workflow.OperationTypeWithName, options: map[string]any{"name": "c.md"}, input: "a/b.txt", expectedOutput: "a/c.md"},
		{name: "with_suffix", operationType: workflow.OperationTypeWithSuffix, options: map[string]any{"suffix": ".md"}, input: "a/b.txt", expectedOutput: "a/b.md"},
		{name: "weakly_typed_stem", operationType: workflow.OperationTypeWithStem, options: map[string]any{"stem": 2024}, input: "a/b.txt", expectedOutput: "a/2024.txt"},
		{name: "case_insensitive_key", operationType: workflow.OperationTypeWithStem, options: map[string]any{"Stem": "d"}, input: "a/b.txt", expectedOutput: "a/d.txt"},
		{name: "snake_case_name", operationType: workflow.OperationType("push_parent"), options: map[string]any{"node": "d"}, input: "a/b", expectedOutput: "a/d/b"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			operation, buildError := workflow.BuildOperation(testCase.operationType, testCase.options)
			require.NoError(testInstance, buildError)
			require.Equal(testInstance, workflow.NormalizeOperationType(string(testCase.operationType)), operation.Name())

			output, applyError := operation.Apply(pathvalue.Posix.Parse(testCase.input))
			require.NoError(testInstance, applyError)
			require.Equal(testInstance, testCase.expectedOutput, output.String())
		})
	}
}

func TestBuildOperationRejectsInvalidOptions(testInstance *testing.T) {
	testCases := []struct {
		name          string
		operationType workflow.OperationType
		options       map[string]any
	}{
		{name: "missing_required_option", operationType: workflow.OperationTypeWithStem, options: nil},
		{name: "wrong_required_option", operationType: workflow.OperationTypePushParent, options: map[string]any{"parent": "x"}},
		{name: "unknown_extra_option", operationType: workflow.OperationTypeWithSuffix, options: map[string]any{"suffix": ".md", "colour": "red"}},
		{name: "options_on_option_free_operation", operationType: workflow.OperationTypePopSuffix, options: map[string]any{"suffix": ".md"}},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, buildError := workflow.BuildOperation(testCase.operationType, testCase.options)
			require.Error(testInstance, buildError)
		})
	}
}

func TestBuildOperationRejectsUnknownOperation(testInstance *testing.T) {
	_, buildError := workflow.BuildOperation(workflow.OperationType("rename"), nil)
	require.ErrorIs(testInstance, buildError, workflow.ErrUnsupportedOperation)
}

func TestOperationTypesAreAllBuildable(testInstance *testing.T) {
	sampleOptions := map[workflow.OperationType]map[string]any{
		workflow.OperationTypeWithStem:    {"stem": "s"},
		workflow.OperationTypePrependStem: {"prefix": "p"},
		workflow.OperationTypeAppendStem:  {"postfix": "p"},
		workflow.OperationTypeWithParent:  {"parent": "p"},
		workflow.OperationTypePushParent:  {"node": "n"},
		workflow.OperationTypePushSuffix:  {"suffix": ".s"},
		workflow.OperationTypeWithName:    {"name": "n"},
		workflow.OperationTypeWithSuffix:  {"suffix": ".s"},
	}

	for _, operationType := range workflow.OperationTypes() {
		operation, buildError := workflow.BuildOperation(operationType, sampleOptions[operationType])
		require.NoError(testInstance, buildError, string(operationType))
		require.Equal(testInstance, operationType, operation.Name())
	}
}

func TestBuildOperationsReportsStepFailures(testInstance *testing.T) {
	testCases := []struct {
		name            string
		configuration   workflow.Configuration
		expectedMessage string
	}{
		{
			name:            "no_steps",
			configuration:   workflow.Configuration{},
			expectedMessage: "at least one step",
		},
		{
			name: "unknown_operation",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{{Operation: "pop-suffix"}, {Operation: "rename"}},
			},
			expectedMessage: "workflow step 2: unsupported workflow operation: rename",
		},
		{
			name: "missing_operation",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{{}},
			},
			expectedMessage: "unsupported workflow operation",
		},
		{
			name: "bad_options",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{{Operation: "with-stem", Options: map[string]any{"stm": "x"}}},
			},
			expectedMessage: "workflow step 1 (with-stem) has invalid options",
		},
		{
			name: "unknown_tool",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{{Options: map[string]any{"tool": "missing"}}},
			},
			expectedMessage: "references unknown tool \"missing\"",
		},
		{
			name: "non_string_tool_reference",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{{Options: map[string]any{"tool": 7}}},
			},
			expectedMessage: "tool reference must be a string",
		},
		{
			name: "conflicting_tool_operation",
			configuration: workflow.Configuration{
				Tools: []workflow.NamedToolConfiguration{
					{Name: "strip", ToolConfiguration: workflow.ToolConfiguration{Operation: "pop-suffix"}},
				},
				Steps: []workflow.StepConfiguration{{Operation: "pop-parent", Options: map[string]any{"tool": "strip"}}},
			},
			expectedMessage: "conflicts with tool \"strip\"",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, buildError := workflow.BuildOperations(testCase.configuration)
			require.Error(testInstance, buildError)
			require.ErrorContains(testInstance, buildError, testCase.expectedMessage)
		})
	}
}

func TestBuildOperationsStepOptionsOverrideTool(testInstance *testing.T) {
	configuration := workflow.Configuration{
		Tools: []workflow.NamedToolConfiguration{
			{Name: "compress", ToolConfiguration: workflow.ToolConfiguration{Operation: "PushSuffix", Options: map[string]any{"suffix": ".gz"}}},
		},
		Steps: []workflow.StepConfiguration{
			{Options: map[string]any{"tool": "compress"}},
			{Operation: "push-suffix", Options: map[string]any{"tool": "compress", "suffix": ".xz"}},
		},
	}

	operations, buildError := workflow.BuildOperations(configuration)
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, []workflow.Operation{
		workflow.PushSuffixOperation{Suffix: ".gz"},
		workflow.PushSuffixOperation{Suffix: ".xz"},
	}, operations)
}
