package workflow_test

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/pathext/internal/workflow"
)

const (
	subtestNameTemplateConstant   = "%d_%s"
	configurationTestFilePath     = "/plans/workflow.yaml"
	topLevelWorkflowConfiguration = `tools:
  - name: archive
    operation: push_suffix
    with:
      suffix: .gz
steps:
  - operation: withStem
    with:
      stem: report
  - with:
      tool: archive
`
	wrappedWorkflowConfiguration = `workflow:
  steps:
    - operation: PopParent
`
	jsonWorkflowConfiguration     = `{"steps": [{"operation": "with-suffix", "with": {"suffix": ".md"}}]}`
	anchoredWorkflowConfiguration = `defaults: &stem_defaults
  stem: shared
steps:
  - operation: with-stem
    with: *stem_defaults
`
)

func TestNormalizeOperationType(testInstance *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected workflow.OperationType
	}{
		{name: "kebab", raw: "with-stem", expected: workflow.OperationTypeWithStem},
		{name: "snake", raw: "with_stem", expected: workflow.OperationTypeWithStem},
		{name: "camel", raw: "withStem", expected: workflow.OperationTypeWithStem},
		{name: "pascal", raw: "PushSuffix", expected: workflow.OperationTypePushSuffix},
		{name: "screaming", raw: "POP_PARENT", expected: workflow.OperationTypePopParent},
		{name: "padded", raw: "  pop-suffix ", expected: workflow.OperationTypePopSuffix},
		{name: "blank", raw: "   ", expected: ""},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, workflow.NormalizeOperationType(testCase.raw))
		})
	}
}

func TestLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name               string
		contents           string
		expectedOperations []workflow.OperationType
	}{
		{
			name:               "top_level_steps_with_tool",
			contents:           topLevelWorkflowConfiguration,
			expectedOperations: []workflow.OperationType{workflow.OperationTypeWithStem, ""},
		},
		{
			name:               "workflow_wrapper",
			contents:           wrappedWorkflowConfiguration,
			expectedOperations: []workflow.OperationType{workflow.OperationTypePopParent},
		},
		{
			name:               "json_document",
			contents:           jsonWorkflowConfiguration,
			expectedOperations: []workflow.OperationType{workflow.OperationTypeWithSuffix},
		},
		{
			name:               "yaml_anchor",
			contents:           anchoredWorkflowConfiguration,
			expectedOperations: []workflow.OperationType{workflow.OperationTypeWithStem},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			fileSystem := afero.NewMemMapFs()
			require.NoError(testInstance, afero.WriteFile(fileSystem, configurationTestFilePath, []byte(testCase.contents), 0o644))

			configuration, loadError := workflow.LoadConfiguration(fileSystem, configurationTestFilePath)
			require.NoError(testInstance, loadError)
			require.Len(testInstance, configuration.Steps, len(testCase.expectedOperations))
			for stepIndex, expectedOperation := range testCase.expectedOperations {
				require.Equal(testInstance, expectedOperation, configuration.Steps[stepIndex].Operation)
			}

			operations, buildError := workflow.BuildOperations(configuration)
			require.NoError(testInstance, buildError)
			require.Len(testInstance, operations, len(testCase.expectedOperations))
		})
	}
}

func TestLoadConfigurationResolvesTools(testInstance *testing.T) {
	configuration, parseError := workflow.ParseConfiguration([]byte(topLevelWorkflowConfiguration))
	require.NoError(testInstance, parseError)
	require.Len(testInstance, configuration.Tools, 1)
	require.Equal(testInstance, workflow.OperationTypePushSuffix, configuration.Tools[0].Operation)

	operations, buildError := workflow.BuildOperations(configuration)
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, workflow.WithStemOperation{Stem: "report"}, operations[0])
	require.Equal(testInstance, workflow.PushSuffixOperation{Suffix: ".gz"}, operations[1])
}

func TestLoadConfigurationFailures(testInstance *testing.T) {
	testCases := []struct {
		name            string
		contents        string
		expectedMessage string
	}{
		{name: "empty_document", contents: "", expectedMessage: "at least one step"},
		{name: "empty_steps", contents: "steps: []\n", expectedMessage: "at least one step"},
		{name: "malformed_yaml", contents: "steps: [\n", expectedMessage: "failed to parse workflow configuration"},
		{name: "missing_operation", contents: "steps:\n  - with:\n      stem: x\n", expectedMessage: "workflow step 1 missing operation name"},
		{name: "unnamed_tool", contents: "tools:\n  - operation: pop-suffix\nsteps:\n  - operation: pop-suffix\n", expectedMessage: "tool names must be non-empty"},
		{name: "duplicate_tool", contents: "tools:\n  - name: a\n    operation: pop-suffix\n  - name: a\n    operation: pop-parent\nsteps:\n  - with:\n      tool: a\n", expectedMessage: "defines tool \"a\" more than once"},
		{name: "tool_without_operation", contents: "tools:\n  - name: a\nsteps:\n  - with:\n      tool: a\n", expectedMessage: "workflow tool a missing operation name"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, parseError := workflow.ParseConfiguration([]byte(testCase.contents))
			require.Error(testInstance, parseError)
			require.ErrorContains(testInstance, parseError, testCase.expectedMessage)
		})
	}
}

func TestLoadConfigurationReportsEmptyPlan(testInstance *testing.T) {
	_, parseError := workflow.ParseConfiguration([]byte("steps: []\n"))
	require.ErrorIs(testInstance, parseError, workflow.ErrEmptyPlan)
}

func TestLoadConfigurationRequiresReadableFile(testInstance *testing.T) {
	_, blankPathError := workflow.LoadConfiguration(afero.NewMemMapFs(), "  ")
	require.ErrorContains(testInstance, blankPathError, "path must be provided")

	_, missingFileError := workflow.LoadConfiguration(afero.NewMemMapFs(), configurationTestFilePath)
	require.ErrorContains(testInstance, missingFileError, "failed to load workflow configuration")
}
