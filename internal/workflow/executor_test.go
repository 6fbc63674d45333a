package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/pathext/internal/pathvalue"
	"github.com/temirov/pathext/internal/workflow"
)

func parsePosixPaths(rawPaths ...string) []pathvalue.Path {
	paths := make([]pathvalue.Path, 0, len(rawPaths))
	for _, rawPath := range rawPaths {
		paths = append(paths, pathvalue.Posix.Parse(rawPath))
	}
	return paths
}

func TestExecutorAppliesStepsInOrder(testInstance *testing.T) {
	operations := []workflow.Operation{
		workflow.WithStemOperation{Stem: "report"},
		workflow.PushSuffixOperation{Suffix: ".gz"},
		workflow.PushParentOperation{Node: "archive"},
	}
	executor := workflow.NewExecutor(operations, workflow.Dependencies{})

	results, applyError := executor.Apply(context.Background(), parsePosixPaths("data/draft.tar", "notes.txt"))
	require.NoError(testInstance, applyError)
	require.Len(testInstance, results, 2)
	require.Equal(testInstance, "data/archive/report.tar.gz", results[0].Output.String())
	require.Equal(testInstance, "archive/report.txt.gz", results[1].Output.String())
	require.Equal(testInstance, "notes.txt", results[1].Input.String())
	require.NoError(testInstance, results[1].Error)
}

func TestExecutorContinuesPastFailingPaths(testInstance *testing.T) {
	executor := workflow.NewExecutor([]workflow.Operation{
		workflow.PopSuffixOperation{},
		workflow.WithStemOperation{Stem: "x"},
	}, workflow.Dependencies{})

	results, applyError := executor.Apply(context.Background(), parsePosixPaths("a/b.txt", "/", "c/d.txt", "."))
	require.Error(testInstance, applyError)
	require.ErrorIs(testInstance, applyError, pathvalue.ErrMissingName)
	require.ErrorContains(testInstance, applyError, "workflow step 2 (with-stem) failed for /")
	require.Len(testInstance, results, 4)

	require.Equal(testInstance, "a/x", results[0].Output.String())
	require.NoError(testInstance, results[0].Error)

	require.ErrorIs(testInstance, results[1].Error, pathvalue.ErrInvalidArgument)
	require.Equal(testInstance, "/", results[1].Output.String())

	require.Equal(testInstance, "c/x", results[2].Output.String())
	require.Error(testInstance, results[3].Error)
}

func TestExecutorStopsWhenContextIsCancelled(testInstance *testing.T) {
	executor := workflow.NewExecutor([]workflow.Operation{workflow.PopParentOperation{}}, workflow.Dependencies{})
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	results, applyError := executor.Apply(cancelledContext, parsePosixPaths("a/b", "c/d"))
	require.ErrorIs(testInstance, applyError, context.Canceled)
	require.ErrorContains(testInstance, applyError, "interrupted after 0 of 2 paths")
	require.Empty(testInstance, results)
}

func TestExecutorLogsAppliedSteps(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zap.DebugLevel)
	executor := workflow.NewExecutor([]workflow.Operation{workflow.PopParentOperation{}}, workflow.Dependencies{Logger: zap.New(observedCore)})

	_, applyError := executor.Apply(context.Background(), parsePosixPaths("a/b"))
	require.NoError(testInstance, applyError)

	appliedEntries := observedLogs.FilterMessage("workflow step applied").All()
	require.Len(testInstance, appliedEntries, 1)
	require.Equal(testInstance, "b", appliedEntries[0].ContextMap()["output"])
}
