package workflow

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/temirov/pathext/internal/pathvalue"
)

const (
	workflowStepErrorTemplateConstant    = "workflow step %d (%s) failed for %s: %w"
	workflowInterruptedTemplateConstant  = "workflow interrupted after %d of %d paths: %w"
	workflowStepAppliedMessageConstant   = "workflow step applied"
	workflowStepFailedMessageConstant    = "workflow step failed"
	workflowLogFieldStepConstant         = "step"
	workflowLogFieldOperationConstant    = "operation"
	workflowLogFieldInputConstant        = "input"
	workflowLogFieldOutputConstant       = "output"
	workflowLogFieldPathCountConstant    = "path_count"
	workflowStartedMessageConstant       = "workflow started"
	workflowFinishedMessageConstant      = "workflow finished"
	workflowLogFieldFailureCountConstant = "failure_count"
)

// Dependencies configures shared collaborators for workflow execution.
type Dependencies struct {
	Logger *zap.Logger
}

// Result captures the outcome of running every step against one input path.
// Output holds the last successfully produced path when Error is set.
type Result struct {
	Input  pathvalue.Path
	Output pathvalue.Path
	Error  error

	stepError error
}

// Executor coordinates workflow operation execution.
type Executor struct {
	operations   []Operation
	dependencies Dependencies
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, dependencies Dependencies) *Executor {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Executor{operations: append([]Operation{}, operations...), dependencies: dependencies}
}

// Apply runs every operation in order against each path.
//
// A failing path keeps its error in its Result and the remaining paths still run; the
// returned error aggregates every failure. Cancellation is observed between paths, in
// which case only the results gathered so far are returned.
func (executor *Executor) Apply(executionContext context.Context, paths []pathvalue.Path) ([]Result, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	logger := executor.dependencies.Logger
	logger.Debug(workflowStartedMessageConstant, zap.Int(workflowLogFieldPathCountConstant, len(paths)))

	results := make([]Result, 0, len(paths))
	var aggregatedError *multierror.Error
	for pathIndex := range paths {
		if contextError := executionContext.Err(); contextError != nil {
			aggregatedError = multierror.Append(aggregatedError, fmt.Errorf(workflowInterruptedTemplateConstant, pathIndex, len(paths), contextError))
			return results, aggregatedError.ErrorOrNil()
		}

		result := executor.applyToPath(paths[pathIndex])
		if result.Error != nil {
			aggregatedError = multierror.Append(aggregatedError, result.stepError)
		}
		results = append(results, result)
	}

	logger.Debug(workflowFinishedMessageConstant,
		zap.Int(workflowLogFieldPathCountConstant, len(results)),
		zap.Int(workflowLogFieldFailureCountConstant, failureCount(aggregatedError)),
	)

	return results, aggregatedError.ErrorOrNil()
}

func (executor *Executor) applyToPath(input pathvalue.Path) Result {
	logger := executor.dependencies.Logger
	current := input
	for operationIndex, operation := range executor.operations {
		if operation == nil {
			continue
		}

		next, applyError := operation.Apply(current)
		if applyError != nil {
			logger.Debug(workflowStepFailedMessageConstant,
				zap.Int(workflowLogFieldStepConstant, operationIndex+1),
				zap.String(workflowLogFieldOperationConstant, string(operation.Name())),
				zap.Stringer(workflowLogFieldInputConstant, current),
				zap.Error(applyError),
			)
			return Result{
				Input:     input,
				Output:    current,
				Error:     applyError,
				stepError: fmt.Errorf(workflowStepErrorTemplateConstant, operationIndex+1, operation.Name(), input, applyError),
			}
		}

		logger.Debug(workflowStepAppliedMessageConstant,
			zap.Int(workflowLogFieldStepConstant, operationIndex+1),
			zap.String(workflowLogFieldOperationConstant, string(operation.Name())),
			zap.Stringer(workflowLogFieldInputConstant, current),
			zap.Stringer(workflowLogFieldOutputConstant, next),
		)
		current = next
	}

	return Result{Input: input, Output: current}
}

func failureCount(aggregatedError *multierror.Error) int {
	if aggregatedError == nil {
		return 0
	}
	return len(aggregatedError.Errors)
}
