package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	processRunnerNotConfiguredMessageConstant = "process runner not configured"
	executableMissingMessageConstant          = "executable name must be provided"
	environmentAssignmentSeparatorConstant    = "="
	environmentAssignmentTemplateConstant     = "%s%s%s"
)

// CommandOptions describes a program invocation.
type CommandOptions struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        io.Reader

	// StandardOutput and StandardError receive the program output as it is produced, in addition to the captured buffers.
	StandardOutput io.Writer
	StandardError  io.Writer
}

// ExecutableCommand combines an executable name with invocation options.
type ExecutableCommand struct {
	Executable string
	CommandOptions
}

// CommandResult captures the observable results of executing a command.
type CommandResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// ExternalProcessRunner represents the ability to run executable commands.
type ExternalProcessRunner interface {
	Run(executionContext context.Context, command ExecutableCommand) (CommandResult, error)
}

// CommandExecutor validates commands and hands them to a process runner.
type CommandExecutor struct {
	processRunner ExternalProcessRunner
}

// OSExternalProcessRunner executes commands using the operating system facilities.
type OSExternalProcessRunner struct{}

// NewCommandExecutor builds a CommandExecutor around the provided runner.
func NewCommandExecutor(processRunner ExternalProcessRunner) *CommandExecutor {
	return &CommandExecutor{processRunner: processRunner}
}

// NewOSExternalProcessRunner creates a runner backed by os/exec.
func NewOSExternalProcessRunner() *OSExternalProcessRunner {
	return &OSExternalProcessRunner{}
}

// Execute runs an arbitrary command using the configured runner.
func (executor *CommandExecutor) Execute(executionContext context.Context, command ExecutableCommand) (CommandResult, error) {
	if executor == nil || executor.processRunner == nil {
		return CommandResult{}, errors.New(processRunnerNotConfiguredMessageConstant)
	}
	if len(strings.TrimSpace(command.Executable)) == 0 {
		return CommandResult{}, errors.New(executableMissingMessageConstant)
	}

	return executor.processRunner.Run(executionContext, command)
}

// Run executes the command using os/exec facilities. A non-zero exit status is
// reported through CommandResult.ExitCode rather than as an error.
func (runner *OSExternalProcessRunner) Run(executionContext context.Context, command ExecutableCommand) (CommandResult, error) {
	commandArguments := append([]string{}, command.Arguments...)
	executable := exec.CommandContext(executionContext, command.Executable, commandArguments...)

	if len(command.WorkingDirectory) > 0 {
		executable.Dir = command.WorkingDirectory
	}

	if len(command.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = teeWriter(&standardOutputBuffer, command.StandardOutput)
	executable.Stderr = teeWriter(&standardErrorBuffer, command.StandardError)

	if command.StandardInput != nil {
		executable.Stdin = command.StandardInput
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return CommandResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return CommandResult{}, runError
	}

	return CommandResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

func teeWriter(buffer *bytes.Buffer, streamWriter io.Writer) io.Writer {
	if streamWriter == nil {
		return buffer
	}
	return io.MultiWriter(buffer, NewFlushingWriter(streamWriter))
}
