package utils

import (
	"context"

	"github.com/temirov/pathext/internal/pathvalue"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	pathFlavorContextKeyConstant            = commandContextKey("pathFlavor")
	outputFormatContextKeyConstant          = commandContextKey("outputFormat")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return context.WithValue(ensureContext(parentContext), configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return configurationFilePath, configurationFilePathAvailable
}

// WithPathFlavor attaches the resolved path flavor used to parse command arguments.
func (accessor CommandContextAccessor) WithPathFlavor(parentContext context.Context, flavor *pathvalue.Flavor) context.Context {
	return context.WithValue(ensureContext(parentContext), pathFlavorContextKeyConstant, flavor)
}

// PathFlavor extracts the path flavor from the provided context.
func (accessor CommandContextAccessor) PathFlavor(executionContext context.Context) (*pathvalue.Flavor, bool) {
	if executionContext == nil {
		return nil, false
	}
	flavor, flavorAvailable := executionContext.Value(pathFlavorContextKeyConstant).(*pathvalue.Flavor)
	if !flavorAvailable || flavor == nil {
		return nil, false
	}
	return flavor, true
}

// WithOutputFormat attaches the requested report format.
func (accessor CommandContextAccessor) WithOutputFormat(parentContext context.Context, outputFormat string) context.Context {
	return context.WithValue(ensureContext(parentContext), outputFormatContextKeyConstant, outputFormat)
}

// OutputFormat extracts the requested report format from the provided context.
func (accessor CommandContextAccessor) OutputFormat(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	outputFormat, outputFormatAvailable := executionContext.Value(outputFormatContextKeyConstant).(string)
	if !outputFormatAvailable || len(outputFormat) == 0 {
		return "", false
	}
	return outputFormat, true
}

func ensureContext(parentContext context.Context) context.Context {
	if parentContext == nil {
		return context.Background()
	}
	return parentContext
}
