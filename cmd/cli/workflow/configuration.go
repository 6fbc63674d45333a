package workflow

import "strings"

// CommandConfiguration captures configuration values for the workflow command.
type CommandConfiguration struct {
	Plan string `mapstructure:"plan"`
}

// DefaultCommandConfiguration provides default workflow command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// DefaultConfigurationValues returns the configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".plan": defaults.Plan,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Plan = strings.TrimSpace(configuration.Plan)
	return sanitized
}
