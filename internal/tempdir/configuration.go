package tempdir

import "strings"

const defaultScratchPrefixConstant = "pathext-"

// CommandConfiguration captures configuration values for the scratch command.
type CommandConfiguration struct {
	Prefix        string `mapstructure:"prefix"`
	Suffix        string `mapstructure:"suffix"`
	BaseDirectory string `mapstructure:"base_directory"`
}

// DefaultCommandConfiguration provides baseline configuration values for the scratch command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Prefix:        defaultScratchPrefixConstant,
		Suffix:        "",
		BaseDirectory: "",
	}
}

// DefaultConfigurationValues returns the configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".prefix":         defaults.Prefix,
		prefix + ".suffix":         defaults.Suffix,
		prefix + ".base_directory": defaults.BaseDirectory,
	}
}

// Sanitize trims the base directory; prefix and suffix are kept verbatim.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.BaseDirectory = strings.TrimSpace(configuration.BaseDirectory)
	return sanitized
}

// Options converts the configuration into Manager options.
func (configuration CommandConfiguration) Options() Options {
	return Options{
		Prefix:        configuration.Prefix,
		Suffix:        configuration.Suffix,
		BaseDirectory: configuration.BaseDirectory,
	}
}
