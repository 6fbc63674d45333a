package manipulate

import "strings"

const (
	defaultFlavorNameConstant = "auto"
	defaultOutputNameConstant = "text"
)

// CommandConfiguration captures configuration values shared by the path commands.
type CommandConfiguration struct {
	Flavor      string `mapstructure:"flavor"`
	Output      string `mapstructure:"output"`
	ExpandHome  bool   `mapstructure:"expand_home"`
	Deduplicate bool   `mapstructure:"deduplicate"`
}

// DefaultCommandConfiguration provides baseline configuration values for the path commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Flavor:      defaultFlavorNameConstant,
		Output:      defaultOutputNameConstant,
		ExpandHome:  true,
		Deduplicate: false,
	}
}

// DefaultConfigurationValues returns the configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".flavor":      defaults.Flavor,
		prefix + ".output":      defaults.Output,
		prefix + ".expand_home": defaults.ExpandHome,
		prefix + ".deduplicate": defaults.Deduplicate,
	}
}

// Sanitize trims and lower-cases the named values, restoring defaults for blanks.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Flavor = strings.ToLower(strings.TrimSpace(configuration.Flavor))
	if len(sanitized.Flavor) == 0 {
		sanitized.Flavor = defaultFlavorNameConstant
	}
	sanitized.Output = strings.ToLower(strings.TrimSpace(configuration.Output))
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaultOutputNameConstant
	}

	return sanitized
}
