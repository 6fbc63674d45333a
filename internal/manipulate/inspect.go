package manipulate

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathext/internal/report"
)

const (
	inspectCommandUseConstant              = "inspect <path>..."
	inspectCommandShortDescriptionConstant = "Describe how paths decompose"
	inspectCommandLongDescriptionConstant  = "inspect prints the drive, root, components, name, stem, suffixes and changeable node count of each path as parsed by the selected flavor."
	inspectCommandExampleConstant          = "pathext inspect --flavor windows 'C:\\Users\\me\\report.tar.gz' //server/share/x"
	inspectedPathsMessageConstant          = "inspected paths"
	inspectedPathCountLogFieldConstant     = "path_count"
)

// InspectCommandBuilder assembles the inspect command.
type InspectCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the inspect command.
func (builder *InspectCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     inspectCommandUseConstant,
		Short:   inspectCommandShortDescriptionConstant,
		Long:    inspectCommandLongDescriptionConstant,
		Example: inspectCommandExampleConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE:    builder.run,
	}

	BindPathArgumentFlags(command)
	BindDeduplicateFlag(command)

	return command, nil
}

func (builder *InspectCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	environment, environmentError := ResolveEnvironment(command, configuration, builder.LoggerProvider)
	if environmentError != nil {
		return environmentError
	}

	paths := environment.Sanitizer.Sanitize(arguments)
	if len(paths) == 0 {
		return ErrMissingPath
	}

	inspection := report.InspectionReport{Paths: make([]report.PathDescription, 0, len(paths))}
	for _, path := range paths {
		inspection.Paths = append(inspection.Paths, report.DescribePath(path))
	}
	environment.Logger.Debug(inspectedPathsMessageConstant, zap.Int(inspectedPathCountLogFieldConstant, len(paths)))

	return environment.Renderer.Render(inspection)
}
