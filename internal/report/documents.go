package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/pathext/internal/pathvalue"
)

const (
	textFieldTemplateConstant        = "%-17s %s"
	textFailureTemplateConstant      = "%s: %s"
	textListSeparatorConstant        = " "
	textPathLabelConstant            = "path:"
	textFlavorLabelConstant          = "flavor:"
	textDriveLabelConstant           = "drive:"
	textRootLabelConstant            = "root:"
	textAnchorLabelConstant          = "anchor:"
	textPartsLabelConstant           = "parts:"
	textParentLabelConstant          = "parent:"
	textNameLabelConstant            = "name:"
	textStemLabelConstant            = "stem:"
	textSuffixLabelConstant          = "suffix:"
	textSuffixesLabelConstant        = "suffixes:"
	textChangeableNodesLabelConstant = "changeable_nodes:"
	textAbsoluteLabelConstant        = "absolute:"
)

// PathDescription is the decomposition of one path.
type PathDescription struct {
	Path            string   `yaml:"path" json:"path" toml:"path"`
	Flavor          string   `yaml:"flavor" json:"flavor" toml:"flavor"`
	Drive           string   `yaml:"drive" json:"drive" toml:"drive"`
	Root            string   `yaml:"root" json:"root" toml:"root"`
	Anchor          string   `yaml:"anchor" json:"anchor" toml:"anchor"`
	Parts           []string `yaml:"parts" json:"parts" toml:"parts"`
	Parent          string   `yaml:"parent" json:"parent" toml:"parent"`
	Name            string   `yaml:"name" json:"name" toml:"name"`
	Stem            string   `yaml:"stem" json:"stem" toml:"stem"`
	Suffix          string   `yaml:"suffix" json:"suffix" toml:"suffix"`
	Suffixes        []string `yaml:"suffixes" json:"suffixes" toml:"suffixes"`
	ChangeableNodes int      `yaml:"changeable_nodes" json:"changeable_nodes" toml:"changeable_nodes"`
	Absolute        bool     `yaml:"absolute" json:"absolute" toml:"absolute"`
}

// DescribePath decomposes path into a PathDescription.
func DescribePath(path pathvalue.Path) PathDescription {
	parts := path.Parts()
	if parts == nil {
		parts = []string{}
	}
	return PathDescription{
		Path:            path.String(),
		Flavor:          path.Flavor().Name(),
		Drive:           path.Drive(),
		Root:            path.Root(),
		Anchor:          path.Anchor(),
		Parts:           parts,
		Parent:          path.Parent().String(),
		Name:            path.Name(),
		Stem:            path.Stem(),
		Suffix:          path.Suffix(),
		Suffixes:        path.Suffixes(),
		ChangeableNodes: path.ChangeableNodeCount(),
		Absolute:        path.IsAbsolute(),
	}
}

// InspectionReport lists path decompositions.
type InspectionReport struct {
	Paths []PathDescription `yaml:"paths" json:"paths" toml:"paths"`
}

// TextLines renders one labelled block per path, separated by blank lines.
func (inspection InspectionReport) TextLines() []string {
	lines := make([]string, 0, len(inspection.Paths)*14)
	for descriptionIndex, description := range inspection.Paths {
		if descriptionIndex > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			textField(textPathLabelConstant, description.Path),
			textField(textFlavorLabelConstant, description.Flavor),
			textField(textDriveLabelConstant, description.Drive),
			textField(textRootLabelConstant, description.Root),
			textField(textAnchorLabelConstant, description.Anchor),
			textField(textPartsLabelConstant, strings.Join(quoteAll(description.Parts), textListSeparatorConstant)),
			textField(textParentLabelConstant, description.Parent),
			textField(textNameLabelConstant, description.Name),
			textField(textStemLabelConstant, description.Stem),
			textField(textSuffixLabelConstant, description.Suffix),
			textField(textSuffixesLabelConstant, strings.Join(quoteAll(description.Suffixes), textListSeparatorConstant)),
			textField(textChangeableNodesLabelConstant, strconv.Itoa(description.ChangeableNodes)),
			textField(textAbsoluteLabelConstant, strconv.FormatBool(description.Absolute)),
		)
	}
	return lines
}

// Transformation records one path manipulation and its outcome.
type Transformation struct {
	Input     string `yaml:"input" json:"input" toml:"input"`
	Operation string `yaml:"operation" json:"operation" toml:"operation"`
	Argument  string `yaml:"argument,omitempty" json:"argument,omitempty" toml:"argument,omitempty"`
	Output    string `yaml:"output,omitempty" json:"output,omitempty" toml:"output,omitempty"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty" toml:"error,omitempty"`
}

// Failed reports whether the transformation carries an error.
func (transformation Transformation) Failed() bool {
	return len(transformation.Error) > 0
}

// TransformationReport lists transformation outcomes in input order.
type TransformationReport struct {
	Results []Transformation `yaml:"results" json:"results" toml:"results"`
}

// TextLines renders the output path of each success and "input: error" for each failure.
func (transformations TransformationReport) TextLines() []string {
	lines := make([]string, 0, len(transformations.Results))
	for _, transformation := range transformations.Results {
		if transformation.Failed() {
			lines = append(lines, fmt.Sprintf(textFailureTemplateConstant, transformation.Input, transformation.Error))
			continue
		}
		lines = append(lines, transformation.Output)
	}
	return lines
}

// TemporaryRootReport names the system temporary directory.
type TemporaryRootReport struct {
	Root string `yaml:"root" json:"root" toml:"root"`
}

// TextLines renders the bare directory.
func (temporaryRoot TemporaryRootReport) TextLines() []string {
	return []string{temporaryRoot.Root}
}

func textField(label string, value string) string {
	return strings.TrimRight(fmt.Sprintf(textFieldTemplateConstant, label, value), textListSeparatorConstant)
}

func quoteAll(values []string) []string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, strconv.Quote(value))
	}
	return quoted
}
