package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	formatTextNameConstant              = "text"
	formatYAMLNameConstant              = "yaml"
	formatJSONNameConstant              = "json"
	formatTOMLNameConstant              = "toml"
	unsupportedFormatTemplateConstant   = "unsupported output format %q"
	renderErrorTemplateConstant         = "failed to render %s report: %w"
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	textLineTerminatorConstant          = "\n"
	textDocumentMissingTemplateConstant = "%T cannot be rendered as text"
)

// Format identifies a report encoding.
type Format string

// Supported report encodings.
const (
	FormatText Format = formatTextNameConstant
	FormatYAML Format = formatYAMLNameConstant
	FormatJSON Format = formatJSONNameConstant
	FormatTOML Format = formatTOMLNameConstant
)

// TextDocument is implemented by reports that have a line oriented text form.
type TextDocument interface {
	TextLines() []string
}

// FormatNames lists the accepted format identifiers, text first.
func FormatNames() []string {
	return []string{string(FormatText), string(FormatYAML), string(FormatJSON), string(FormatTOML)}
}

// ParseFormat resolves a case-insensitive format name; the empty string selects text.
func ParseFormat(formatName string) (Format, error) {
	switch normalized := Format(strings.ToLower(strings.TrimSpace(formatName))); normalized {
	case "":
		return FormatText, nil
	case FormatText, FormatYAML, FormatJSON, FormatTOML:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, formatName)
	}
}

// UnmarshalText lets configuration decoders validate format names.
func (format *Format) UnmarshalText(text []byte) error {
	parsedFormat, parseError := ParseFormat(string(text))
	if parseError != nil {
		return parseError
	}
	*format = parsedFormat
	return nil
}

// Renderer writes documents to a writer in one format.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer constructs a Renderer; an empty format selects text.
func NewRenderer(writer io.Writer, format Format) *Renderer {
	if len(format) == 0 {
		format = FormatText
	}
	return &Renderer{writer: writer, format: format}
}

// Render encodes document. Text rendering requires a TextDocument; the
// structured encodings use the yaml, json and toml field tags.
func (renderer *Renderer) Render(document any) error {
	var buffer bytes.Buffer
	if encodeError := renderer.encode(&buffer, document); encodeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderer.format, encodeError)
	}
	_, writeError := renderer.writer.Write(buffer.Bytes())
	return writeError
}

func (renderer *Renderer) encode(buffer *bytes.Buffer, document any) error {
	switch renderer.format {
	case FormatText:
		textDocument, isTextDocument := document.(TextDocument)
		if !isTextDocument {
			return fmt.Errorf(textDocumentMissingTemplateConstant, document)
		}
		for _, line := range textDocument.TextLines() {
			buffer.WriteString(line)
			buffer.WriteString(textLineTerminatorConstant)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(buffer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(document); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(buffer)
		encoder.SetIndent("", jsonIndentConstant)
		return encoder.Encode(document)
	case FormatTOML:
		return toml.NewEncoder(buffer).Encode(document)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, string(renderer.format))
	}
}
