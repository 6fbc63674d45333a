package pathvalue

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
)

const (
	posixFlavorNameConstant           = "posix"
	windowsFlavorNameConstant         = "windows"
	automaticFlavorNameConstant       = "auto"
	windowsOperatingSystemConstant    = "windows"
	posixSeparatorConstant            = "/"
	posixDoubleRootConstant           = "//"
	windowsSeparatorConstant          = `\`
	windowsDriveDelimiterConstant     = ':'
	unsupportedFlavorTemplateConstant = "unsupported path flavor %q"
)

// Flavor describes a path grammar: separators, case sensitivity and drive syntax.
// The two supported grammars are exposed as Posix and Windows; Flavor values are
// never mutated and are compared by identity.
type Flavor struct {
	name               string
	separator          string
	alternateSeparator string
	caseSensitive      bool
	supportsDrives     bool
}

var (
	// Posix is the slash separated, case-sensitive grammar without drives.
	Posix = &Flavor{
		name:          posixFlavorNameConstant,
		separator:     posixSeparatorConstant,
		caseSensitive: true,
	}

	// Windows is the backslash separated, case-insensitive grammar with drive letters and UNC shares.
	Windows = &Flavor{
		name:               windowsFlavorNameConstant,
		separator:          windowsSeparatorConstant,
		alternateSeparator: posixSeparatorConstant,
		caseSensitive:      false,
		supportsDrives:     true,
	}
)

// DefaultFlavor returns the flavor native to the host operating system.
func DefaultFlavor() *Flavor {
	return flavorForOperatingSystem(runtime.GOOS)
}

func flavorForOperatingSystem(operatingSystem string) *Flavor {
	if operatingSystem == windowsOperatingSystemConstant {
		return Windows
	}
	return Posix
}

// FlavorByName resolves "posix", "windows" or "auto" (and the empty string) to a flavor.
func FlavorByName(flavorName string) (*Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(flavorName)) {
	case posixFlavorNameConstant:
		return Posix, nil
	case windowsFlavorNameConstant:
		return Windows, nil
	case automaticFlavorNameConstant, "":
		return DefaultFlavor(), nil
	default:
		return nil, fmt.Errorf(unsupportedFlavorTemplateConstant, flavorName)
	}
}

// Name reports the flavor identifier.
func (flavor *Flavor) Name() string {
	return flavor.name
}

// Separator reports the primary component separator.
func (flavor *Flavor) Separator() string {
	return flavor.separator
}

// AlternateSeparator reports the separator accepted on input and normalized away, if any.
func (flavor *Flavor) AlternateSeparator() string {
	return flavor.alternateSeparator
}

// CaseSensitive reports whether component comparison distinguishes letter case.
func (flavor *Flavor) CaseSensitive() bool {
	return flavor.caseSensitive
}

// String implements fmt.Stringer.
func (flavor *Flavor) String() string {
	return flavor.name
}

// Parse joins the fragments using this flavor's rules and returns the normalized path.
// Any input is accepted; no fragments, "" and "." all yield the empty path.
func (flavor *Flavor) Parse(fragments ...string) Path {
	result := Path{flavor: flavor}
	for _, fragment := range fragments {
		drive, root, parts := flavor.parseFragment(fragment)
		result = result.joinParsed(drive, root, parts)
	}
	return result
}

// ContainsSeparator reports whether candidate holds the primary or alternate separator.
func (flavor *Flavor) ContainsSeparator(candidate string) bool {
	if strings.Contains(candidate, flavor.separator) {
		return true
	}
	return len(flavor.alternateSeparator) > 0 && strings.Contains(candidate, flavor.alternateSeparator)
}

func (flavor *Flavor) normalizeSeparators(fragment string) string {
	if len(flavor.alternateSeparator) == 0 {
		return fragment
	}
	return strings.ReplaceAll(fragment, flavor.alternateSeparator, flavor.separator)
}

// parseFragment splits a single fragment into its anchor and non-trivial components.
// The anchor, when present, becomes the first component.
func (flavor *Flavor) parseFragment(fragment string) (string, string, []string) {
	if len(fragment) == 0 {
		return "", "", nil
	}

	normalizedFragment := flavor.normalizeSeparators(fragment)
	drive, root, relative := flavor.splitAnchor(normalizedFragment)

	parts := make([]string, 0, strings.Count(relative, flavor.separator)+2)
	if len(drive) > 0 || len(root) > 0 {
		parts = append(parts, drive+root)
	}
	for _, component := range strings.Split(relative, flavor.separator) {
		if len(component) == 0 || component == "." {
			continue
		}
		parts = append(parts, component)
	}

	return drive, root, parts
}

func (flavor *Flavor) splitAnchor(fragment string) (string, string, string) {
	if flavor.supportsDrives {
		return flavor.splitWindowsAnchor(fragment)
	}

	if !strings.HasPrefix(fragment, flavor.separator) {
		return "", "", fragment
	}
	relative := strings.TrimLeft(fragment, flavor.separator)
	if len(fragment)-len(relative) == len(posixDoubleRootConstant) {
		return "", posixDoubleRootConstant, relative
	}
	return "", flavor.separator, relative
}

func (flavor *Flavor) splitWindowsAnchor(fragment string) (string, string, string) {
	separatorByte := flavor.separator[0]

	if len(fragment) >= 2 && fragment[0] == separatorByte && fragment[1] == separatorByte && (len(fragment) == 2 || fragment[2] != separatorByte) {
		if serverEnd := strings.IndexByte(fragment[2:], separatorByte); serverEnd >= 0 {
			serverEnd += 2
			shareEnd := strings.IndexByte(fragment[serverEnd+1:], separatorByte)
			if shareEnd >= 0 {
				shareEnd += serverEnd + 1
			}
			if shareEnd != serverEnd+1 {
				if shareEnd < 0 {
					return fragment, flavor.separator, ""
				}
				return fragment[:shareEnd], flavor.separator, fragment[shareEnd+1:]
			}
		}
	}

	drive := ""
	relative := fragment
	if len(fragment) >= 2 && fragment[1] == windowsDriveDelimiterConstant && isASCIILetter(fragment[0]) {
		drive = fragment[:2]
		relative = fragment[2:]
	}

	root := ""
	if strings.HasPrefix(relative, flavor.separator) {
		root = flavor.separator
		relative = strings.TrimLeft(relative, flavor.separator)
	}

	return drive, root, relative
}

func (flavor *Flavor) comparisonForm(component string) string {
	if flavor.caseSensitive {
		return component
	}
	return cases.Fold().String(component)
}

func isASCIILetter(candidate byte) bool {
	return ('a' <= candidate && candidate <= 'z') || ('A' <= candidate && candidate <= 'Z')
}
