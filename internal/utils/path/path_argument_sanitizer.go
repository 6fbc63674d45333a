package pathutils

import (
	"strings"

	"github.com/temirov/pathext/internal/pathvalue"
)

// PathArgumentSanitizerConfiguration controls path argument sanitization behavior.
type PathArgumentSanitizerConfiguration struct {
	// Flavor parses the sanitized arguments; nil selects the host flavor.
	Flavor *pathvalue.Flavor
	// ExpandHome resolves leading tilde shortcuts to the user's home directory.
	ExpandHome bool
	// Deduplicate drops arguments structurally equal to an earlier one.
	Deduplicate bool
}

// PathArgumentSanitizer normalizes command-line path arguments into path values.
type PathArgumentSanitizer struct {
	homeExpander  *HomeExpander
	configuration PathArgumentSanitizerConfiguration
}

// NewPathArgumentSanitizer constructs a PathArgumentSanitizer using the provided expander and configuration.
func NewPathArgumentSanitizer(homeExpander *HomeExpander, configuration PathArgumentSanitizerConfiguration) *PathArgumentSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	if configuration.Flavor == nil {
		configuration.Flavor = pathvalue.DefaultFlavor()
	}

	return &PathArgumentSanitizer{
		homeExpander:  resolvedExpander,
		configuration: configuration,
	}
}

// Sanitize trims whitespace, drops empty arguments, optionally expands the
// home directory and removes duplicates, then parses each argument. The
// original order is preserved; nil is returned when nothing remains.
func (sanitizer *PathArgumentSanitizer) Sanitize(candidatePaths []string) []pathvalue.Path {
	if sanitizer == nil {
		sanitizer = NewPathArgumentSanitizer(nil, PathArgumentSanitizerConfiguration{})
	}

	sanitizedPaths := make([]pathvalue.Path, 0, len(candidatePaths))
	seenKeys := make(map[string]struct{}, len(candidatePaths))
	for candidateIndex := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePaths[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		if sanitizer.configuration.ExpandHome {
			trimmedCandidate = sanitizer.homeExpander.Expand(trimmedCandidate)
		}

		parsedPath := sanitizer.configuration.Flavor.Parse(trimmedCandidate)
		if sanitizer.configuration.Deduplicate {
			pathKey := parsedPath.Key()
			if _, seen := seenKeys[pathKey]; seen {
				continue
			}
			seenKeys[pathKey] = struct{}{}
		}

		sanitizedPaths = append(sanitizedPaths, parsedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}

	return sanitizedPaths
}

// SanitizeOne applies Sanitize to a single argument and reports whether a path remained.
func (sanitizer *PathArgumentSanitizer) SanitizeOne(candidatePath string) (pathvalue.Path, bool) {
	sanitizedPaths := sanitizer.Sanitize([]string{candidatePath})
	if len(sanitizedPaths) == 0 {
		return pathvalue.Path{}, false
	}
	return sanitizedPaths[0], true
}
