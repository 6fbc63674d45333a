package pathvalue

import (
	"strconv"
	"strings"
)

const (
	emptyPathStringConstant = "."
	suffixDelimiterConstant = "."
	keyFieldDelimiter       = ":"
)

// Path is an immutable filesystem path of a fixed flavor.
//
// The zero Path is the empty POSIX path. Methods never modify the receiver and
// the slices they return are copies.
type Path struct {
	flavor *Flavor
	drive  string
	root   string
	parts  []string
}

// Parse builds a path using the host flavor reported by DefaultFlavor.
func Parse(fragments ...string) Path {
	return DefaultFlavor().Parse(fragments...)
}

// Flavor reports the grammar the path was built with.
func (path Path) Flavor() *Flavor {
	if path.flavor == nil {
		return Posix
	}
	return path.flavor
}

// Drive reports the drive letter or UNC share, empty for POSIX paths.
func (path Path) Drive() string {
	return path.drive
}

// Root reports the root separator(s), empty for relative paths.
func (path Path) Root() string {
	return path.root
}

// Anchor reports drive and root concatenated.
func (path Path) Anchor() string {
	return path.drive + path.root
}

// Parts returns the components in root-to-leaf order, the anchor first when present.
func (path Path) Parts() []string {
	return append([]string(nil), path.parts...)
}

// IsEmpty reports whether the path has no components at all.
func (path Path) IsEmpty() bool {
	return len(path.parts) == 0
}

// IsAbsolute reports whether the path is fully anchored for its flavor.
func (path Path) IsAbsolute() bool {
	if len(path.root) == 0 {
		return false
	}
	if path.Flavor().supportsDrives {
		return len(path.drive) > 0
	}
	return true
}

func (path Path) hasAnchor() bool {
	return len(path.drive) > 0 || len(path.root) > 0
}

// ChangeableNodeCount counts components eligible for rewriting, excluding the anchor.
func (path Path) ChangeableNodeCount() int {
	if path.hasAnchor() {
		return len(path.parts) - 1
	}
	return len(path.parts)
}

// Name returns the final component, empty for the empty path and anchor-only paths.
func (path Path) Name() string {
	if path.ChangeableNodeCount() == 0 {
		return ""
	}
	return path.parts[len(path.parts)-1]
}

// Suffix returns the last dotted extension of the name, or "".
// Leading dots and a trailing dot never start a suffix.
func (path Path) Suffix() string {
	name := path.Name()
	if suffixStart := suffixIndex(name); suffixStart > 0 {
		return name[suffixStart:]
	}
	return ""
}

// Suffixes returns every dotted extension of the name in order.
func (path Path) Suffixes() []string {
	name := path.Name()
	if strings.HasSuffix(name, suffixDelimiterConstant) {
		return []string{}
	}

	fragments := strings.Split(strings.TrimLeft(name, suffixDelimiterConstant), suffixDelimiterConstant)
	suffixes := make([]string, 0, len(fragments))
	for _, fragment := range fragments[1:] {
		suffixes = append(suffixes, suffixDelimiterConstant+fragment)
	}
	return suffixes
}

// Stem returns the name without its last suffix.
func (path Path) Stem() string {
	name := path.Name()
	if suffixStart := suffixIndex(name); suffixStart > 0 {
		return name[:suffixStart]
	}
	return name
}

func suffixIndex(name string) int {
	delimiterIndex := strings.LastIndex(name, suffixDelimiterConstant)
	if 0 < delimiterIndex && delimiterIndex < len(name)-1 {
		return delimiterIndex
	}
	return -1
}

// Parent returns the logical parent; anchor-only and empty paths are their own parent.
func (path Path) Parent() Path {
	if path.ChangeableNodeCount() == 0 {
		return path
	}
	return path.withParts(path.parts[:len(path.parts)-1])
}

// Join appends fragments using the path's flavor rules.
func (path Path) Join(fragments ...string) Path {
	result := path
	flavor := path.Flavor()
	for _, fragment := range fragments {
		drive, root, parts := flavor.parseFragment(fragment)
		result = result.joinParsed(drive, root, parts)
	}
	return result
}

// JoinPath appends other paths, reinterpreting them in this path's flavor.
func (path Path) JoinPath(others ...Path) Path {
	fragments := make([]string, 0, len(others))
	for _, other := range others {
		if other.IsEmpty() {
			continue
		}
		fragments = append(fragments, other.String())
	}
	return path.Join(fragments...)
}

// String renders the path with the flavor's primary separator; the empty path renders as ".".
func (path Path) String() string {
	separator := path.Flavor().separator
	if path.hasAnchor() {
		return path.drive + path.root + strings.Join(path.parts[1:], separator)
	}
	if len(path.parts) == 0 {
		return emptyPathStringConstant
	}
	return strings.Join(path.parts, separator)
}

// MarshalText renders the path for text based encoders.
func (path Path) MarshalText() ([]byte, error) {
	return []byte(path.String()), nil
}

// Equal reports structural equality: same flavor and equal components, ignoring case on Windows.
func (path Path) Equal(other Path) bool {
	return path.Compare(other) == 0
}

// Compare orders paths by flavor name and then component by component.
func (path Path) Compare(other Path) int {
	leftFlavor := path.Flavor()
	rightFlavor := other.Flavor()
	if leftFlavor != rightFlavor {
		return strings.Compare(leftFlavor.name, rightFlavor.name)
	}

	for index := 0; index < len(path.parts) && index < len(other.parts); index++ {
		comparison := strings.Compare(leftFlavor.comparisonForm(path.parts[index]), leftFlavor.comparisonForm(other.parts[index]))
		if comparison != 0 {
			return comparison
		}
	}

	switch {
	case len(path.parts) < len(other.parts):
		return -1
	case len(path.parts) > len(other.parts):
		return 1
	default:
		return 0
	}
}

// Key returns a comparable value consistent with Equal, suitable for map keys.
func (path Path) Key() string {
	flavor := path.Flavor()
	var builder strings.Builder
	builder.WriteString(flavor.name)
	for _, part := range path.parts {
		comparable := flavor.comparisonForm(part)
		builder.WriteString(keyFieldDelimiter)
		builder.WriteString(strconv.Itoa(len(comparable)))
		builder.WriteString(keyFieldDelimiter)
		builder.WriteString(comparable)
	}
	return builder.String()
}

// joinParsed applies native join rules: a rooted fragment replaces the prior path
// (keeping a prior drive when it has none of its own), a foreign drive replaces
// everything and a same-drive relative fragment appends.
func (path Path) joinParsed(drive string, root string, parts []string) Path {
	flavor := path.Flavor()

	switch {
	case len(root) > 0:
		if len(drive) == 0 && len(path.drive) > 0 {
			joinedParts := make([]string, 0, len(parts))
			joinedParts = append(joinedParts, path.drive+root)
			joinedParts = append(joinedParts, parts[1:]...)
			return Path{flavor: flavor, drive: path.drive, root: root, parts: joinedParts}
		}
	case len(drive) > 0:
		if flavor.comparisonForm(drive) == flavor.comparisonForm(path.drive) {
			return path.appendParts(parts[1:]...)
		}
	default:
		return path.appendParts(parts...)
	}

	return Path{flavor: flavor, drive: drive, root: root, parts: append([]string(nil), parts...)}
}

func (path Path) appendParts(components ...string) Path {
	joinedParts := make([]string, 0, len(path.parts)+len(components))
	joinedParts = append(joinedParts, path.parts...)
	joinedParts = append(joinedParts, components...)
	return Path{flavor: path.Flavor(), drive: path.drive, root: path.root, parts: joinedParts}
}

// withParts keeps the receiver's anchor and replaces the component list, which must
// still start with that anchor when one is present.
func (path Path) withParts(parts []string) Path {
	return Path{flavor: path.Flavor(), drive: path.drive, root: path.root, parts: append([]string(nil), parts...)}
}

func (path Path) withLeaf(leaf string) Path {
	replacedParts := path.Parts()
	replacedParts[len(replacedParts)-1] = leaf
	return Path{flavor: path.Flavor(), drive: path.drive, root: path.root, parts: replacedParts}
}
