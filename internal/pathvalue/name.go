package pathvalue

import "strings"

const (
	withNameOperationConstant   = "with-name"
	withSuffixOperationConstant = "with-suffix"
)

// WithName replaces the final component. The name must form exactly one
// component: it cannot be empty, ".", carry an anchor or contain a separator.
func (path Path) WithName(name string) (Path, error) {
	return path.withName(withNameOperationConstant, name, name)
}

func (path Path) withName(operation string, argument string, name string) (Path, error) {
	if len(path.Name()) == 0 {
		return Path{}, newStructuralError(ErrMissingName, operation, path)
	}

	flavor := path.Flavor()
	if len(name) == 0 {
		return Path{}, newArgumentError(ErrEmptyArgument, operation, path, argument)
	}
	if flavor.ContainsSeparator(name) {
		return Path{}, newArgumentError(ErrSeparatorInArgument, operation, path, argument)
	}

	drive, root, parts := flavor.parseFragment(name)
	if len(drive) > 0 || len(root) > 0 || len(parts) != 1 {
		return Path{}, newArgumentError(ErrInvalidName, operation, path, argument)
	}

	return path.withLeaf(parts[0]), nil
}

// WithSuffix replaces the last suffix of the name, or appends one when the name
// has none. An empty suffix removes the last suffix.
func (path Path) WithSuffix(suffix string) (Path, error) {
	return path.withSuffix(withSuffixOperationConstant, suffix)
}

func (path Path) withSuffix(operation string, suffix string) (Path, error) {
	if path.Flavor().ContainsSeparator(suffix) {
		return Path{}, newArgumentError(ErrSeparatorInArgument, operation, path, suffix)
	}
	if (len(suffix) > 0 && !strings.HasPrefix(suffix, suffixDelimiterConstant)) || suffix == suffixDelimiterConstant {
		return Path{}, newArgumentError(ErrInvalidSuffix, operation, path, suffix)
	}

	name := path.Name()
	if len(name) == 0 {
		return Path{}, newStructuralError(ErrMissingName, operation, path)
	}

	return path.withLeaf(strings.TrimSuffix(name, path.Suffix()) + suffix), nil
}
