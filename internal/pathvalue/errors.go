package pathvalue

import (
	"errors"
	"fmt"
)

const (
	invalidArgumentMessageConstant      = "invalid argument"
	missingNameMessageConstant          = "path has no name"
	tooFewNodesMessageConstant          = "path has fewer than two changeable nodes"
	emptyArgumentMessageConstant        = "argument is empty"
	separatorInArgumentMessageConstant  = "argument contains a path separator"
	invalidSuffixMessageConstant        = "suffix must be empty or start with a dot followed by text"
	invalidNameMessageConstant          = "name must be exactly one path component"
	argumentErrorTemplateConstant       = "%s: %s(%q) on path %q: %s"
	structuralErrorTemplateConstant     = "%s: %s on path %q: %s"
	nilArgumentErrorDescriptionConstant = "(*argumentError)(nil)"
)

var (
	// ErrInvalidArgument is matched by every error returned from path manipulation.
	ErrInvalidArgument = errors.New(invalidArgumentMessageConstant)

	// ErrMissingName reports an operation on a path without a final component.
	ErrMissingName = errors.New(missingNameMessageConstant)
	// ErrTooFewNodes reports a parent rewrite on a path without a parent slot.
	ErrTooFewNodes = errors.New(tooFewNodesMessageConstant)

	// ErrEmptyArgument reports an empty replacement value.
	ErrEmptyArgument = errors.New(emptyArgumentMessageConstant)
	// ErrSeparatorInArgument reports a replacement value containing a separator.
	ErrSeparatorInArgument = errors.New(separatorInArgumentMessageConstant)
	// ErrInvalidSuffix reports a suffix that violates the suffix grammar.
	ErrInvalidSuffix = errors.New(invalidSuffixMessageConstant)
	// ErrInvalidName reports a name that does not form a single component.
	ErrInvalidName = errors.New(invalidNameMessageConstant)
)

type argumentError struct {
	condition   error
	operation   string
	path        string
	argument    string
	hasArgument bool
}

var _ error = (*argumentError)(nil)

func newStructuralError(condition error, operation string, path Path) error {
	return &argumentError{
		condition: condition,
		operation: operation,
		path:      path.String(),
	}
}

func newArgumentError(condition error, operation string, path Path, argument string) error {
	return &argumentError{
		condition:   condition,
		operation:   operation,
		path:        path.String(),
		argument:    argument,
		hasArgument: true,
	}
}

func (err *argumentError) Error() string {
	if err == nil {
		return nilArgumentErrorDescriptionConstant
	}
	if err.hasArgument {
		return fmt.Sprintf(argumentErrorTemplateConstant, invalidArgumentMessageConstant, err.operation, err.argument, err.path, err.condition)
	}
	return fmt.Sprintf(structuralErrorTemplateConstant, invalidArgumentMessageConstant, err.operation, err.path, err.condition)
}

func (err *argumentError) Unwrap() []error {
	return []error{ErrInvalidArgument, err.condition}
}

// IsStructural reports whether err stems from the shape of the path itself.
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingName) || errors.Is(err, ErrTooFewNodes)
}

// IsArgument reports whether err stems from the supplied argument.
func IsArgument(err error) bool {
	return errors.Is(err, ErrEmptyArgument) ||
		errors.Is(err, ErrSeparatorInArgument) ||
		errors.Is(err, ErrInvalidSuffix) ||
		errors.Is(err, ErrInvalidName)
}
