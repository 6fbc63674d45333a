package pathvalue

const (
	withStemOperationConstant    = "with-stem"
	prependStemOperationConstant = "prepend-stem"
	appendStemOperationConstant  = "append-stem"
)

// WithStem replaces the stem and keeps the current suffix.
//
// It fails for paths without a name (empty, "." or anchor only), for an empty
// stem and for a stem containing a separator. "a/b.tar.gz" with stem "d"
// becomes "a/d.gz".
func (path Path) WithStem(stem string) (Path, error) {
	return path.withStem(withStemOperationConstant, stem, stem)
}

// PrependStem puts prefix in front of the stem. An empty prefix returns an equal path.
func (path Path) PrependStem(prefix string) (Path, error) {
	return path.withStem(prependStemOperationConstant, prefix, prefix+path.Stem())
}

// AppendStem puts postfix after the stem and before the suffix.
func (path Path) AppendStem(postfix string) (Path, error) {
	return path.withStem(appendStemOperationConstant, postfix, path.Stem()+postfix)
}

func (path Path) withStem(operation string, argument string, stem string) (Path, error) {
	if len(path.Name()) == 0 {
		return Path{}, newStructuralError(ErrMissingName, operation, path)
	}
	if len(stem) == 0 {
		return Path{}, newArgumentError(ErrEmptyArgument, operation, path, argument)
	}
	if path.Flavor().ContainsSeparator(stem) {
		return Path{}, newArgumentError(ErrSeparatorInArgument, operation, path, argument)
	}
	return path.withName(operation, argument, stem+path.Suffix())
}

// MustWithStem is like WithStem but panics on error.
func (path Path) MustWithStem(stem string) Path {
	return must(path.WithStem(stem))
}

// MustPrependStem is like PrependStem but panics on error.
func (path Path) MustPrependStem(prefix string) Path {
	return must(path.PrependStem(prefix))
}

// MustAppendStem is like AppendStem but panics on error.
func (path Path) MustAppendStem(postfix string) Path {
	return must(path.AppendStem(postfix))
}

func must(result Path, err error) Path {
	if err != nil {
		panic(err)
	}
	return result
}
