package pathvalue

const (
	pushSuffixOperationConstant = "push-suffix"
)

// PushSuffix adds suffix to the end of the suffix chain: "a/b.tar" with ".gz"
// becomes "a/b.tar.gz". The suffix follows the WithSuffix grammar.
func (path Path) PushSuffix(suffix string) (Path, error) {
	previousSuffix := path.Suffix()
	replaced, replaceError := path.withSuffix(pushSuffixOperationConstant, suffix)
	if replaceError != nil {
		return Path{}, replaceError
	}
	return replaced.withStem(pushSuffixOperationConstant, suffix, replaced.Stem()+previousSuffix)
}

// PopSuffix strips the last suffix: "b.txt" becomes "b". Names without a suffix,
// such as "b." or ".bashrc", and paths without a name are returned unchanged.
func (path Path) PopSuffix() Path {
	if len(path.Suffix()) == 0 {
		return path
	}
	return path.withLeaf(path.Stem())
}

// MustPushSuffix is like PushSuffix but panics on error.
func (path Path) MustPushSuffix(suffix string) Path {
	return must(path.PushSuffix(suffix))
}
