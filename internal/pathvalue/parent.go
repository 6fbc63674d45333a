package pathvalue

const (
	withParentOperationConstant = "with-parent"
	minimumParentNodeCount      = 2
)

// WithParent replaces the immediate parent of the leaf with newParent.
//
// newParent is parsed as a fragment and joined in place, so it may span several
// components or re-anchor the result: "a/b/c/d/e" with parent "/z" becomes "/z/e".
// Paths with fewer than two changeable nodes have no parent slot and fail.
func (path Path) WithParent(newParent string) (Path, error) {
	if path.ChangeableNodeCount() < minimumParentNodeCount {
		return Path{}, newStructuralError(ErrTooFewNodes, withParentOperationConstant, path)
	}
	return path.spliceAboveLeaf(len(path.parts)-2, newParent), nil
}

// PushParent inserts newNode directly above the leaf: "a/b" with node "d" becomes "a/d/b".
// Paths without a name have no leaf and are returned unchanged.
func (path Path) PushParent(newNode string) Path {
	if len(path.Name()) == 0 {
		return path
	}
	return path.spliceAboveLeaf(len(path.parts)-1, newNode)
}

// PopParent removes the immediate parent of the leaf: "a/b" becomes "b".
// Paths with fewer than two changeable nodes are returned unchanged.
func (path Path) PopParent() Path {
	if path.ChangeableNodeCount() < minimumParentNodeCount {
		return path
	}
	return path.spliceAboveLeaf(len(path.parts)-2, "")
}

// MustWithParent is like WithParent but panics on error.
func (path Path) MustWithParent(newParent string) Path {
	return must(path.WithParent(newParent))
}

// spliceAboveLeaf keeps parts[:keep], joins fragment onto them and re-attaches the
// current leaf as the final component.
func (path Path) spliceAboveLeaf(keep int, fragment string) Path {
	leaf := path.parts[len(path.parts)-1]
	prefix := path.withParts(path.parts[:keep])
	return prefix.Join(fragment).appendParts(leaf)
}
