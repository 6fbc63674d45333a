// Package pathvalue implements an immutable, flavor-aware filesystem path value.
//
// A Path decomposes into a drive, a root, an ordered list of components and a
// final name that further splits into a stem and a chain of suffixes. Two
// flavors are provided: Posix and Windows. Every manipulation method returns a
// new Path and leaves the receiver untouched, so values can be shared freely.
//
// Beyond the usual accessors the package adds stem surgery (WithStem,
// PrependStem, AppendStem), parent surgery (WithParent, PushParent, PopParent)
// and suffix chain helpers (PushSuffix, PopSuffix). Failures are reported with
// errors that match ErrInvalidArgument.
package pathvalue
