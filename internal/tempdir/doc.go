// Package tempdir creates uniquely named scratch directories and guarantees
// their removal. Directories are created through an afero filesystem so the
// same code runs against the host disk and an in-memory filesystem.
package tempdir
