// Package manipulate provides the command-line surface for single path
// operations and path inspection.
package manipulate
