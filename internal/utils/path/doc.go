// Package pathutils turns raw command-line arguments into path values.
package pathutils
