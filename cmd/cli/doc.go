// Package cli constructs the pathext command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives.
// Root persistent flags select the path flavor and report encoding shared by
// every path command.
package cli
