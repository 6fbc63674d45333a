// Package report renders command results as plain text, YAML, JSON or TOML.
package report
