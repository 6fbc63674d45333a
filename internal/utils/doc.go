// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables and zap logging for the CLI, the
// command context accessor that carries the resolved path flavor and report
// format between commands, and the process executor used by scratch runs.
package utils
