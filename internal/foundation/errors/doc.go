// Package errors provides the classified error primitives used across sitestamp.
//
// Errors carry a category and a severity so the orchestrator can tell a fatal
// configuration problem apart from a recoverable per-file problem, and so the CLI
// can pick an exit code without string matching.
//
// Key features:
//   - ErrorCategory: broad classification (config, template, asset, package, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and stderr presentation
//
// Example usage:
//
//	err := errors.ConfigError("configuration is not valid JSON").
//		WithCause(parseErr).
//		WithContext("path", cfgPath).
//		Build()
package errors
