// Package errors provides the classified error primitives used across blogbuilder.
//
// Every fault that can abort a build is wrapped in a ClassifiedError so the CLI can
// pick an exit code and a log level without string matching.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, filesystem, parse, render, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and presentation for the command line
//
// Example usage:
//
//	err := errors.FileSystemError("read source post").
//		WithContext("path", path).
//		WithCause(originalErr).
//		Build()
package errors
