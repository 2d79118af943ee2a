// Package errors provides the classified error primitives used across sitegen.
//
// Every failure that can abort a build is represented as a ClassifiedError carrying
// a category, a severity and a small bag of structured context. The CLI adapter maps
// categories to process exit codes so the person running the build sees which
// class of problem stopped it.
//
// Key features:
//   - ErrorCategory: broad classification (config, manifest, filesystem, validation, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "read post content").
//		WithContext("file", entry.File).
//		Fatal().
//		Build()
package errors
