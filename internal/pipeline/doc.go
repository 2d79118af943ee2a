// Package pipeline drives a site build: it loads the post manifest, resolves and sorts
// the posts, renders every derived asset and writes them under the public directory.
//
// A build is a fixed sequence of named stages run on a single goroutine. The first
// failing stage aborts the build; nothing is retried. Stage timing and results are
// reported to a metrics.Recorder and logged with slog.
package pipeline
