// Package metrics records build and dev-server metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay optional:
//
//	opts := pipeline.Options{Recorder: metrics.NoopRecorder{}}
//
// The dev server swaps in a PrometheusRecorder backed by its own registry and exposes
// it on /metrics through HTTPHandler.
package metrics
