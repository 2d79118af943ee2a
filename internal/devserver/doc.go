// Package devserver serves the public directory during development and rebuilds the
// site when post sources change.
//
// Requests for a directory path are answered with that directory's index.html so pages
// written as <path>/index.html are reachable without a trailing slash. Everything else
// falls through to a static file server. Request logging, panic recovery and a
// Prometheus /metrics endpoint wrap the file handlers.
package devserver
