// Package git reads version-control metadata for the site sources.
package git
