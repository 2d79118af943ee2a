// Package manifest decodes the ordered list of posts that make up the blog.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

// Descriptor identifies one post source file plus optional field overrides.
// Identity is File.
type Descriptor struct {
	File    string `json:"file"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Load reads and decodes the manifest at path.
func Load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read manifest").
			Fatal().
			WithContext("path", path).
			Build()
	}
	descriptors, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryManifest, "manifest is not valid JSON").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return descriptors, nil
}

// Parse normalizes a raw manifest payload.
//
// Invalid JSON is an error. A valid payload whose top level is not an array yields an
// empty result. Array elements are kept when they are a string (the file name) or an
// object with a string "file"; every other element is dropped. Order is preserved.
func Parse(data []byte) ([]Descriptor, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	entries, ok := payload.([]any)
	if !ok {
		return []Descriptor{}, nil
	}

	out := make([]Descriptor, 0, len(entries))
	for _, entry := range entries {
		if d, ok := normalizeEntry(entry); ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func normalizeEntry(entry any) (Descriptor, bool) {
	switch v := entry.(type) {
	case string:
		return Descriptor{File: v}, true
	case map[string]any:
		file, ok := v["file"].(string)
		if !ok {
			return Descriptor{}, false
		}
		return Descriptor{
			File:    file,
			Title:   stringField(v, "title"),
			Summary: stringField(v, "summary"),
			Date:    stringField(v, "date"),
		}, true
	default:
		return Descriptor{}, false
	}
}

// stringField returns obj[key] when it is a string. Non-string overrides are ignored.
func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// HasOverrides reports whether any override field is set.
func (d Descriptor) HasOverrides() bool {
	return d.Title != "" || d.Summary != "" || d.Date != ""
}
