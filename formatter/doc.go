// Package formatter assembles response documents and prints them as JSON.
//
// This package is organized into:
// - builder.go: document tree construction with checked nesting
// - json.go: JSON serialization
package formatter
