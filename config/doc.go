// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// It only tunes the process (logging and output shape); the transport data
// itself always arrives on standard input.
package config
