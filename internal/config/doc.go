// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// which is how OAuth client secrets are usually supplied. Command-line flags are
// layered on top through Overrides.
package config
