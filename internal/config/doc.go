// Package config defines the configuration surface of shot-diff: the three
// pipeline tunables (diff threshold, minimum area, padding), the highlight
// color, and the settings of the surrounding CLI and HTTP service.
//
// Configuration is assembled once at startup, in layers: defaults first,
// then an optional YAML file, then CLI flags. The result is validated with
// Validate and passed through the application unchanged. Validation
// failures are sentinel errors that callers match with errors.Is.
package config
