// Package constants defines shared constants for the cloudlint validation engine.
package constants

import "time"

// AllowedExtensions lists the file extensions accepted by the input guard.
// Comparison is case-insensitive.
var AllowedExtensions = []string{".yaml", ".yml"}

// AllowedMIMETypes lists the declared content types accepted by the input
// guard for uploaded documents. text/plain is intentionally excluded: a
// disguised file should not pass the guard by claiming a generic type.
var AllowedMIMETypes = []string{
	"application/yaml",
	"application/x-yaml",
	"text/yaml",
	"text/x-yaml",
	"text/vnd.yaml",
}

// Environment variable names for runtime configuration.
const (
	// MaxConcurrencyEnvVar bounds simultaneous external tool invocations.
	MaxConcurrencyEnvVar = "CLOUDLINT_MAX_CONCURRENCY"

	// ToolTimeoutEnvVar sets the per-invocation tool timeout (Go duration syntax).
	ToolTimeoutEnvVar = "CLOUDLINT_TOOL_TIMEOUT"

	// SpectralRulesetEnvVar sets the default Spectral ruleset path.
	SpectralRulesetEnvVar = "CLOUDLINT_SPECTRAL_RULESET"
)

// Defaults for runtime configuration.
const (
	// DefaultMaxConcurrency is the concurrency gate capacity when
	// CLOUDLINT_MAX_CONCURRENCY is unset or invalid.
	DefaultMaxConcurrency = 4

	// MaxConcurrencyLimit is the upper bound accepted from the environment.
	MaxConcurrencyLimit = 64

	// DefaultToolTimeout is the per-invocation timeout for external tools.
	DefaultToolTimeout = 30 * time.Second
)

// External tool identities.
const (
	// SpectralToolID identifies the Spectral linter.
	SpectralToolID = "spectral"

	// YamllintToolID identifies the yamllint linter.
	YamllintToolID = "yamllint"
)

// CLIBinaryName is the name of the cloudlint executable.
const CLIBinaryName = "cloudlint"
