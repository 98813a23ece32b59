// Package config loads the per-project configuration from .vibe/vibe.yaml.
package config

// CheckStep is one named shell command run after an assistant invocation to
// validate its result. The command string is passed verbatim to the shell.
type CheckStep struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

// ChecksConfig holds the ordered check steps and the retry budget.
// Insertion order is execution order.
type ChecksConfig struct {
	Steps      []CheckStep
	MaxRetries int
}

// ProjectConfig is the root project configuration. Checks is nil when the
// config file declares no checks section.
type ProjectConfig struct {
	Checks *ChecksConfig
}

// DefaultMaxRetries applies when checks.max_retries is not set.
const DefaultMaxRetries = 10
