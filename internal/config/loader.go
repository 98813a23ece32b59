package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RelPath is the configuration file location relative to the project root.
const RelPath = ".vibe/vibe.yaml"

// Path returns the config file path for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, ".vibe", "vibe.yaml")
}

// rawConfig mirrors the YAML schema before defaults and validation.
// MaxRetries is a pointer so an explicit 0 is distinguishable from absent.
type rawConfig struct {
	Checks *struct {
		Steps      []CheckStep `yaml:"steps"`
		MaxRetries *int        `yaml:"max_retries"`
	} `yaml:"checks"`
}

// Load reads the project configuration from .vibe/vibe.yaml under the given
// root. A missing file yields an empty config and found=false; a file that
// exists but is malformed is an error.
func Load(projectRoot string) (*ProjectConfig, bool, error) {
	path := Path(projectRoot)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, false, nil
		}
		return nil, false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, true, fmt.Errorf("parsing config YAML %s: %w", path, err)
	}

	if errs := validate(&raw); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, true, fmt.Errorf("invalid config %s: %s", path, strings.Join(msgs, "; "))
	}

	cfg := &ProjectConfig{}
	if raw.Checks != nil {
		checks := &ChecksConfig{
			Steps:      raw.Checks.Steps,
			MaxRetries: DefaultMaxRetries,
		}
		if raw.Checks.MaxRetries != nil {
			checks.MaxRetries = *raw.Checks.MaxRetries
		}
		cfg.Checks = checks
	}
	return cfg, true, nil
}
