package config

import "fmt"

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validate checks a parsed config for structural errors. It returns every
// error found (empty if valid).
func validate(raw *rawConfig) []ValidationError {
	var errs []ValidationError

	if raw.Checks == nil {
		return errs
	}

	for i, s := range raw.Checks.Steps {
		if s.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("checks.steps[%d].name", i),
				Message: "is required",
			})
		}
		if s.Command == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("checks.steps[%d].command", i),
				Message: "is required",
			})
		}
	}

	if raw.Checks.MaxRetries != nil && *raw.Checks.MaxRetries < 0 {
		errs = append(errs, ValidationError{
			Field:   "checks.max_retries",
			Message: fmt.Sprintf("must not be negative, got %d", *raw.Checks.MaxRetries),
		})
	}

	return errs
}
