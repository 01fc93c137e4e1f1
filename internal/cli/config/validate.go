package config

import (
	"fmt"
	"slices"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks the non-structure settings. The structure itself is
// checked by core.Validate when it is built.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", c.MaxAttempts)
	}
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (valid: %v)", c.OutputFormat, OutputFormats)
	}
	return nil
}
