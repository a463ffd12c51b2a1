package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every *ConfigError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError reports which input quantity made a calculation impossible.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v: %s", e.Field, e.Value, e.Reason)
}

// Is lets callers test against ErrInvalidConfiguration without a type assertion.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
