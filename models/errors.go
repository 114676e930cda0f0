// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidYearRange = errors.New("invalid year range")
	ErrEmptyGroup       = errors.New("empty country group")
	ErrInvalidThreshold = errors.New("invalid agreement threshold")
	ErrInvalidPolicy    = errors.New("invalid policy")
)

// ConfigError reports a configuration value rejected before any computation
// runs. Err is one of the sentinel errors above.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v: %s", e.Field, e.Err, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError builds a ConfigError with a formatted reason
func NewConfigError(field string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
