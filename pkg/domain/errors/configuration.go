package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks errors that must stop the gateway at startup.
var ErrConfiguration = errors.New("configuration error")

type configurationError struct {
	Component string
	Reason    string
}

func (e *configurationError) Error() string {
	return fmt.Sprintf("%s: invalid %s configuration: %s", ErrConfiguration.Error(), e.Component, e.Reason)
}

func (e *configurationError) Unwrap() error {
	return ErrConfiguration
}

func NewConfigurationError(component, format string, args ...interface{}) error {
	return &configurationError{
		Component: component,
		Reason:    fmt.Sprintf(format, args...),
	}
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
