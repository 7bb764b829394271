package types

import (
	"errors"
)

var (
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrDuplicateFilter = errors.New("filter already registered")
	ErrDuplicateOrder  = errors.New("filter order already taken in phase")
	ErrFilterExecution = errors.New("filter execution failed")
	ErrInvalidPhase    = errors.New("invalid filter phase")
)

// Phase represents when a filter is executed relative to the backend call
type Phase string

const (
	Pre   Phase = "pre"
	Route Phase = "route"
	Post  Phase = "post"
	Error Phase = "error"
)

func (p Phase) Valid() bool {
	switch p {
	case Pre, Route, Post, Error:
		return true
	}
	return false
}

// Phases lists every phase in execution order.
var Phases = []Phase{Pre, Route, Post, Error}

// FilterConfig is the configuration block of a single filter
type FilterConfig struct {
	Name     string                 `mapstructure:"name" json:"name"`
	Enabled  bool                   `mapstructure:"enabled" json:"enabled"`
	Settings map[string]interface{} `mapstructure:",remain" json:"settings"`
}

// Outcome is the observable result of a single filter invocation
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomePassed  Outcome = "passed"
	OutcomeBlocked Outcome = "blocked"
	OutcomeFinal   Outcome = "final"
	OutcomeError   Outcome = "error"
)
