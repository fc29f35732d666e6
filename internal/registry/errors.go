package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority rejects unknown best-recipe priority modes.
var ErrInvalidPriority = errors.New("invalid recipe priority")

// NotFoundError reports an unknown ticker, planet, system or exchange.
type NotFoundError struct {
	Kind string // "material", "planet", ...
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}

// AmbiguityError reports user input matching more than one entity.
type AmbiguityError struct {
	Input   string
	Matches []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%q matches %s", e.Input, strings.Join(e.Matches, ", "))
}
