package gridsearch

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrid      = errors.New("invalid grid")
	ErrInvalidEndpoint  = errors.New("invalid endpoint")
	ErrNoPath           = errors.New("no path found")
	ErrIllegalStep      = errors.New("step called on a finished search")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)

// EndpointError describes why a start or end cell was rejected.
type EndpointError struct {
	Kind error
	Msg  string
}

func (e *EndpointError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *EndpointError) Unwrap() error { return e.Kind }

func endpointf(format string, args ...any) error {
	return &EndpointError{Kind: ErrInvalidEndpoint, Msg: fmt.Sprintf(format, args...)}
}
