// errors.go defines sentinel errors for dispatch failures.
//
// These cover the routing layer itself; domain failures (no document,
// paragraph out of range, ...) are the editor package's sentinels and
// pass through the router unchanged.

package action

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTool is returned when the tool name is not in the dispatch table.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidAction is returned when the action is not valid for the tool.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMissingParameter is returned when a required parameter is absent.
	ErrMissingParameter = errors.New("missing required parameter")
)

// InvalidActionError reports an action outside a tool's action table. The
// error envelope includes the tool's valid actions so clients can correct
// the call.
type InvalidActionError struct {
	Tool   string
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q for tool %q", e.Action, e.Tool)
}

func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }

// MissingParameterError names the absent required parameter.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "missing required parameter: " + e.Name
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }
