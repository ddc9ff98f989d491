package fuzzy

import (
	"fmt"
	"reflect"
	"strings"
)

var errNilTarget = fmt.Errorf("fuzzy: target is nil")

// MethodNotFoundError is returned when no method of the target
// accepts the requested parameter types.
type MethodNotFoundError struct {
	Type   reflect.Type
	Name   string
	Params []reflect.Type
}

func (e *MethodNotFoundError) Error() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fuzzy: unable to find method %s(%s) in %s", e.Name, strings.Join(params, ", "), e.Type)
}

// InvocationError wraps an error returned by, or a panic raised in,
// a reflectively called method.
type InvocationError struct {
	Method string
	Cause  error
}

func (e *InvocationError) Error() string {
	return "fuzzy: error occurred in method " + e.Method + ": " + e.Cause.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// ArgumentError is returned when an argument or a receiver can't be
// passed to a method.
type ArgumentError struct {
	Method string
	Index  int
	Want   reflect.Type
	Got    reflect.Type
}

func (e *ArgumentError) Error() string {
	got := "<nil>"
	if e.Got != nil {
		got = e.Got.String()
	}
	if e.Index < 0 {
		return fmt.Sprintf("fuzzy: incorrect receiver for method %s: want %s, got %s", e.Method, e.Want, got)
	}
	return fmt.Sprintf("fuzzy: incorrect argument %d for method %s: want %s, got %s", e.Index, e.Method, e.Want, got)
}
