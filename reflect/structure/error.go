package structure

import (
	"fmt"
	"reflect"
)

var (
	ErrNoTarget      = fmt.Errorf("structure: no target bound")
	errNotStruct     = fmt.Errorf("structure: struct or pointer to struct expected")
	errNilTarget     = fmt.Errorf("structure: target is nil")
	errTypeMismatch  = fmt.Errorf("value type doesn't match declared type")
	errLayoutChanged = fmt.Errorf("target type doesn't match layout")
)

// FieldIndexError is returned when an index is outside the
// applicable fields of a Modifier.
type FieldIndexError struct {
	Index int
	Size  int
}

func (e *FieldIndexError) Error() string {
	return fmt.Sprintf("structure: field index %d out of bounds (size %d)", e.Index, e.Size)
}

// AccessError means the field cannot be reached through reflection,
// which in Go means it is unexported. This is a property of the packet
// type itself and retrying will never succeed.
type AccessError struct {
	Struct reflect.Type
	Field  reflect.StructField
	Write  bool
}

func (e *AccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("structure: cannot %s field %d (%s) of %s: access denied", op, e.Field.Index[0], e.Field.Type, e.Struct)
}

// ArgumentError is returned when a value's runtime shape doesn't
// match what the field or converter declares.
type ArgumentError struct {
	err  error
	Want reflect.Type
	Got  reflect.Type
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("structure: invalid argument: want %s, got %s: %v", typeString(e.Want), typeString(e.Got), e.err)
}

// NewArgumentError is for converters reporting a value of the wrong shape.
func NewArgumentError(want, got reflect.Type, err error) *ArgumentError {
	if err == nil {
		err = errTypeMismatch
	}
	return &ArgumentError{err: err, Want: want, Got: got}
}

func (e *ArgumentError) Unwrap() error {
	return e.err
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
