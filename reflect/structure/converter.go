package structure

import "reflect"

// EquivalentConverter maps between the generic value stored in a
// packet field and the specific value callers work with.
type EquivalentConverter[T any] interface {
	// Generic converts a specific value to the declared field type.
	Generic(specific T) (any, error)

	// Specific converts a field value to T.
	Specific(generic any) (T, error)

	// SpecificType is only used in diagnostics.
	SpecificType() reflect.Type
}

// ConverterFunc builds an EquivalentConverter out of two functions.
// Neither function is called with a nil value once the converter is
// wrapped with IgnoreNull.
type ConverterFunc[T any] struct {
	ToGeneric  func(specific T) (any, error)
	ToSpecific func(generic any) (T, error)
}

func (c ConverterFunc[T]) Generic(specific T) (any, error) {
	return c.ToGeneric(specific)
}

func (c ConverterFunc[T]) Specific(generic any) (T, error) {
	return c.ToSpecific(generic)
}

func (c ConverterFunc[T]) SpecificType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

type ignoreNull[T any] struct {
	delegate EquivalentConverter[T]
}

// IgnoreNull wraps delegate so that nil maps to nil in both directions.
// The delegate only ever sees non-nil values.
func IgnoreNull[T any](delegate EquivalentConverter[T]) EquivalentConverter[T] {
	if _, ok := delegate.(ignoreNull[T]); ok {
		return delegate
	}
	return ignoreNull[T]{delegate: delegate}
}

func (c ignoreNull[T]) Generic(specific T) (any, error) {
	if IsNil(specific) {
		return nil, nil
	}
	return c.delegate.Generic(specific)
}

func (c ignoreNull[T]) Specific(generic any) (T, error) {
	if IsNil(generic) {
		var zero T
		return zero, nil
	}
	return c.delegate.Specific(generic)
}

func (c ignoreNull[T]) SpecificType() reflect.Type {
	return c.delegate.SpecificType()
}

// IsNil reports whether v is nil, including typed nils such as a nil
// pointer stored in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
