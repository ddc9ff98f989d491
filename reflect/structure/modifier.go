// Package structure provides positional, typed access to the fields of
// struct values whose field names are not known to the caller.
//
// A Modifier is a view over the fields of one struct type, optionally
// narrowed down to the fields of a single declared type and optionally
// equipped with a converter. The field layout is discovered once per
// struct type and shared by every Modifier created from it, so binding
// a Modifier to another value of the same type with WithTarget costs
// nothing but an allocation.
//
// Modifiers are immutable. They are not safe for concurrent use when
// the bound target is written to.
package structure

import (
	"reflect"
)

// Modifier reads and writes the fields of a struct by their position
// among the fields it applies to.
type Modifier[T any] struct {
	layout    *layout
	fieldType reflect.Type
	slots     []FieldSlot
	converter EquivalentConverter[T]

	handle any
	target reflect.Value
}

// New returns an unbound Modifier over every field of typ.
// typ must be a struct or a pointer to a struct.
func New(typ reflect.Type) (*Modifier[any], error) {
	if typ == nil {
		return nil, errNotStruct
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, &ArgumentError{err: errNotStruct, Got: typ}
	}

	l := layoutOf(typ)
	return &Modifier[any]{
		layout: l,
		slots:  l.fields,
	}, nil
}

// For returns a Modifier over every field of handle, bound to handle.
func For(handle any) (*Modifier[any], error) {
	if IsNil(handle) {
		return nil, &ArgumentError{err: errNilTarget}
	}
	m, err := New(reflect.TypeOf(handle))
	if err != nil {
		return nil, err
	}
	return m.WithTarget(handle)
}

// WithType returns a Modifier over the fields of m's struct type whose
// declared type is exactly fieldType, bound to the same target.
//
// If fieldType is nil, the returned Modifier is empty. This is how a
// type that doesn't exist in the running protocol version is represented.
//
// If converter is nil, values are read and written as is and must be of type U.
func WithType[U, T any](m *Modifier[T], fieldType reflect.Type, converter EquivalentConverter[U]) *Modifier[U] {
	n := &Modifier[U]{
		layout:    m.layout,
		fieldType: fieldType,
		converter: converter,
		handle:    m.handle,
		target:    m.target,
	}
	if m.layout != nil {
		n.slots = m.layout.filter(fieldType)
	}
	return n
}

// WithTarget returns a copy of m bound to handle. handle must be a
// pointer to a value of m's struct type.
func (m *Modifier[T]) WithTarget(handle any) (*Modifier[T], error) {
	if m.layout == nil {
		return nil, errNotStruct
	}

	want := reflect.PointerTo(m.layout.structType)
	if IsNil(handle) {
		return nil, &ArgumentError{err: errNilTarget, Want: want}
	}

	rv := reflect.ValueOf(handle)
	if rv.Type() != want {
		return nil, &ArgumentError{err: errLayoutChanged, Want: want, Got: rv.Type()}
	}

	n := *m
	n.handle = handle
	n.target = rv.Elem()
	return &n, nil
}

// Read returns the field at index among the applicable fields.
func (m *Modifier[T]) Read(index int) (value T, err error) {
	field, slot, err := m.field(index, false)
	if err != nil {
		return
	}

	generic := field.Interface()
	if m.converter != nil {
		return m.converter.Specific(generic)
	}
	if generic == nil {
		// Nil interface field.
		return
	}

	value, ok := generic.(T)
	if !ok {
		err = &ArgumentError{err: errTypeMismatch, Want: reflect.TypeOf((*T)(nil)).Elem(), Got: slot.Type}
	}
	return
}

// Write sets the field at index among the applicable fields.
// On error, the target is left untouched.
func (m *Modifier[T]) Write(index int, value T) error {
	field, slot, err := m.field(index, true)
	if err != nil {
		return err
	}

	var generic any = value
	if m.converter != nil {
		generic, err = m.converter.Generic(value)
		if err != nil {
			return err
		}
	}

	var rv reflect.Value
	if generic == nil {
		switch slot.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			rv = reflect.Zero(slot.Type)
		default:
			return &ArgumentError{err: errTypeMismatch, Want: slot.Type}
		}
	} else {
		rv = reflect.ValueOf(generic)
		if !rv.Type().AssignableTo(slot.Type) {
			return &ArgumentError{err: errTypeMismatch, Want: slot.Type, Got: rv.Type()}
		}
	}

	field.Set(rv)
	return nil
}

// Values reads every applicable field in order.
func (m *Modifier[T]) Values() ([]T, error) {
	values := make([]T, len(m.slots))
	for i := range values {
		v, err := m.Read(i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (m *Modifier[T]) field(index int, write bool) (field reflect.Value, slot FieldSlot, err error) {
	if !m.target.IsValid() {
		err = ErrNoTarget
		return
	}
	if index < 0 || index >= len(m.slots) {
		err = &FieldIndexError{Index: index, Size: len(m.slots)}
		return
	}

	slot = m.slots[index]
	field = m.target.Field(slot.Index)

	if !field.CanInterface() || (write && !field.CanSet()) {
		err = &AccessError{
			Struct: m.layout.structType,
			Field:  m.layout.structType.Field(slot.Index),
			Write:  write,
		}
	}
	return
}

// Size is the number of applicable fields.
func (m *Modifier[T]) Size() int { return len(m.slots) }

// Slots returns a copy of the applicable field slots, in declaration order.
func (m *Modifier[T]) Slots() []FieldSlot {
	slots := make([]FieldSlot, len(m.slots))
	copy(slots, m.slots)
	return slots
}

// Target returns the bound handle, or nil.
func (m *Modifier[T]) Target() any { return m.handle }

// FieldType is the declared type this Modifier was narrowed to.
// It is nil for a Modifier over every field and for an empty Modifier.
func (m *Modifier[T]) FieldType() reflect.Type { return m.fieldType }

// StructType returns the struct type whose fields are exposed.
func (m *Modifier[T]) StructType() reflect.Type {
	if m.layout == nil {
		return nil
	}
	return m.layout.structType
}

func (m *Modifier[T]) Converter() EquivalentConverter[T] { return m.converter }
