package fuzzy

import (
	"fmt"
	"reflect"
)

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

// Method is a method resolved on a concrete receiver type.
type Method struct {
	Name     string
	Receiver reflect.Type

	// Type of the method's function, receiver included as the first argument.
	Type reflect.Type

	fn reflect.Value
}

func newMethod(receiver reflect.Type, m reflect.Method) *Method {
	return &Method{
		Name:     m.Name,
		Receiver: receiver,
		Type:     m.Type,
		fn:       m.Func,
	}
}

// MethodFunc returns a Method that calls fn. The first parameter of fn
// is the receiver, as in a method expression such as (*T).Name.
func MethodFunc(name string, fn any) (*Method, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() || rv.Type().NumIn() == 0 {
		return nil, &ArgumentError{Method: name, Index: -1, Got: reflect.TypeOf(fn)}
	}
	return &Method{
		Name:     name,
		Receiver: rv.Type().In(0),
		Type:     rv.Type(),
		fn:       rv,
	}, nil
}

// Call invokes the method on receiver.
//
// If the method's last result is an error and it is non-nil, it is
// returned as an *InvocationError and is not included in results.
// A panic in the method is recovered and returned the same way.
func (m *Method) Call(receiver any, args ...any) (results []any, err error) {
	in, err := m.arguments(receiver, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			results = nil
			err = &InvocationError{Method: m.Name, Cause: cause}
		}
	}()

	var out []reflect.Value
	if m.Type.IsVariadic() {
		out = m.fn.CallSlice(in)
	} else {
		out = m.fn.Call(in)
	}

	if n := len(out); n > 0 && m.Type.Out(n-1) == errorInterface {
		last := out[n-1]
		out = out[:n-1]
		if !last.IsNil() {
			return nil, &InvocationError{Method: m.Name, Cause: last.Interface().(error)}
		}
	}

	results = make([]any, len(out))
	for i, rv := range out {
		results[i] = rv.Interface()
	}
	return
}

func (m *Method) arguments(receiver any, args []any) ([]reflect.Value, error) {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() || rv.Type() != m.Receiver {
		var got reflect.Type
		if rv.IsValid() {
			got = rv.Type()
		}
		return nil, &ArgumentError{Method: m.Name, Index: -1, Want: m.Receiver, Got: got}
	}

	numIn := m.Type.NumIn() - 1
	if len(args) != numIn {
		return nil, &ArgumentError{
			Method: m.Name,
			Index:  len(args),
			Want:   m.Type,
		}
	}

	in := make([]reflect.Value, 0, 1+numIn)
	in = append(in, rv)

	for i, arg := range args {
		want := m.Type.In(i + 1)
		if arg == nil {
			switch want.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				in = append(in, reflect.Zero(want))
				continue
			}
			return nil, &ArgumentError{Method: m.Name, Index: i, Want: want}
		}

		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(want) {
			return nil, &ArgumentError{Method: m.Name, Index: i, Want: want, Got: av.Type()}
		}
		in = append(in, av)
	}
	return in, nil
}
