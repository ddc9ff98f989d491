// Package fuzzy looks up methods on types that are only known at
// runtime, matching them by parameter types rather than by exact name.
package fuzzy

import (
	"reflect"
	"strings"

	"github.com/karagenc/protocollib-go/internal/sync"
)

// MethodResolver resolves the method of target that best matches
// name and params. Implementations must be deterministic.
type MethodResolver interface {
	Resolve(target any, name string, params ...reflect.Type) (*Method, error)
}

type resolver struct{}

// NewResolver returns the default MethodResolver, backed by Reflection.
func NewResolver() MethodResolver { return resolver{} }

func (resolver) Resolve(target any, name string, params ...reflect.Type) (*Method, error) {
	r, err := FromObject(target)
	if err != nil {
		return nil, err
	}
	return r.MethodByParameters(name, params...)
}

// Reflection inspects the exported method set of a type.
type Reflection struct {
	typ reflect.Type
}

// FromType returns a Reflection over the methods of typ.
func FromType(typ reflect.Type) *Reflection {
	return &Reflection{typ: typ}
}

// FromObject returns a Reflection over the methods of v's dynamic type.
func FromObject(v any) (*Reflection, error) {
	if v == nil {
		return nil, errNilTarget
	}
	return FromType(reflect.TypeOf(v)), nil
}

func (r *Reflection) Type() reflect.Type { return r.typ }

// MethodByParameters returns a method accepting params.
//
// Methods whose parameter types equal params are preferred over methods
// whose parameters params are merely assignable to. Among methods of the
// same rank, the one named name (case-insensitively) wins, then the
// first in lexicographic order.
func (r *Reflection) MethodByParameters(name string, params ...reflect.Type) (*Method, error) {
	var exact, assignable []reflect.Method

	for i := 0; i < r.typ.NumMethod(); i++ {
		m := r.typ.Method(i)
		mt := m.Type
		if mt.NumIn()-1 != len(params) {
			continue
		}

		isExact, isAssignable := true, true
		for j, p := range params {
			in := mt.In(j + 1)
			if in == p {
				continue
			}
			isExact = false
			if p == nil || !p.AssignableTo(in) {
				isAssignable = false
				break
			}
		}

		switch {
		case isExact:
			exact = append(exact, m)
		case isAssignable:
			assignable = append(assignable, m)
		}
	}

	if m, ok := pick(name, exact); ok {
		return newMethod(r.typ, m), nil
	}
	if m, ok := pick(name, assignable); ok {
		return newMethod(r.typ, m), nil
	}
	return nil, &MethodNotFoundError{Type: r.typ, Name: name, Params: params}
}

func pick(name string, methods []reflect.Method) (reflect.Method, bool) {
	for _, m := range methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	if len(methods) > 0 {
		return methods[0], true
	}
	return reflect.Method{}, false
}

// CachedMethod resolves a method once per receiver type and remembers it
// for as long as the CachedMethod lives.
type CachedMethod struct {
	Name   string
	Params []reflect.Type

	// reflect.Type -> *Method
	methods sync.Map
}

func NewCachedMethod(name string, params ...reflect.Type) *CachedMethod {
	return &CachedMethod{Name: name, Params: params}
}

// Get returns the method for target's type, resolving it with resolver
// on first use. Failed resolutions are not cached.
func (c *CachedMethod) Get(resolver MethodResolver, target any) (*Method, error) {
	if target == nil {
		return nil, errNilTarget
	}

	typ := reflect.TypeOf(target)
	if m, ok := c.methods.Load(typ); ok {
		return m.(*Method), nil
	}

	m, err := resolver.Resolve(target, c.Name, c.Params...)
	if err != nil {
		return nil, err
	}

	// Resolution is deterministic. If two goroutines race here,
	// either result is fine.
	actual, _ := c.methods.LoadOrStore(typ, m)
	return actual.(*Method), nil
}
