package structure

import (
	"reflect"

	"github.com/karagenc/protocollib-go/internal/sync"
)

// FieldSlot is the position and declared type of one struct field.
type FieldSlot struct {
	Index int
	Type  reflect.Type
}

// layout is the field list of a struct type, discovered once and shared
// by every Modifier over that type.
type layout struct {
	structType reflect.Type
	fields     []FieldSlot

	mu       sync.RWMutex
	subtypes map[reflect.Type][]FieldSlot
}

// Keyed by struct type. Never invalidated; a struct type's fields can't change.
var layouts sync.Map

func layoutOf(structType reflect.Type) *layout {
	if l, ok := layouts.Load(structType); ok {
		return l.(*layout)
	}

	nf := structType.NumField()
	l := &layout{
		structType: structType,
		fields:     make([]FieldSlot, nf),
		subtypes:   make(map[reflect.Type][]FieldSlot),
	}
	for i := 0; i < nf; i++ {
		l.fields[i] = FieldSlot{Index: i, Type: structType.Field(i).Type}
	}

	// Another goroutine may have scanned the same type meanwhile.
	// Both results are identical; keep whichever got stored first.
	actual, _ := layouts.LoadOrStore(structType, l)
	return actual.(*layout)
}

func (l *layout) filter(fieldType reflect.Type) []FieldSlot {
	if fieldType == nil {
		return nil
	}

	l.mu.RLock()
	slots, ok := l.subtypes[fieldType]
	l.mu.RUnlock()
	if ok {
		return slots
	}

	for _, slot := range l.fields {
		if slot.Type == fieldType {
			slots = append(slots, slot)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.subtypes[fieldType]; ok {
		return existing
	}
	l.subtypes[fieldType] = slots
	return slots
}
