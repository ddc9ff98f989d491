package structure

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID int
}

type testPacket struct {
	EntityID int32
	Name     string
	X        int32
	Item     *testItem
	Y        int32
	Items    []*testItem
	Any      any
	hidden   int32
}

var int32Type = reflect.TypeOf(int32(0))

func mustFor(t *testing.T, handle any) *Modifier[any] {
	m, err := For(handle)
	require.NoError(t, err)
	return m
}

func TestModifierAllFields(t *testing.T) {
	p := &testPacket{EntityID: 1, Name: "a", X: 2, Y: 3}
	m := mustFor(t, p)

	require.Equal(t, reflect.TypeOf(testPacket{}).NumField(), m.Size())
	assert.Equal(t, reflect.TypeOf(testPacket{}), m.StructType())
	assert.Nil(t, m.FieldType())
	assert.Same(t, p, m.Target())

	v, err := m.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// Nil interface field.
	v, err = m.Read(6)
	require.NoError(t, err)
	assert.Nil(t, v)

	slots := m.Slots()
	for i, slot := range slots {
		assert.Equal(t, i, slot.Index)
	}
	assert.Equal(t, reflect.TypeOf(""), slots[1].Type)
}

func TestModifierWithType(t *testing.T) {
	p := &testPacket{EntityID: 1, X: 2, Y: 3, hidden: 4}
	m := WithType[int32](mustFor(t, p), int32Type, nil)

	// hidden is an int32 as well.
	require.Equal(t, 4, m.Size())
	assert.Equal(t, int32Type, m.FieldType())

	values := []int32{}
	for i := 0; i < 3; i++ {
		v, err := m.Read(i)
		require.NoError(t, err)
		values = append(values, v)
	}
	assert.Equal(t, []int32{1, 2, 3}, values)

	require.NoError(t, m.Write(2, 30))
	assert.Equal(t, int32(30), p.Y)
	assert.Equal(t, int32(1), p.EntityID)
	assert.Equal(t, int32(2), p.X)
}

func TestModifierAccessDenied(t *testing.T) {
	p := &testPacket{hidden: 4}
	m := WithType[int32](mustFor(t, p), int32Type, nil)

	_, err := m.Read(3)
	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.False(t, accessErr.Write)
	assert.Equal(t, "hidden", accessErr.Field.Name)

	err = m.Write(3, 5)
	require.ErrorAs(t, err, &accessErr)
	assert.True(t, accessErr.Write)
	assert.Equal(t, int32(4), p.hidden)

	_, err = m.Values()
	require.ErrorAs(t, err, &accessErr)
}

func TestModifierBounds(t *testing.T) {
	m := WithType[string](mustFor(t, &testPacket{}), reflect.TypeOf(""), nil)
	require.Equal(t, 1, m.Size())

	for _, index := range []int{-1, 1, 100} {
		_, err := m.Read(index)
		var indexErr *FieldIndexError
		require.ErrorAs(t, err, &indexErr, "index %d", index)
		assert.Equal(t, index, indexErr.Index)
		assert.Equal(t, 1, indexErr.Size)

		err = m.Write(index, "x")
		require.ErrorAs(t, err, &indexErr)
	}
}

func TestModifierUnbound(t *testing.T) {
	m, err := New(reflect.TypeOf(testPacket{}))
	require.NoError(t, err)

	_, err = m.Read(0)
	require.ErrorIs(t, err, ErrNoTarget)
	require.ErrorIs(t, m.Write(0, int32(1)), ErrNoTarget)

	_, err = New(reflect.TypeOf(1))
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)

	_, err = New(nil)
	require.Error(t, err)

	_, err = For(nil)
	require.ErrorAs(t, err, &argErr)
}

func TestModifierWriteMismatch(t *testing.T) {
	p := &testPacket{Name: "unchanged", Item: &testItem{ID: 1}}
	m := mustFor(t, p)

	err := m.Write(1, 5)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, reflect.TypeOf(""), argErr.Want)
	assert.Equal(t, reflect.TypeOf(0), argErr.Got)
	assert.Equal(t, "unchanged", p.Name)

	// Nil can't be stored in a string.
	err = m.Write(1, nil)
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "unchanged", p.Name)

	// But it can be stored in a pointer.
	require.NoError(t, m.Write(3, nil))
	assert.Nil(t, p.Item)

	// Interface fields take anything.
	require.NoError(t, m.Write(6, 5))
	assert.Equal(t, 5, p.Any)
}

func TestModifierReadMismatch(t *testing.T) {
	m := WithType[string](mustFor(t, &testPacket{}), int32Type, nil)
	_, err := m.Read(0)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestModifierEmpty(t *testing.T) {
	p := &testPacket{}
	m := WithType[string](mustFor(t, p), nil, nil)

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Slots())
	values, err := m.Values()
	require.NoError(t, err)
	assert.Empty(t, values)

	m, err = m.WithTarget(&testPacket{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Size())

	// A type no field is declared as.
	assert.Equal(t, 0, WithType[float64](mustFor(t, p), reflect.TypeOf(0.0), nil).Size())
}

func TestModifierWithTarget(t *testing.T) {
	p1 := &testPacket{EntityID: 1}
	p2 := &testPacket{EntityID: 2}

	m1 := WithType[int32](mustFor(t, p1), int32Type, nil)
	m2, err := m1.WithTarget(p2)
	require.NoError(t, err)

	assert.Equal(t, m1.Slots(), m2.Slots())
	assert.Same(t, p1, m1.Target())
	assert.Same(t, p2, m2.Target())

	v, err := m2.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	require.NoError(t, m2.Write(0, 20))
	assert.Equal(t, int32(1), p1.EntityID)
	assert.Equal(t, int32(20), p2.EntityID)

	var argErr *ArgumentError
	_, err = m1.WithTarget(&testItem{})
	require.ErrorAs(t, err, &argErr)
	_, err = m1.WithTarget(testPacket{})
	require.ErrorAs(t, err, &argErr)
	_, err = m1.WithTarget((*testPacket)(nil))
	require.ErrorAs(t, err, &argErr)
	_, err = m1.WithTarget(nil)
	require.ErrorAs(t, err, &argErr)
}

func TestLayoutScannedOnce(t *testing.T) {
	type fresh struct {
		A int32
		B string
		C int32
	}
	typ := reflect.TypeOf(fresh{})

	var (
		wg      sync.WaitGroup
		layouts = make([]*layout, 16)
		slots   = make([][]FieldSlot, 16)
	)
	for i := range layouts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			layouts[i] = layoutOf(typ)
			slots[i] = layouts[i].filter(int32Type)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(layouts); i++ {
		assert.Same(t, layouts[0], layouts[i])
		assert.Equal(t, slots[0], slots[i])
	}
	assert.Equal(t, []FieldSlot{{0, int32Type}, {2, int32Type}}, slots[0])
}

var stringIntConverter = IgnoreNull[*string](ConverterFunc[*string]{
	ToGeneric: func(specific *string) (any, error) {
		n, err := strconv.Atoi(*specific)
		if err != nil {
			return nil, NewArgumentError(int32Type, reflect.TypeOf(""), err)
		}
		return int32(n), nil
	},
	ToSpecific: func(generic any) (*string, error) {
		s := strconv.Itoa(int(generic.(int32)))
		return &s, nil
	},
})

func TestModifierConverter(t *testing.T) {
	p := &testPacket{EntityID: 12}
	m := WithType(mustFor(t, p), int32Type, stringIntConverter)

	v, err := m.Read(0)
	require.NoError(t, err)
	assert.Equal(t, "12", *v)

	s := "42"
	require.NoError(t, m.Write(1, &s))
	assert.Equal(t, int32(42), p.X)

	bad := "not a number"
	err = m.Write(1, &bad)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, int32(42), p.X)

	// Nil becomes nil, which an int32 can't hold.
	err = m.Write(1, nil)
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, int32(42), p.X)
}

func TestIgnoreNull(t *testing.T) {
	called := 0
	c := IgnoreNull[*testItem](ConverterFunc[*testItem]{
		ToGeneric: func(specific *testItem) (any, error) {
			called++
			return specific.ID, nil
		},
		ToSpecific: func(generic any) (*testItem, error) {
			called++
			return &testItem{ID: generic.(int)}, nil
		},
	})

	g, err := c.Generic(nil)
	require.NoError(t, err)
	assert.Nil(t, g)

	s, err := c.Specific(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = c.Specific((*int)(nil))
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, 0, called)

	for _, id := range []int{0, 1, 99} {
		g, err := c.Generic(&testItem{ID: id})
		require.NoError(t, err)
		s, err := c.Specific(g)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID)
	}

	assert.Equal(t, reflect.TypeOf((*testItem)(nil)), c.SpecificType())
	wrapped, ok := IgnoreNull(c).(ignoreNull[*testItem])
	require.True(t, ok)
	_, nested := wrapped.delegate.(ignoreNull[*testItem])
	assert.False(t, nested, "wrapping twice is a no-op")
}

func TestIsNil(t *testing.T) {
	tests := []struct {
		v     any
		isNil bool
	}{
		{nil, true},
		{(*int)(nil), true},
		{[]int(nil), true},
		{map[int]int(nil), true},
		{(func())(nil), true},
		{0, false},
		{"", false},
		{[]int{}, false},
		{&testItem{}, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.isNil, IsNil(test.v), fmt.Sprintf("%#v", test.v))
	}
}
