package structcache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogin struct {
	EntityID int32
	Name     string
	Mode     int32
}

type testChat struct {
	Message string
}

func newTestRegistry(t *testing.T) *Registry {
	r := NewRegistry(nil)
	err := r.RegisterAll(map[int]Factory{
		1: func() any { return new(testLogin) },
		3: func() any { return &testChat{Message: "default"} },
	})
	require.NoError(t, err)
	return r
}

func TestRegistryNewPacket(t *testing.T) {
	r := newTestRegistry(t)

	p, err := r.NewPacket(3)
	require.NoError(t, err)
	assert.Equal(t, &testChat{Message: "default"}, p)

	p2, err := r.NewPacket(3)
	require.NoError(t, err)
	assert.NotSame(t, p, p2)

	_, err = r.NewPacket(2)
	require.ErrorIs(t, err, ErrUnknownPacket)

	assert.True(t, r.Has(1))
	assert.False(t, r.Has(2))
	assert.ElementsMatch(t, []int{1, 3}, r.IDs().ToSlice())

	// The returned set is a copy.
	r.IDs().Add(2)
	assert.False(t, r.Has(2))
}

func TestRegistryStructure(t *testing.T) {
	var logged []string
	r := NewRegistry(&Config{
		Debug: func(main string, v ...any) {
			logged = append(logged, fmt.Sprint(v...))
		},
	})
	require.NoError(t, r.Register(1, func() any { return new(testLogin) }))

	s, err := r.Structure(1)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Size())
	assert.Nil(t, s.Target(), "structure must be unbound")

	again, err := r.Structure(1)
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Len(t, logged, 1)

	_, err = r.Structure(5)
	require.ErrorIs(t, err, ErrUnknownPacket)

	// Registering again drops the cached structure.
	require.NoError(t, r.Register(1, func() any { return new(testLogin) }))
	replaced, err := r.Structure(1)
	require.NoError(t, err)
	assert.NotSame(t, s, replaced)
	assert.Equal(t, s.Slots(), replaced.Slots())
}

func TestRegistryStructureConcurrent(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	structures := make([]any, 16)
	for i := range structures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.Structure(1)
			if err == nil {
				structures[i] = s
			}
		}(i)
	}
	wg.Wait()

	for _, s := range structures {
		require.NotNil(t, s)
		assert.Same(t, structures[0], s)
	}
}

func TestRegistryInvalid(t *testing.T) {
	r := NewRegistry(nil)
	require.Error(t, r.Register(1, nil))
	require.Error(t, r.RegisterAll(map[int]Factory{2: nil}))

	require.NoError(t, r.Register(3, func() any { return (*testChat)(nil) }))
	_, err := r.NewPacket(3)
	require.Error(t, err)
	_, err = r.Structure(3)
	require.Error(t, err)

	require.NoError(t, r.Register(4, func() any { return 5 }))
	_, err = r.Structure(4)
	require.Error(t, err)
}

func TestRegistryIDRange(t *testing.T) {
	r := NewRegistry(nil)
	factory := func() any { return new(testChat) }

	require.ErrorIs(t, r.Register(1<<31, factory), errIDOutOfRange)
	require.ErrorIs(t, r.Register(-1<<31-1, factory), errIDOutOfRange)
	assert.Zero(t, r.IDs().Cardinality())

	require.NoError(t, r.Register(1<<31-1, factory))
	require.NoError(t, r.Register(-1<<31, factory))
	assert.ElementsMatch(t, []int{1<<31 - 1, -1 << 31}, r.IDs().ToSlice())
}

func TestRegistryRegisterConcurrent(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			if err := r.Register(id, func() any { return new(testChat) }); err != nil {
				panic(err)
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			// Whenever an ID is listed, its packet can be created.
			for listed := range r.IDs().Iter() {
				if _, err := r.NewPacket(listed); err != nil {
					panic(err)
				}
			}
			if r.Has(id) {
				if _, err := r.NewPacket(id); err != nil {
					panic(err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 32, r.IDs().Cardinality())
}
