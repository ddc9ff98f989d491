// Package structcache keeps track of packet constructors and the field
// layout of every registered packet.
package structcache

import (
	"fmt"
	"math"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/karagenc/protocollib-go/internal/sync"
	"github.com/karagenc/protocollib-go/reflect/structure"
)

var (
	ErrUnknownPacket = fmt.Errorf("structcache: unknown packet id")
	errNilFactory    = fmt.Errorf("structcache: factory cannot be nil")
	errNilPacket     = fmt.Errorf("structcache: factory returned nil")
	errIDOutOfRange  = fmt.Errorf("structcache: packet id doesn't fit in 32 bits")
)

type (
	// Factory returns a new default instance of a packet.
	// It must return a non-nil pointer to a struct.
	Factory = func() any

	DebugFunc = func(main string, v ...any)

	Config struct {
		// Called when a packet's structure is discovered.
		Debug DebugFunc
	}
)

// Registry maps packet IDs to packet constructors and caches each
// packet's unbound structure. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	ids        mapset.Set[int]
	factories  map[int]Factory
	structures map[int]*structure.Modifier[any]

	debug DebugFunc
}

func NewRegistry(config *Config) *Registry {
	if config == nil {
		config = new(Config)
	}
	debug := config.Debug
	if debug == nil {
		debug = func(main string, v ...any) {}
	}

	return &Registry{
		ids:        mapset.NewThreadUnsafeSet[int](),
		factories:  make(map[int]Factory),
		structures: make(map[int]*structure.Modifier[any]),
		debug:      debug,
	}
}

// Register sets the constructor of a packet. A previously
// discovered structure of the same ID is forgotten.
//
// Packet IDs are persisted as 32-bit integers, so id must fit in 32 bits.
func (r *Registry) Register(id int, factory Factory) error {
	if factory == nil {
		return errNilFactory
	}
	if id < math.MinInt32 || id > math.MaxInt32 {
		return fmt.Errorf("%w: %d", errIDOutOfRange, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids.Add(id)
	r.factories[id] = factory
	delete(r.structures, id)
	return nil
}

func (r *Registry) RegisterAll(factories map[int]Factory) error {
	for id, factory := range factories {
		err := r.Register(id, factory)
		if err != nil {
			return fmt.Errorf("structcache: packet %d: %w", id, err)
		}
	}
	return nil
}

func (r *Registry) Has(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids.Contains(id)
}

// IDs returns a snapshot of the registered packet IDs.
func (r *Registry) IDs() mapset.Set[int] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mapset.NewSet(r.ids.ToSlice()...)
}

// NewPacket returns a new default instance of the packet.
func (r *Registry) NewPacket(id int) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPacket, id)
	}

	packet := factory()
	if structure.IsNil(packet) {
		return nil, fmt.Errorf("%w: %d", errNilPacket, id)
	}
	return packet, nil
}

// Structure returns the unbound structure of a packet. The layout is
// discovered on first use and shared from then on; bind it to an
// instance with WithTarget before reading or writing.
func (r *Registry) Structure(id int) (*structure.Modifier[any], error) {
	r.mu.RLock()
	s, ok := r.structures[id]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	packet, err := r.NewPacket(id)
	if err != nil {
		return nil, err
	}

	s, err = structure.New(reflect.TypeOf(packet))
	if err != nil {
		return nil, fmt.Errorf("structcache: packet %d: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.structures[id]; ok {
		return existing, nil
	}
	r.structures[id] = s
	r.debug("structcache", "discovered structure", id, s.StructType(), s.Size())
	return s, nil
}
