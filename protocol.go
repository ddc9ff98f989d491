// Package protocol gives typed access to the fields of server packets
// without depending on how those packets are declared.
//
// A PacketContainer owns one packet and exposes its fields through
// structure.Modifier views, either as is or converted to bukkit types.
// Fields are addressed by their position among the fields of the
// requested type, in declaration order.
//
// PacketContainer and the modifiers it returns are not safe for
// concurrent use.
package protocol

import (
	"reflect"

	"github.com/karagenc/protocollib-go/injector/structcache"
	"github.com/karagenc/protocollib-go/internal/nms"
	"github.com/karagenc/protocollib-go/internal/sync"
	"github.com/karagenc/protocollib-go/reflect/fuzzy"
	"github.com/karagenc/protocollib-go/reflect/structure"
)

// StructureCache creates packets and knows their structure.
type StructureCache interface {
	// NewPacket returns a default instance of the packet.
	NewPacket(id int) (any, error)

	// Structure returns the unbound structure of the packet.
	Structure(id int) (*structure.Modifier[any], error)
}

// Config configures a Manager. The zero value is valid.
type Config struct {
	// Defaults to a registry of every packet the server knows.
	// Structures discovered by that registry are logged to Debugger.
	Structures StructureCache

	// Defaults to fuzzy.NewResolver().
	Methods fuzzy.MethodResolver

	// Optional server types. If nil, they are detected once per process.
	Features *Features

	// For diagnostic logging.
	Debugger Debugger
}

// Manager creates packet containers.
type Manager struct {
	structures StructureCache
	methods    fuzzy.MethodResolver
	features   *Features
	debug      Debugger

	// Resolved with methods on first use.
	getEntity   *fuzzy.CachedMethod
	writePacket *fuzzy.CachedMethod
	readPacket  *fuzzy.CachedMethod
}

// NewManager returns a Manager. A nil config is the same as an empty one.
func NewManager(config *Config) *Manager {
	if config == nil {
		config = new(Config)
	}

	m := &Manager{
		structures: config.Structures,
		methods:    config.Methods,
		features:   config.Features,
		debug:      config.Debugger,

		getEntity:   fuzzy.NewCachedMethod("getEntity", int32Type),
		writePacket: fuzzy.NewCachedMethod("write", ioWriterType),
		readPacket:  fuzzy.NewCachedMethod("read", ioReaderType),
	}

	if m.debug == nil {
		m.debug = NewNoopDebugger()
	}
	m.debug = m.debug.WithContext("[protocol]")

	switch {
	case m.structures != nil:
	case config.Debugger != nil:
		m.structures = newServerRegistry(m.debug.Log)
	default:
		m.structures = DefaultStructureCache()
	}
	if m.methods == nil {
		m.methods = fuzzy.NewResolver()
	}
	if m.features == nil {
		m.features = DetectedFeatures()
	}
	return m
}

var (
	defaultStructures = sync.OnceValue(func() *structcache.Registry {
		return newServerRegistry(nil)
	})

	defaultManager = sync.OnceValue(func() *Manager { return NewManager(nil) })
)

// newServerRegistry returns a registry of every packet the server knows.
func newServerRegistry(debug structcache.DebugFunc) *structcache.Registry {
	r := structcache.NewRegistry(&structcache.Config{Debug: debug})
	err := r.RegisterAll(nms.Packets())
	if err != nil {
		// The server's packet IDs are constants.
		panic(err)
	}
	return r
}

// DefaultStructureCache returns the process-wide registry of server packets.
func DefaultStructureCache() *structcache.Registry { return defaultStructures() }

// DefaultManager returns the process-wide manager with the default configuration.
func DefaultManager() *Manager { return defaultManager() }

// CreatePacket creates a packet container for a new packet.
func (m *Manager) CreatePacket(id int) (*PacketContainer, error) {
	handle, err := m.structures.NewPacket(id)
	if err != nil {
		return nil, &ConstructionError{ID: id, err: err}
	}
	return m.WrapPacket(id, handle)
}

// WrapPacket creates a packet container for an existing packet.
func (m *Manager) WrapPacket(id int, handle any) (*PacketContainer, error) {
	if structure.IsNil(handle) {
		return nil, &ConstructionError{ID: id, err: ErrNilHandle}
	}

	s, err := m.structures.Structure(id)
	if err != nil {
		return nil, &ConstructionError{ID: id, err: err}
	}
	return m.NewPacketContainer(id, handle, s)
}

// NewPacketContainer creates a packet container out of its parts.
// s is bound to handle if it isn't already.
func (m *Manager) NewPacketContainer(id int, handle any, s *structure.Modifier[any]) (*PacketContainer, error) {
	if structure.IsNil(handle) {
		return nil, &ConstructionError{ID: id, err: ErrNilHandle}
	}
	if s == nil {
		return nil, &ConstructionError{ID: id, err: errNilStructure}
	}

	bound, err := s.WithTarget(handle)
	if err != nil {
		return nil, &ConstructionError{ID: id, err: err}
	}

	return &PacketContainer{
		id:       id,
		handle:   handle,
		modifier: bound,
		manager:  m,
	}, nil
}

// CreatePacket creates a packet container for a new packet, using the default Manager.
func CreatePacket(id int) (*PacketContainer, error) {
	return DefaultManager().CreatePacket(id)
}

// WrapPacket wraps an existing packet, using the default Manager.
func WrapPacket(id int, handle any) (*PacketContainer, error) {
	return DefaultManager().WrapPacket(id, handle)
}

// NewPacketContainer creates a packet container out of its parts, using the default Manager.
func NewPacketContainer(id int, handle any, s *structure.Modifier[any]) (*PacketContainer, error) {
	return DefaultManager().NewPacketContainer(id, handle, s)
}

// Features lists the optional server types available at runtime.
type Features struct {
	// Type of world type fields, or nil if the server has none.
	WorldType reflect.Type
}

// DetectFeatures looks up optional server types with lookup.
func DetectFeatures(lookup func(name string) (reflect.Type, bool)) *Features {
	f := new(Features)
	if t, ok := lookup("WorldType"); ok {
		f.WorldType = t
	}
	return f
}

var detectedFeatures = sync.OnceValue(func() *Features {
	return DetectFeatures(nms.LookupType)
})

// DetectedFeatures returns the features of the running server,
// detected on first call.
func DetectedFeatures() *Features { return detectedFeatures() }
