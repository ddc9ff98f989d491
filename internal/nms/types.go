// Package nms holds the server-side types packets are made of.
// Code outside the server only reaches into them through reflection.
package nms

import (
	"reflect"
	"strings"

	"github.com/karagenc/protocollib-go/bukkit"
	"github.com/karagenc/protocollib-go/internal/sync"
)

var (
	typesMu sync.RWMutex
	types   = map[string]reflect.Type{
		"ItemStack":   reflect.TypeOf((*ItemStack)(nil)),
		"Entity":      reflect.TypeOf((*Entity)(nil)),
		"WorldServer": reflect.TypeOf((*WorldServer)(nil)),
		"WorldType":   reflect.TypeOf((*WorldType)(nil)),
	}
)

// LookupType returns the server type with the given name, if this
// server version has it.
func LookupType(name string) (reflect.Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[name]
	return t, ok
}

type ItemStack struct {
	ID     int
	Count  int
	Damage int
}

func NewItemStack(id, count, damage int) *ItemStack {
	return &ItemStack{ID: id, Count: count, Damage: damage}
}

type WorldType struct {
	id   int
	name string
}

var (
	WorldTypeDefault     = &WorldType{id: 0, name: "default"}
	WorldTypeFlat        = &WorldType{id: 1, name: "flat"}
	WorldTypeLargeBiomes = &WorldType{id: 2, name: "largeBiomes"}
	WorldTypeDefault11   = &WorldType{id: 8, name: "default_1_1"}

	worldTypes = []*WorldType{WorldTypeDefault, WorldTypeFlat, WorldTypeLargeBiomes, WorldTypeDefault11}
)

func (t *WorldType) ID() int      { return t.id }
func (t *WorldType) Name() string { return t.name }

func WorldTypeByName(name string) *WorldType {
	for _, t := range worldTypes {
		if strings.EqualFold(t.name, name) {
			return t
		}
	}
	return nil
}

type Entity struct {
	ID   int32
	Name string

	bukkitEntity bukkit.Entity
}

func (e *Entity) BukkitEntity() bukkit.Entity { return e.bukkitEntity }

func (e *Entity) SetBukkitEntity(entity bukkit.Entity) { e.bukkitEntity = entity }

type WorldServer struct {
	Name string

	mu       sync.Mutex
	entities map[int32]*Entity
}

func NewWorldServer(name string) *WorldServer {
	return &WorldServer{
		Name:     name,
		entities: make(map[int32]*Entity),
	}
}

func (w *WorldServer) AddEntity(e *Entity) {
	w.mu.Lock()
	w.entities[e.ID] = e
	w.mu.Unlock()
}

func (w *WorldServer) RemoveEntity(id int32) {
	w.mu.Lock()
	delete(w.entities, id)
	w.mu.Unlock()
}

// GetEntity returns the live entity with the given ID, or nil.
func (w *WorldServer) GetEntity(id int32) *Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entities[id]
}

// EntityCount has an int32 -> int shape too. It exists so that entity
// lookup has more than one candidate to choose from.
func (w *WorldServer) EntityCount(minID int32) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for id := range w.entities {
		if id >= minID {
			n++
		}
	}
	return n
}
