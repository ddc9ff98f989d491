// Package craft implements the bukkit API on top of server types.
package craft

import (
	"github.com/karagenc/protocollib-go/bukkit"
	"github.com/karagenc/protocollib-go/internal/nms"
	"github.com/karagenc/protocollib-go/internal/sync"
)

type ItemStack struct {
	handle *nms.ItemStack
}

// NewItemStack copies stack into a new server item.
func NewItemStack(stack bukkit.ItemStack) *ItemStack {
	return &ItemStack{handle: nms.NewItemStack(stack.TypeID(), stack.Amount(), stack.Durability())}
}

// WrapItemStack returns nil for a nil handle.
func WrapItemStack(handle *nms.ItemStack) *ItemStack {
	if handle == nil {
		return nil
	}
	return &ItemStack{handle: handle}
}

func (s *ItemStack) Handle() *nms.ItemStack { return s.handle }
func (s *ItemStack) TypeID() int            { return s.handle.ID }
func (s *ItemStack) Amount() int            { return s.handle.Count }
func (s *ItemStack) Durability() int        { return s.handle.Damage }

type Entity struct {
	handle *nms.Entity
}

func NewEntity(handle *nms.Entity) *Entity {
	e := &Entity{handle: handle}
	handle.SetBukkitEntity(e)
	return e
}

func (e *Entity) Handle() *nms.Entity { return e.handle }
func (e *Entity) EntityID() int32     { return e.handle.ID }

type Player struct {
	Entity
}

func NewPlayer(id int32, name string) *Player {
	p := &Player{Entity: Entity{handle: &nms.Entity{ID: id, Name: name}}}
	p.handle.SetBukkitEntity(p)
	return p
}

func (p *Player) Name() string { return p.handle.Name }

type World struct {
	handle *nms.WorldServer

	mu      sync.Mutex
	players []bukkit.Player
}

func NewWorld(name string) *World {
	return &World{handle: nms.NewWorldServer(name)}
}

func (w *World) Handle() *nms.WorldServer { return w.handle }
func (w *World) Name() string             { return w.handle.Name }

// Connect adds a player to the list of connected players. The player
// isn't tracked as a live entity until Spawn is called.
func (w *World) Connect(p bukkit.Player) {
	w.mu.Lock()
	w.players = append(w.players, p)
	w.mu.Unlock()
}

func (w *World) Players() []bukkit.Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	players := make([]bukkit.Player, len(w.players))
	copy(players, w.players)
	return players
}

// Spawn registers the entity in the world's live entity index.
func (w *World) Spawn(e interface{ Handle() *nms.Entity }) {
	w.handle.AddEntity(e.Handle())
}
