// Package bukkit is the server-independent API that plugins program
// against. Packet fields are converted to and from these types.
package bukkit

type (
	ItemStack interface {
		TypeID() int
		Amount() int
		Durability() int
	}

	Entity interface {
		EntityID() int32
	}

	Player interface {
		Entity
		Name() string
	}

	World interface {
		Name() string

		// Players returns the players currently connected to the world.
		Players() []Player
	}
)

type itemStack struct {
	typeID     int
	amount     int
	durability int
}

// NewItemStack returns a plain item stack that isn't backed by a server item.
func NewItemStack(typeID, amount, durability int) ItemStack {
	return &itemStack{typeID: typeID, amount: amount, durability: durability}
}

func (s *itemStack) TypeID() int     { return s.typeID }
func (s *itemStack) Amount() int     { return s.amount }
func (s *itemStack) Durability() int { return s.durability }

// ItemStacksEqual compares two stacks by value, regardless of how they're implemented.
func ItemStacksEqual(a, b ItemStack) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.TypeID() == b.TypeID() && a.Amount() == b.Amount() && a.Durability() == b.Durability()
}
