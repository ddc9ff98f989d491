package protocol

import (
	"reflect"

	"github.com/karagenc/protocollib-go/bukkit"
	"github.com/karagenc/protocollib-go/reflect/structure"
)

// PacketContainer represents a server packet indirectly.
type PacketContainer struct {
	id     int
	handle any

	// Every field of handle.
	modifier *structure.Modifier[any]

	manager *Manager
}

// ID returns the packet ID.
func (c *PacketContainer) ID() int { return c.id }

// Handle returns the underlying packet.
func (c *PacketContainer) Handle() any { return c.handle }

// Modifier returns a modifier over every field of the packet.
func (c *PacketContainer) Modifier() *structure.Modifier[any] { return c.modifier }

// SpecificModifier returns a modifier over every field declared as T.
func SpecificModifier[T any](c *PacketContainer) *structure.Modifier[T] {
	return structure.WithType[T](c.modifier, reflect.TypeOf((*T)(nil)).Elem(), nil)
}

func (c *PacketContainer) Bytes() *structure.Modifier[int8]      { return SpecificModifier[int8](c) }
func (c *PacketContainer) Shorts() *structure.Modifier[int16]    { return SpecificModifier[int16](c) }
func (c *PacketContainer) Integers() *structure.Modifier[int32]  { return SpecificModifier[int32](c) }
func (c *PacketContainer) Longs() *structure.Modifier[int64]     { return SpecificModifier[int64](c) }
func (c *PacketContainer) Floats() *structure.Modifier[float32]  { return SpecificModifier[float32](c) }
func (c *PacketContainer) Doubles() *structure.Modifier[float64] { return SpecificModifier[float64](c) }
func (c *PacketContainer) Booleans() *structure.Modifier[bool]   { return SpecificModifier[bool](c) }
func (c *PacketContainer) Strings() *structure.Modifier[string]  { return SpecificModifier[string](c) }
func (c *PacketContainer) ByteArrays() *structure.Modifier[[]byte] {
	return SpecificModifier[[]byte](c)
}

// ItemModifier returns a modifier over item stack fields.
//
// Written stacks that are backed by a server item are stored as is;
// any other stack is copied into a new server item.
func (c *PacketContainer) ItemModifier() *structure.Modifier[bukkit.ItemStack] {
	return structure.WithType(c.modifier, itemStackType, itemConverter)
}

// ItemArrayModifier returns a modifier over item stack array fields.
// Nil elements are kept nil.
func (c *PacketContainer) ItemArrayModifier() *structure.Modifier[[]bukkit.ItemStack] {
	return structure.WithType(c.modifier, itemStackArrayType, itemArrayConverter)
}

// WorldTypeModifier returns a modifier over world type fields.
//
// If the server has no world type, the modifier is empty.
func (c *PacketContainer) WorldTypeModifier() *structure.Modifier[*bukkit.WorldType] {
	wireType := c.manager.features.WorldType
	if wireType == nil {
		return structure.WithType[*bukkit.WorldType](c.modifier, nil, nil)
	}
	return structure.WithType(c.modifier, wireType, worldTypeConverter)
}

// EntityModifier returns a modifier over int32 fields, reading them as
// entity IDs within world.
//
// Entities are sent by ID, and an int32 field might as well be anything
// else. Reading the wrong index gives a wrong entity or none at all.
// If no entity has the ID, the read value is nil.
func (c *PacketContainer) EntityModifier(world bukkit.World) (*structure.Modifier[bukkit.Entity], error) {
	converter, err := newEntityConverter(world, c.manager)
	if err != nil {
		return nil, err
	}
	return structure.WithType(c.modifier, int32Type, converter), nil
}
