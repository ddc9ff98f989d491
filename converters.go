package protocol

import (
	"reflect"

	"github.com/karagenc/protocollib-go/bukkit"
	"github.com/karagenc/protocollib-go/internal/craft"
	"github.com/karagenc/protocollib-go/internal/nms"
	"github.com/karagenc/protocollib-go/reflect/structure"
)

var (
	int32Type          = reflect.TypeOf(int32(0))
	itemStackType      = reflect.TypeOf((*nms.ItemStack)(nil))
	itemStackArrayType = reflect.TypeOf([]*nms.ItemStack(nil))
	worldTypeType      = reflect.TypeOf((*nms.WorldType)(nil))
	worldHandleType    = reflect.TypeOf((*worldHandle)(nil)).Elem()
)

type (
	itemStackHandle interface {
		Handle() *nms.ItemStack
	}

	worldHandle interface {
		Handle() *nms.WorldServer
	}

	bukkitEntityHandle interface {
		BukkitEntity() bukkit.Entity
	}
)

var itemConverter = structure.IgnoreNull[bukkit.ItemStack](structure.ConverterFunc[bukkit.ItemStack]{
	ToGeneric: func(specific bukkit.ItemStack) (any, error) {
		return toServerItemStack(specific), nil
	},
	ToSpecific: func(generic any) (bukkit.ItemStack, error) {
		handle, ok := generic.(*nms.ItemStack)
		if !ok {
			return nil, structure.NewArgumentError(itemStackType, reflect.TypeOf(generic), nil)
		}
		return craft.WrapItemStack(handle), nil
	},
})

var itemArrayConverter = structure.IgnoreNull[[]bukkit.ItemStack](structure.ConverterFunc[[]bukkit.ItemStack]{
	ToGeneric: func(specific []bukkit.ItemStack) (any, error) {
		result := make([]*nms.ItemStack, len(specific))
		for i, stack := range specific {
			if !structure.IsNil(stack) {
				result[i] = toServerItemStack(stack)
			}
		}
		return result, nil
	},
	ToSpecific: func(generic any) ([]bukkit.ItemStack, error) {
		input, ok := generic.([]*nms.ItemStack)
		if !ok {
			return nil, structure.NewArgumentError(itemStackArrayType, reflect.TypeOf(generic), nil)
		}
		result := make([]bukkit.ItemStack, len(input))
		for i, handle := range input {
			// Keep empty slots as untyped nil.
			if handle != nil {
				result[i] = craft.WrapItemStack(handle)
			}
		}
		return result, nil
	},
})

// toServerItemStack avoids wrapping a stack that's already backed by a server item.
func toServerItemStack(stack bukkit.ItemStack) *nms.ItemStack {
	if wrapped, ok := stack.(itemStackHandle); ok {
		return wrapped.Handle()
	}
	return craft.NewItemStack(stack).Handle()
}

var worldTypeConverter = structure.IgnoreNull[*bukkit.WorldType](structure.ConverterFunc[*bukkit.WorldType]{
	ToGeneric: func(specific *bukkit.WorldType) (any, error) {
		return nms.WorldTypeByName(specific.Name()), nil
	},
	ToSpecific: func(generic any) (*bukkit.WorldType, error) {
		t, ok := generic.(*nms.WorldType)
		if !ok {
			return nil, structure.NewArgumentError(worldTypeType, reflect.TypeOf(generic), nil)
		}
		return bukkit.WorldTypeByName(t.Name()), nil
	},
})

func newEntityConverter(world bukkit.World, m *Manager) (structure.EquivalentConverter[bukkit.Entity], error) {
	w, ok := world.(worldHandle)
	if !ok || w.Handle() == nil {
		return nil, structure.NewArgumentError(worldHandleType, reflect.TypeOf(world), errNoWorldHandle)
	}
	server := w.Handle()

	// The world server's entity-by-ID method.
	method, err := m.getEntity.Get(m.methods, server)
	if err != nil {
		return nil, wrapInternalError(err)
	}

	return structure.IgnoreNull[bukkit.Entity](structure.ConverterFunc[bukkit.Entity]{
		ToGeneric: func(specific bukkit.Entity) (any, error) {
			return specific.EntityID(), nil
		},
		ToSpecific: func(generic any) (bukkit.Entity, error) {
			id, ok := generic.(int32)
			if !ok {
				return nil, structure.NewArgumentError(int32Type, reflect.TypeOf(generic), nil)
			}

			results, err := method.Call(server, id)
			if err != nil {
				return nil, wrapCallError(err)
			}

			if len(results) > 0 && !structure.IsNil(results[0]) {
				if h, ok := results[0].(bukkitEntityHandle); ok {
					if e := h.BukkitEntity(); e != nil {
						return e, nil
					}
				}
			}

			// A player that has just logged in might not be
			// in the entity index yet.
			for _, player := range world.Players() {
				if player.EntityID() == id {
					return player, nil
				}
			}

			m.debug.Log("entity modifier", "entity doesn't exist", id)
			return nil, nil
		},
	}), nil
}
