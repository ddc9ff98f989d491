package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	protocol "github.com/karagenc/protocollib-go"
	"github.com/karagenc/protocollib-go/internal/nms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	c, err := protocol.CreatePacket(nms.PacketNamedEntitySpawn)
	require.NoError(t, err)

	require.NoError(t, assign(c, "0=42"))
	require.NoError(t, assign(c, "1=Notch"))
	require.NoError(t, assign(c, "5=-10"))

	handle := c.Handle().(*nms.Packet20NamedEntitySpawn)
	assert.Equal(t, int32(42), handle.EntityID)
	assert.Equal(t, "Notch", handle.Name)
	assert.Equal(t, int8(-10), handle.Yaw)

	require.Error(t, assign(c, "0"))
	require.Error(t, assign(c, "x=1"))
	require.Error(t, assign(c, "100=1"))
	require.Error(t, assign(c, "0=not a number"))
	assert.Equal(t, int32(42), handle.EntityID)
}

func TestAssignJSON(t *testing.T) {
	c, err := protocol.CreatePacket(nms.PacketWindowItems)
	require.NoError(t, err)

	require.NoError(t, assign(c, `1=[{"ID": 276, "Count": 1, "Damage": 3}, null]`))
	handle := c.Handle().(*nms.Packet104WindowItems)
	require.Len(t, handle.Items, 2)
	assert.Equal(t, nms.NewItemStack(276, 1, 3), handle.Items[0])
	assert.Nil(t, handle.Items[1])

	require.NoError(t, assign(c, "1=null"))
	assert.Nil(t, handle.Items)
}

func TestDump(t *testing.T) {
	c, err := protocol.WrapPacket(nms.PacketLogin, &nms.Packet1Login{
		EntityID:  1,
		Username:  "Notch",
		WorldType: nms.WorldTypeFlat,
	})
	require.NoError(t, err)

	d, err := newDump(c)
	require.NoError(t, err)
	assert.Equal(t, nms.PacketLogin, d.ID)
	require.Len(t, d.Fields, c.Modifier().Size())
	assert.Equal(t, "flat", d.Fields[2].Value)
	assert.Equal(t, "*nms.WorldType", d.Fields[2].Type)

	var buf bytes.Buffer
	require.NoError(t, d.writeJSON(&buf))

	var decoded struct {
		ID     int
		Fields []struct {
			Index int
			Value any
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, nms.PacketLogin, decoded.ID)
	assert.Equal(t, "Notch", decoded.Fields[1].Value)

	buf.Reset()
	d.print(&buf)
	assert.Contains(t, buf.String(), "Notch")
}

func TestDisplayValue(t *testing.T) {
	assert.Nil(t, displayValue(nil))
	assert.Nil(t, displayValue((*nms.ItemStack)(nil)))
	assert.Equal(t, map[string]any{"ID": 1, "Count": 2, "Damage": 3}, displayValue(nms.NewItemStack(1, 2, 3)))
	assert.Equal(t, []any{map[string]any{"ID": 1, "Count": 2, "Damage": 3}, nil},
		displayValue([]*nms.ItemStack{nms.NewItemStack(1, 2, 3), nil}))
	assert.Equal(t, []byte("abc"), displayValue([]byte("abc")))
	assert.Equal(t, int32(5), displayValue(int32(5)))
}
