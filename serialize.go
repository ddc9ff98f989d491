package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/karagenc/protocollib-go/reflect/fuzzy"
)

// Packets encode and decode themselves, through their
// write(io.Writer) and read(io.Reader) methods.
var (
	ioWriterType = reflect.TypeOf((*io.Writer)(nil)).Elem()
	ioReaderType = reflect.TypeOf((*io.Reader)(nil)).Elem()
)

const headerSize = 5

type countingWriter struct {
	w io.Writer
	n int64
}

func (w *countingWriter) Write(p []byte) (n int, err error) {
	n, err = w.w.Write(p)
	w.n += int64(n)
	return
}

// WriteTo writes the packet ID, a presence flag, then the packet's own encoding.
// The ID must fit in 32 bits; otherwise nothing is written.
func (c *PacketContainer) WriteTo(w io.Writer) (int64, error) {
	if c.id < math.MinInt32 || c.id > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", errIDOutOfRange, c.id)
	}
	cw := &countingWriter{w: w}

	var header [headerSize]byte
	binary.BigEndian.PutUint32(header[:4], uint32(int32(c.id)))
	header[4] = 1

	_, err := cw.Write(header[:])
	if err != nil {
		return cw.n, err
	}

	method, err := c.manager.writePacket.Get(c.manager.methods, c.handle)
	if err != nil {
		return cw.n, fmt.Errorf("protocol: packet %d doesn't support serialization: %w", c.id, err)
	}

	_, err = method.Call(c.handle, cw)
	if err != nil {
		return cw.n, wrapCallError(err)
	}

	c.manager.debug.Log("serialized packet", c.id, cw.n)
	return cw.n, nil
}

// MarshalBinary returns what WriteTo would write.
func (c *PacketContainer) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces c with the packet in data.
func (c *PacketContainer) UnmarshalBinary(data []byte) error {
	m := c.manager
	if m == nil {
		m = DefaultManager()
	}

	restored, err := m.ReadPacket(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}

// Clone returns a deep copy of the packet, made by serializing
// and deserializing it.
func (c *PacketContainer) Clone() (*PacketContainer, error) {
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	if err != nil {
		return nil, err
	}
	return c.manager.ReadPacket(&buf)
}

// ReadPacket reads a packet written with PacketContainer.WriteTo.
// r is read synchronously and with no timeout.
func (m *Manager) ReadPacket(r io.Reader) (*PacketContainer, error) {
	var header [headerSize]byte
	_, err := io.ReadFull(r, header[:])
	if err != nil {
		return nil, err
	}
	id := int(int32(binary.BigEndian.Uint32(header[:4])))

	s, err := m.structures.Structure(id)
	if err != nil {
		return nil, &ConstructionError{ID: id, err: err}
	}

	if header[4] == 0 {
		return nil, &ConstructionError{ID: id, err: ErrNilHandle}
	}

	handle, err := m.structures.NewPacket(id)
	if err != nil {
		return nil, &ConstructionError{ID: id, err: err}
	}

	method, err := m.readPacket.Get(m.methods, handle)
	if err != nil {
		return nil, fmt.Errorf("protocol: packet %d doesn't support deserialization: %w", id, err)
	}

	_, err = method.Call(handle, r)
	if err != nil {
		return nil, wrapCallError(err)
	}

	m.debug.Log("deserialized packet", id)
	return m.NewPacketContainer(id, handle, s)
}

// ReadPacket reads a packet using the default Manager.
func ReadPacket(r io.Reader) (*PacketContainer, error) {
	return DefaultManager().ReadPacket(r)
}

// wrapCallError keeps argument errors as they are. Anything
// else went wrong inside the called method.
func wrapCallError(err error) error {
	var argErr *fuzzy.ArgumentError
	if errors.As(err, &argErr) {
		return err
	}
	return wrapInternalError(err)
}
