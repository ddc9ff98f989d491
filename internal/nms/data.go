package nms

import (
	"encoding/binary"
	"fmt"
	"io"
)

const maxStringLength = 119

var errStringTooLong = fmt.Errorf("nms: string too long")

type dataOutput struct {
	w   io.Writer
	err error
}

func (o *dataOutput) write(v any) {
	if o.err == nil {
		o.err = binary.Write(o.w, binary.BigEndian, v)
	}
}

func (o *dataOutput) writeString(s string) {
	if len(s) > maxStringLength {
		o.err = errStringTooLong
		return
	}
	o.write(int16(len(s)))
	if o.err == nil {
		_, o.err = io.WriteString(o.w, s)
	}
}

func (o *dataOutput) writeItemStack(item *ItemStack) {
	if item == nil {
		o.write(int16(-1))
		return
	}
	o.write(int16(item.ID))
	o.write(int8(item.Count))
	o.write(int16(item.Damage))
}

func (o *dataOutput) writeWorldType(t *WorldType) {
	if t == nil {
		o.writeString("")
		return
	}
	o.writeString(t.name)
}

type dataInput struct {
	r   io.Reader
	err error
}

func (in *dataInput) read(v any) {
	if in.err == nil {
		in.err = binary.Read(in.r, binary.BigEndian, v)
	}
}

func (in *dataInput) readInt8() (v int8)   { in.read(&v); return }
func (in *dataInput) readInt16() (v int16) { in.read(&v); return }
func (in *dataInput) readInt32() (v int32) { in.read(&v); return }

func (in *dataInput) readString() string {
	n := in.readInt16()
	if in.err != nil {
		return ""
	}
	if n < 0 || n > maxStringLength {
		in.err = errStringTooLong
		return ""
	}
	buf := make([]byte, n)
	_, in.err = io.ReadFull(in.r, buf)
	return string(buf)
}

func (in *dataInput) readItemStack() *ItemStack {
	id := in.readInt16()
	if in.err != nil || id < 0 {
		return nil
	}
	count := in.readInt8()
	damage := in.readInt16()
	return NewItemStack(int(id), int(count), int(damage))
}

func (in *dataInput) readWorldType() *WorldType {
	return WorldTypeByName(in.readString())
}
