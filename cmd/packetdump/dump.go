package main

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/structs"
	"github.com/goccy/go-json"
	"github.com/gookit/color"
	protocol "github.com/karagenc/protocollib-go"
	"github.com/mitchellh/mapstructure"
)

// assign parses <index>=<value> and writes value to the field at index,
// converted to the field's declared type.
func assign(c *protocol.PacketContainer, assignment string) error {
	i := strings.IndexByte(assignment, '=')
	if i == -1 {
		return fmt.Errorf("invalid assignment %q: expected <index>=<value>", assignment)
	}

	index, err := strconv.Atoi(assignment[:i])
	if err != nil {
		return fmt.Errorf("invalid assignment %q: %w", assignment, err)
	}

	m := c.Modifier()
	if index < 0 || index >= m.Size() {
		return fmt.Errorf("invalid assignment %q: packet has %d fields", assignment, m.Size())
	}

	value, err := decodeValue(assignment[i+1:], m.Slots()[index].Type)
	if err != nil {
		return fmt.Errorf("invalid assignment %q: %w", assignment, err)
	}
	return m.Write(index, value)
}

func decodeValue(raw string, typ reflect.Type) (any, error) {
	var input any = raw

	switch typ.Kind() {
	case reflect.Ptr, reflect.Struct, reflect.Slice, reflect.Map:
		if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
			break
		}
		if raw == "null" {
			return nil, nil
		}
		err := json.Unmarshal([]byte(raw), &input)
		if err != nil {
			return nil, err
		}
	}

	ptr := reflect.New(typ)
	err := mapstructure.WeakDecode(input, ptr.Interface())
	if err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

type (
	dump struct {
		ID     int     `json:"id"`
		Type   string  `json:"type"`
		Fields []field `json:"fields"`
	}

	field struct {
		Index int    `json:"index"`
		Type  string `json:"type"`
		Value any    `json:"value"`
	}
)

func newDump(c *protocol.PacketContainer) (*dump, error) {
	m := c.Modifier()
	values, err := m.Values()
	if err != nil {
		return nil, err
	}

	d := &dump{
		ID:     c.ID(),
		Type:   m.StructType().String(),
		Fields: make([]field, len(values)),
	}
	for i, slot := range m.Slots() {
		d.Fields[i] = field{
			Index: i,
			Type:  slot.Type.String(),
			Value: displayValue(values[i]),
		}
	}
	return d, nil
}

// displayValue flattens structs into maps of their exported fields.
func displayValue(v any) any {
	switch {
	case v == nil:
		return nil
	case reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil():
		return nil
	}

	if named, ok := v.(interface{ Name() string }); ok {
		return named.Name()
	}
	if structs.IsStruct(v) {
		return structs.Map(v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = displayValue(rv.Index(i).Interface())
		}
		return elems
	}
	return v
}

func (d *dump) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func (d *dump) print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", color.Bold.Sprintf("packet %d", d.ID), color.Gray.Sprint(d.Type))
	for _, f := range d.Fields {
		fmt.Fprintf(w, "  %s %s = %v\n", color.Cyan.Sprintf("[%d]", f.Index), color.Yellow.Sprint(f.Type), f.Value)
	}
}
