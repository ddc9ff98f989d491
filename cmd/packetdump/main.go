// Command packetdump creates a packet, sets some of its fields, and
// prints every field in declaration order.
//
//	packetdump -i 20 -s 0=42 -s 1=Notch --roundtrip
//	packetdump -i 103 -s 2='{"ID": 276, "Count": 1}' --json
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/gookit/color"
	protocol "github.com/karagenc/protocollib-go"
	"github.com/spf13/pflag"
)

func main() {
	id := pflag.IntP("id", "i", 0, "Packet ID")
	assignments := pflag.StringArrayP("set", "s", nil, "Set a field: <index>=<value>. Values of struct or slice fields are JSON.")
	roundTrip := pflag.BoolP("roundtrip", "r", false, "Serialize and deserialize the packet before printing it")
	asJSON := pflag.BoolP("json", "j", false, "Print JSON")
	list := pflag.BoolP("list", "l", false, "List packet IDs")
	debug := pflag.BoolP("debug", "d", false, "Print debug output")
	pflag.Parse()

	config := new(protocol.Config)
	if *debug {
		config.Debugger = protocol.NewPrintDebugger()
	}
	manager := protocol.NewManager(config)

	if *list {
		ids := protocol.DefaultStructureCache().IDs().ToSlice()
		slices.Sort(ids)
		for _, id := range ids {
			s, err := protocol.DefaultStructureCache().Structure(id)
			if err != nil {
				fail(err)
			}
			fmt.Printf("%s %s (%d fields)\n", color.Cyan.Sprintf("%4d", id), s.StructType(), s.Size())
		}
		return
	}

	c, err := manager.CreatePacket(*id)
	if err != nil {
		fail(err)
	}

	for _, a := range *assignments {
		err = assign(c, a)
		if err != nil {
			fail(err)
		}
	}

	if *roundTrip {
		data, err := c.MarshalBinary()
		if err != nil {
			fail(err)
		}
		err = c.UnmarshalBinary(data)
		if err != nil {
			fail(err)
		}
		if !*asJSON {
			fmt.Println(color.Gray.Sprintf("round trip: %d bytes", len(data)))
		}
	}

	d, err := newDump(c)
	if err != nil {
		fail(err)
	}

	if *asJSON {
		err = d.writeJSON(os.Stdout)
		if err != nil {
			fail(err)
		}
		return
	}
	d.print(os.Stdout)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.Red.Sprint("Error:"), err)
	os.Exit(1)
}
