package protocol

import (
	"fmt"
	"io"
	"os"

	"github.com/karagenc/protocollib-go/internal/sync"
	"github.com/xiegeo/coloredgoroutine"
)

type (
	Debugger interface {
		Log(main string, v ...any)
		WithContext(context string) Debugger
	}

	noopDebugger struct{}

	printDebugger struct {
		stdout  io.Writer
		context string
	}
)

func NewNoopDebugger() Debugger {
	return noopDebugger{}
}

func (d noopDebugger) Log(main string, _v ...any) {}

func (d noopDebugger) WithContext(context string) Debugger { return d }

// NewPrintDebugger logs to stdout, coloring each line by goroutine.
func NewPrintDebugger() Debugger {
	return NewWriterDebugger(coloredgoroutine.Colors(os.Stdout))
}

func NewWriterDebugger(w io.Writer) Debugger {
	return &printDebugger{stdout: w}
}

var printMu sync.Mutex

// Log each field, adding colon if there's a subsequent field.
func (d *printDebugger) Log(main string, _v ...any) {
	printMu.Lock()
	defer printMu.Unlock()

	if len(d.context) != 0 {
		fmt.Fprint(d.stdout, d.context)
		if len(main) != 0 || len(_v) != 0 {
			fmt.Fprint(d.stdout, ": ")
		}
	}
	if len(main) != 0 {
		fmt.Fprint(d.stdout, main)
		if len(_v) != 0 {
			fmt.Fprint(d.stdout, ": ")
		}
	}

	for i, v := range _v {
		if i != 0 {
			fmt.Fprint(d.stdout, ": ")
		}
		fmt.Fprint(d.stdout, v)
	}

	fmt.Fprint(d.stdout, "\n")
}

func (d printDebugger) WithContext(context string) Debugger {
	d.context = context
	return &d
}
