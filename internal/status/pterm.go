package status

import (
	"io"
	"sync"

	"github.com/pterm/pterm"
)

// mu serialises whole lines across every pterm printer.
var mu sync.Mutex

// NewPTerm returns a Status backed by pterm's prefix printers.
// Error lines go to errOut, everything else to out.
func NewPTerm(out, errOut io.Writer) *Status {
	return &Status{
		Info:    pTermPrinter{pp: pterm.Info.WithWriter(out)},
		Success: pTermPrinter{pp: pterm.Success.WithWriter(out)},
		Warn:    pTermPrinter{pp: pterm.Warning.WithWriter(out)},
		Error:   pTermPrinter{pp: pterm.Error.WithWriter(errOut)},
		Debug:   pTermPrinter{pp: pterm.Debug.WithWriter(out)},
	}
}

type pTermPrinter struct {
	pp *pterm.PrefixPrinter
}

func (p pTermPrinter) Println(s string) {
	mu.Lock()
	defer mu.Unlock()
	p.pp.Println(s)
}
