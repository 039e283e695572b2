package cli

import (
	"fmt"
	"io"

	"contentgen/internal/generation"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// noticePrinter writes notices one per line, coloured on a terminal.
type noticePrinter struct {
	w     io.Writer
	color bool
}

func (p noticePrinter) Notify(n generation.Notice) {
	mark, color := "✓", ansiGreen
	if n.Level == generation.LevelError {
		mark, color = "✗", ansiRed
	}
	if p.color {
		fmt.Fprintf(p.w, "%s%s %s%s\n", color, mark, n.Message, ansiReset)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, n.Message)
}
