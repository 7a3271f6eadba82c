package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/blocksim/blocksim/sim"
)

const (
	freeSymbol  = '.'
	indexSymbol = '#'
)

// ownerSymbols are handed out to files in order of their first block on disk.
const ownerSymbols = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RenderMap draws snap as rows of width blocks: '.' for free blocks, one symbol per
// file for its blocks and '#' for index blocks, followed by a legend.
func RenderMap(w io.Writer, snap sim.DiskSnapshot, width int) {
	if width <= 0 {
		width = len(snap.Blocks)
	}
	symbols := make(map[string]rune)
	var order []string
	for _, b := range snap.Blocks {
		if !b.Occupied {
			continue
		}
		if _, ok := symbols[b.Owner]; !ok {
			sym := '*'
			if len(order) < len(ownerSymbols) {
				sym = rune(ownerSymbols[len(order)])
			}
			symbols[b.Owner] = sym
			order = append(order, b.Owner)
		}
	}

	fmt.Fprintf(w, "Disk map (%s, %d blocks, %d free)\n", snap.Strategy, len(snap.Blocks), snap.FreeCount())
	var row strings.Builder
	for i, b := range snap.Blocks {
		if i%width == 0 {
			row.Reset()
			fmt.Fprintf(&row, "%4d  ", i)
		}
		switch {
		case !b.Occupied:
			row.WriteRune(freeSymbol)
		case b.IndexBlock:
			row.WriteRune(indexSymbol)
		default:
			row.WriteRune(symbols[b.Owner])
		}
		if i%width == width-1 || i == len(snap.Blocks)-1 {
			fmt.Fprintln(w, row.String())
		}
	}

	for _, owner := range order {
		size := 0
		for _, b := range snap.Blocks {
			if b.Owner == owner {
				size = b.Size
				break
			}
		}
		fmt.Fprintf(w, "  %c = %s (%d blocks)\n", symbols[owner], owner, size)
	}
}
