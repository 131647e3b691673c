package addrlib

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Sort orders mappings by id, ascending. Equal ids keep an arbitrary
// relative order.
func Sort(ms []Mapping) {
	sort.Slice(ms, func(i, j int) bool {
		return ms[i].ID < ms[j].ID
	})
}

// WriteReport writes one line per mapping: the decimal id
// right-justified to the digit width of the largest id, a tab, and the
// offset as uppercase hex zero-padded to at least 7 digits. Mappings
// are emitted in the order given; empty input produces no output.
func WriteReport(w io.Writer, ms []Mapping) error {
	width := 0
	for _, m := range ms {
		if n := len(strconv.FormatUint(m.ID, 10)); n > width {
			width = n
		}
	}

	for _, m := range ms {
		if _, err := fmt.Fprintf(w, "%*d\t%07X\n", width, m.ID, m.Offset); err != nil {
			return err
		}
	}
	return nil
}
