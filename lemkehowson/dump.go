// SPDX-License-Identifier: MIT

package lemkehowson

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DebugDump writes both tableaus and a per-label summary to w. The format
// is for people and may change.
func (p *Pair[T]) DebugDump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "lemke-howson m=%d n=%d pivots=%d\n", p.m, p.n, p.PivotCount()); err != nil {
		return lhErrorf(opDump, err)
	}

	rows := make([][]string, 0, p.Labels())
	for k := 0; k < p.Labels(); k++ {
		player := "1"
		if k >= p.m {
			player = "2"
		}
		c1, c2 := p.carriers(k)
		basic := "-"
		value := "0"
		switch {
		case p.isBasic(c1):
			basic = "T1"
			value = p.t1.Value(c1).String()
		case p.isBasic(c2):
			basic = "T2"
			value = p.t2.Value(c2 - p.size()).String()
		}
		rows = append(rows, []string{strconv.Itoa(k), player, basic, value})
	}

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.Header("label", "player", "basic in", "value")
	if err := table.Bulk(rows); err != nil {
		return lhErrorf(opDump, err)
	}
	if err := table.Render(); err != nil {
		return lhErrorf(opDump, err)
	}
	if _, err := io.WriteString(w, buf.String()); err != nil {
		return lhErrorf(opDump, err)
	}

	if _, err := io.WriteString(w, "T1 (player 2 strategies y, slacks r):\n"); err != nil {
		return lhErrorf(opDump, err)
	}
	if err := p.t1.DebugDump(w); err != nil {
		return lhErrorf(opDump, err)
	}
	if _, err := io.WriteString(w, "T2 (player 1 strategies x, slacks s):\n"); err != nil {
		return lhErrorf(opDump, err)
	}
	if err := p.t2.DebugDump(w); err != nil {
		return lhErrorf(opDump, err)
	}

	return nil
}
