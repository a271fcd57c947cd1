// SPDX-License-Identifier: MIT

package tableau

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DebugDump writes a human-readable view of the basis and the basic solution
// to w. The format is for people, not parsers, and may change.
func (t *Tableau[T]) DebugDump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "tableau %dx%d  pivots=%d  updates=%d  discarded=%t\n",
		t.m, t.n, t.pivots, t.lu.Updates(), t.discarded); err != nil {
		return tableauErrorf(opDump, err)
	}

	rows := make([][]string, 0, t.m)
	for row, label := range t.basis {
		kind := "structural"
		if t.IsSlack(label) {
			kind = "slack"
		}
		rows = append(rows, []string{
			strconv.Itoa(row),
			strconv.Itoa(label),
			kind,
			t.rhs[row].String(),
		})
	}

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.Header("row", "label", "kind", "value")
	if err := table.Bulk(rows); err != nil {
		return tableauErrorf(opDump, err)
	}
	if err := table.Render(); err != nil {
		return tableauErrorf(opDump, err)
	}
	if _, err := io.WriteString(w, buf.String()); err != nil {
		return tableauErrorf(opDump, err)
	}

	return nil
}
