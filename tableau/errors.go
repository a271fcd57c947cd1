// SPDX-License-Identifier: MIT

package tableau

import (
	"errors"
	"fmt"
)

var (
	// ErrBadPivot is returned when Pivot is asked to pivot on a zero tableau
	// entry or to enter a label that is already basic.
	ErrBadPivot = errors.New("tableau: bad pivot")

	// ErrBadBasis is returned when an initial basis repeats a label or has
	// the wrong length.
	ErrBadBasis = errors.New("tableau: bad basis")

	// ErrDiscarded is returned by any mutating call on a tableau whose pivot
	// sequence was abandoned (for example after cancellation). Such an
	// instance must be thrown away.
	ErrDiscarded = errors.New("tableau: instance discarded")
)

const (
	opNew      = "New"
	opPivot    = "Pivot"
	opCanPivot = "CanPivot"
	opImage    = "Image"
	opColumn   = "Column"
	opLabel    = "Label"
	opRefactor = "Refactor"
	opSolve    = "Solve"
	opDump     = "DebugDump"
)

func tableauErrorf(tag string, err error) error {
	return fmt.Errorf("tableau.%s: %w", tag, err)
}
