// SPDX-License-Identifier: MIT

package lemkehowson

import (
	"errors"
	"fmt"
)

var (
	// ErrBadLabel is returned for a start label outside 0..m+n-1, or when
	// the pair is not at a complementary basis for that label.
	ErrBadLabel = errors.New("lemkehowson: bad label")

	// ErrNoSolution is returned by ExtractSolution when a player's basic
	// values sum to zero, i.e. the pair sits at the artificial equilibrium.
	ErrNoSolution = errors.New("lemkehowson: no solution")
)

const (
	opNew     = "New"
	opRun     = "Run"
	opExtract = "ExtractSolution"
	opDump    = "DebugDump"
)

func lhErrorf(tag string, err error) error {
	return fmt.Errorf("lemkehowson.%s: %w", tag, err)
}
