// SPDX-License-Identifier: MIT

package nash

import (
	"errors"
	"fmt"
)

var (
	// ErrBadGame is returned for nil or mismatched payoff matrices and for
	// profiles whose lengths do not match the game.
	ErrBadGame = errors.New("nash: bad game")

	// ErrRay is returned by SolveLH when the path from the start label ends
	// on a secondary ray instead of an equilibrium.
	ErrRay = errors.New("nash: path ended on a ray")
)

const (
	opNewGame       = "NewGame"
	opFromGonum     = "FromGonum"
	opSolveLH       = "SolveLH"
	opEnumerateLH   = "EnumerateLH"
	opSolveLCP      = "SolveLCP"
	opPayoffs       = "Payoffs"
	opIsEquilibrium = "IsEquilibrium"
)

func nashErrorf(tag string, err error) error {
	return fmt.Errorf("nash.%s: %w", tag, err)
}
