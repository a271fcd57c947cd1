// SPDX-License-Identifier: MIT

package factor

import (
	"errors"
	"fmt"
)

// ErrSingular is returned when elimination finds no eligible non-zero pivot,
// or when an update would replace a column by a dependent one. It signals an
// invalid basis and is not expected during correct operation.
var ErrSingular = errors.New("factor: singular matrix")

const (
	opBuild          = "Build"
	opRefactor       = "Refactor"
	opUpdate         = "Update"
	opSolve          = "Solve"
	opSolveTranspose = "SolveTranspose"
)

func factorErrorf(tag string, err error) error {
	return fmt.Errorf("factor.%s: %w", tag, err)
}
