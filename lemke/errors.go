// SPDX-License-Identifier: MIT

package lemke

import (
	"errors"
	"fmt"
)

var (
	// ErrBadExitIndex is returned when the ratio test is asked about a label
	// that is already basic, or when it cannot single out an exiting row.
	// Both indicate misuse; a ray is not an error.
	ErrBadExitIndex = errors.New("lemke: bad exit index")

	// ErrPivotLimit is returned when a path exceeds WithMaxPivots.
	ErrPivotLimit = errors.New("lemke: pivot limit reached")
)

const (
	opNew        = "New"
	opNewLCP     = "NewLCP"
	opExitRow    = "ExitRow"
	opEnter      = "Enter"
	opStart      = "Start"
	opFollowPath = "FollowPath"
)

func lemkeErrorf(tag string, err error) error {
	return fmt.Errorf("lemke.%s: %w", tag, err)
}
