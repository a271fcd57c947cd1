// SPDX-License-Identifier: MIT
// Package: linalg
//
// Purpose:
//   - Single source of truth for shape checks used by factor and tableau.
//   - Return wrapped sentinels so call sites can add their own operation tag.

package linalg

import "github.com/gambitproject/gambit-sub018/num"

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil[T num.Number[T]](m *Dense[T]) error {
	if m == nil {
		return linalgErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks m is non-nil and Rows == Cols.
func ValidateSquare[T num.Number[T]](m *Dense[T]) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return linalgErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
func ValidateVecLen[T num.Number[T]](x Vector[T], n int) error {
	if len(x) != n {
		return linalgErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
func ValidateSameShape[T num.Number[T]](a, b *Dense[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return linalgErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}
