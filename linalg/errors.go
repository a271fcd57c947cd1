// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation tag
// via linalgErrorf) and tests match them with errors.Is. Nothing in this
// package panics on user-triggered conditions.

package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("linalg: dimensions must be > 0")

	// ErrOutOfRange indicates that a row, column or vector index is outside
	// valid bounds. Public indexers (At/Set) return this instead of panicking.
	ErrOutOfRange = errors.New("linalg: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix was passed where one is required.
	ErrNilMatrix = errors.New("linalg: nil matrix")
)

// Operation tags for uniform error wrapping.
const (
	opAt       = "At"
	opSet      = "Set"
	opRow      = "Row"
	opCol      = "Col"
	opSetCol   = "SetCol"
	opMulVec   = "MulVec"
	opFromRows = "NewDenseFrom"
	opDot      = "Dot"
)

// linalgErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// indexErrorf reports an out-of-range access with its coordinates.
func indexErrorf(tag string, row, col int) error {
	return fmt.Errorf("%s(%d,%d): %w", tag, row, col, ErrOutOfRange)
}
