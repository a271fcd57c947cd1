// SPDX-License-Identifier: MIT

package factor

import "math"

// DefaultRefactorEvery bounds the eta chain before an automatic refactor.
const DefaultRefactorEvery = 64

// DefaultEpsilon is the zero tolerance for inexact numeric types.
// Exact types always test against exact zero.
const DefaultEpsilon = 1e-12

const (
	panicRefactorInvalid = "factor: WithRefactorEvery: n must be >= 1"
	panicEpsilonInvalid  = "factor: WithEpsilon: eps must be finite, non-negative"
)

// Option configures a factorization.
type Option func(*options)

type options struct {
	refactorEvery int
	eps           float64
}

func defaultOptions() options {
	return options{refactorEvery: DefaultRefactorEvery, eps: DefaultEpsilon}
}

// MustRefactorEvery panics unless n >= 1. Layers that forward a refactor
// interval to this package validate it here.
func MustRefactorEvery(n int) {
	if n < 1 {
		panic(panicRefactorInvalid)
	}
}

// MustEpsilon panics unless eps is finite and non-negative.
func MustEpsilon(eps float64) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
}

// WithRefactorEvery sets how many updates are chained before Refactor runs
// automatically. Panics if n < 1.
func WithRefactorEvery(n int) Option {
	MustRefactorEvery(n)

	return func(o *options) { o.refactorEvery = n }
}

// WithEpsilon sets the pivot zero tolerance used by inexact types.
// Panics on negative or non-finite eps.
func WithEpsilon(eps float64) Option {
	MustEpsilon(eps)

	return func(o *options) { o.eps = eps }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
