// SPDX-License-Identifier: MIT

// Package tableau: functional configuration shared by every pivoting layer
// (tableau, lemke, lemkehowson, nash). Options are resolved once at
// construction; there is no global state.
//
// Design goals:
//   - Deterministic behavior: no implicit randomness, no time-based decisions.
//   - Safe by construction: WithX panics only on nonsensical values.
//   - One place to configure logging, tolerances and path limits.
package tableau

import (
	"github.com/hashicorp/go-hclog"

	"github.com/gambitproject/gambit-sub018/factor"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the zero tolerance used by inexact numeric types.
	// Exact types (num.Rat) ignore it and test against exact zero.
	DefaultEpsilon = factor.DefaultEpsilon

	// DefaultRefactorEvery bounds the eta chain between full refactorizations.
	DefaultRefactorEvery = factor.DefaultRefactorEvery

	// DefaultMaxPivots of 0 means paths are unbounded; cancellation through
	// context is the intended brake.
	DefaultMaxPivots = 0
)

const panicMaxPivotsInvalid = "tableau: WithMaxPivots: n must be >= 0"

// PivotEvent describes one completed pivot. Basis is a snapshot owned by the
// receiver.
type PivotEvent struct {
	Step     int   // 1-based pivot number within the instance
	Row      int   // row pivoted on
	Entering int   // label that became basic
	Leaving  int   // label that became non-basic
	Basis    []int // row → label after the pivot
}

// PivotHook observes pivots. It runs synchronously on the pivoting goroutine.
type PivotHook func(PivotEvent)

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; read them
// through the accessor methods.
type Options struct {
	eps           float64
	refactorEvery int
	maxPivots     int
	basis         []int
	logger        hclog.Logger
	hook          PivotHook
}

// WithEpsilon sets the zero tolerance for inexact numeric types.
// It panics exactly when factor.WithEpsilon would.
func WithEpsilon(eps float64) Option {
	factor.MustEpsilon(eps)

	return func(o *Options) { o.eps = eps }
}

// WithRefactorEvery sets the eta-chain bound of the factorization.
// It panics exactly when factor.WithRefactorEvery would.
func WithRefactorEvery(n int) Option {
	factor.MustRefactorEvery(n)

	return func(o *Options) { o.refactorEvery = n }
}

// WithMaxPivots bounds the number of pivots a path may take (0 = unbounded).
func WithMaxPivots(n int) Option {
	if n < 0 {
		panic(panicMaxPivotsInvalid)
	}

	return func(o *Options) { o.maxPivots = n }
}

// WithBasis supplies the initial basis (row → label) instead of the slack
// basis. The slice is copied.
func WithBasis(labels []int) Option {
	cp := append([]int(nil), labels...)

	return func(o *Options) { o.basis = cp }
}

// WithLogger routes pivot tracing to l. A nil logger restores the default
// null logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithPivotHook registers fn to observe every pivot.
func WithPivotHook(fn PivotHook) Option {
	return func(o *Options) { o.hook = fn }
}

// Resolve applies opts over the defaults.
func Resolve(opts ...Option) Options {
	o := Options{
		eps:           DefaultEpsilon,
		refactorEvery: DefaultRefactorEvery,
		maxPivots:     DefaultMaxPivots,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}

	return o
}

// Epsilon returns the configured zero tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// RefactorEvery returns the eta-chain bound.
func (o Options) RefactorEvery() int { return o.refactorEvery }

// MaxPivots returns the path bound (0 = unbounded).
func (o Options) MaxPivots() int { return o.maxPivots }

// Logger returns the configured logger (never nil).
func (o Options) Logger() hclog.Logger { return o.logger }

// Hook returns the pivot hook, possibly nil.
func (o Options) Hook() PivotHook { return o.hook }

func (o Options) factorOptions() []factor.Option {
	return []factor.Option{
		factor.WithEpsilon(o.eps),
		factor.WithRefactorEvery(o.refactorEvery),
	}
}
