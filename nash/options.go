// SPDX-License-Identifier: MIT

package nash

import (
	"runtime"

	"github.com/hashicorp/go-hclog"

	"github.com/gambitproject/gambit-sub018/tableau"
)

const panicWorkersInvalid = "nash: WithWorkers: n must be >= 0"

// Option configures a solver call.
type Option func(*config)

type config struct {
	workers int
	logger  hclog.Logger
	tableau []tableau.Option
}

// WithWorkers bounds how many start labels EnumerateLH runs at once.
// 0 means one per CPU.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(c *config) { c.workers = n }
}

// WithLogger routes solver and pivot logging to l.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTableau passes options through to every tableau the solver builds
// (tolerance, refactor interval, pivot limit, pivot hook).
func WithTableau(opts ...tableau.Option) Option {
	return func(c *config) { c.tableau = append(c.tableau, opts...) }
}

func resolve(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.workers == 0 {
		c.workers = runtime.NumCPU()
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("nash")

	return c
}

// epsilon is the zero tolerance the tableaus will use.
func (c config) epsilon() float64 { return tableau.Resolve(c.tableau...).Epsilon() }

// tableauOptions appends the solver logger so pivots log under it.
func (c config) tableauOptions() []tableau.Option {
	return append(append([]tableau.Option(nil), c.tableau...), tableau.WithLogger(c.logger))
}
