package alloy

import (
	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Option configures a container at construction time.
type Option interface {
	apply(*containerImpl)
}

// optionFunc is a function adapter for Option.
type optionFunc func(*containerImpl)

func (f optionFunc) apply(c *containerImpl) { f(c) }

// WithLogger sets the logger used for container diagnostics.
// The default is a no-op logger.
func WithLogger(l logger.Logger) Option {
	return optionFunc(func(c *containerImpl) {
		c.logger = l
	})
}

// WithMetrics enables metric emission for resolutions and constructions.
// No metrics are collected when unset.
func WithMetrics(m metrics.Metrics) Option {
	return optionFunc(func(c *containerImpl) {
		c.metrics = m
	})
}

// WithMiddleware adds middleware at construction time.
// Equivalent to calling Use after New, in the given order.
func WithMiddleware(mw ...Middleware) Option {
	return optionFunc(func(c *containerImpl) {
		for _, m := range mw {
			c.middleware.add(m)
		}
	})
}
