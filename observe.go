package alloy

import (
	"context"
	"reflect"

	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// LoggingMiddleware logs every resolution through l. It observes only and
// never alters the resolution outcome.
func LoggingMiddleware(l logger.Logger) Middleware {
	return &FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			l.Debug("resolve start",
				logger.String("type", typeName(t)),
			)

			return nil
		},
		AfterResolveFunc: func(ctx context.Context, t reflect.Type, instance any, err error) error {
			if err != nil {
				l.Error("resolve failed",
					logger.String("type", typeName(t)),
					logger.Error(err),
				)
			} else {
				l.Debug("resolve complete",
					logger.String("type", typeName(t)),
				)
			}

			return nil
		},
	}
}

// MetricsMiddleware records resolution counters through m.
func MetricsMiddleware(m metrics.Metrics) Middleware {
	return &FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			if m != nil {
				m.Counter("alloy_resolve_started_total",
					metrics.WithLabel("type", typeName(t)),
				).Inc()
			}

			return nil
		},
		AfterResolveFunc: func(ctx context.Context, t reflect.Type, instance any, err error) error {
			if m == nil {
				return nil
			}

			if err != nil {
				m.Counter("alloy_resolve_failed_total",
					metrics.WithLabel("type", typeName(t)),
				).Inc()
			} else {
				m.Counter("alloy_resolve_succeeded_total",
					metrics.WithLabel("type", typeName(t)),
				).Inc()
			}

			return nil
		},
	}
}
