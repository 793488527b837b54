package host

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/grpc"

	"github.com/dora-network/dora-safemath/metrics"
	"github.com/dora-network/dora-safemath/safemath"
)

const (
	transportConnect = "connect"
	transportGrpc    = "grpc"
)

// NewConnectInterceptor records request metrics per procedure and converts arithmetic
// errors returned by handlers into *connect.Error values with ConnectCode and
// HeaderErrorCode set. instrumentation may be nil.
func NewConnectInterceptor(
	instrumentation *metrics.Instrumentation,
) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (
			connect.AnyResponse, error,
		) {
			procedure := req.Spec().Procedure
			start := time.Now()
			resp, err := next(ctx, req)
			recordRequest(instrumentation, transportConnect, procedure, time.Since(start), err)

			kind, ok := safemath.KindOf(err)
			if !ok {
				return resp, err
			}
			recordTransportFailure(instrumentation, transportConnect, kind)
			return nil, ConnectError(err)
		}
	}
}

// NewGrpcInterceptor records request metrics per method and converts arithmetic errors
// returned by handlers into gRPC statuses with GRPCCode. instrumentation may be nil.
func NewGrpcInterceptor(
	instrumentation *metrics.Instrumentation,
) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		resp, err = handler(ctx, req)
		recordRequest(instrumentation, transportGrpc, info.FullMethod, time.Since(start), err)

		kind, ok := safemath.KindOf(err)
		if !ok {
			return resp, err
		}
		recordTransportFailure(instrumentation, transportGrpc, kind)
		return nil, Status(err).Err()
	}
}

func recordRequest(instrumentation *metrics.Instrumentation, transport, procedure string, elapsed time.Duration, err error) {
	if instrumentation == nil {
		return
	}
	inc := func(typ metrics.InstrumentationType) {
		if c, ok := instrumentation.CounterVecs[typ]; ok {
			c.WithLabelValues(transport, procedure).Inc()
		}
	}
	inc(metrics.InstrumentationTypeRequestCount)
	if h, ok := instrumentation.HistogramVecs[metrics.InstrumentationTypeRequestDuration]; ok {
		h.WithLabelValues(transport, procedure).Observe(elapsed.Seconds())
	}
	if err != nil {
		inc(metrics.InstrumentationTypeRequestFailure)
	} else {
		inc(metrics.InstrumentationTypeRequestSuccess)
	}
}

func recordTransportFailure(instrumentation *metrics.Instrumentation, transport string, kind safemath.ErrorKind) {
	if instrumentation == nil {
		return
	}
	if c, ok := instrumentation.CounterVecs[metrics.InstrumentationTypeTransportFailure]; ok {
		c.WithLabelValues(transport, kind.Name()).Inc()
	}
}
