package coordinator

import (
	"context"

	"github.com/cocode-dev/cocode/pkg/api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cocode-dev/cocode/coordinator"

// The tracer uses the global OpenTelemetry provider,
// spans are dropped until a real provider is registered.
func newTracer() trace.Tracer { return otel.Tracer(tracerName) }

// startPacketSpan opens a span for one inbound packet.
func startPacketSpan(tr trace.Tracer, u *User, t api.PT) (context.Context, trace.Span) {
	s := u.Session()
	return tr.Start(context.Background(), "cocode."+t.String(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("cocode.conn_id", u.Id().String()),
			attribute.String("cocode.room_id", s.Rid),
			attribute.String("cocode.participant_id", s.Pid),
			attribute.String("cocode.state", s.State.String()),
		),
	)
}

func endPacketSpan(span trace.Span, result string, err error) {
	span.SetAttributes(attribute.String("cocode.result", result))
	if result == resultError || result == resultMalformed {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
