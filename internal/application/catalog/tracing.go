package catalog

import (
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// endSpan records *err on the span and ends it. Use with a named error
// return: defer endSpan(span, &err).
func endSpan(span trace.Span, err *error) {
	if err != nil {
		telemetry.RecordError(span, *err)
	}
	span.End()
}
