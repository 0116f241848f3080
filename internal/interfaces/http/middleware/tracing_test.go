package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T, handlers ...gin.HandlerFunc) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing("test-service", otelgin.WithTracerProvider(tp)))
	router.Use(handlers...)
	router.GET("/api/v1/products/:slug", func(c *gin.Context) {
		switch c.Param("slug") {
		case "missing":
			c.Status(http.StatusNotFound)
		case "broken":
			c.Status(http.StatusInternalServerError)
		default:
			c.Set(JWTUsernameKey, "admin")
			c.Status(http.StatusOK)
		}
	})
	return router, sr
}

func serveSlug(router *gin.Engine, slug string) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+slug, nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
}

func onlySpan(t *testing.T, sr *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	t.Helper()
	spans := sr.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_SpanNamedByRoute(t *testing.T) {
	router, sr := newTracedRouter(t)

	serveSlug(router, "red-mug")

	assert.Equal(t, "GET /api/v1/products/:slug", onlySpan(t, sr).Name())
}

func TestSpanAttributes(t *testing.T) {
	router, sr := newTracedRouter(t, SpanAttributes())

	serveSlug(router, "red-mug")

	span := onlySpan(t, sr)
	requestID, ok := spanAttr(span, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID.AsString())
	admin, ok := spanAttr(span, "admin")
	require.True(t, ok)
	assert.Equal(t, "admin", admin.AsString())
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		slug string
		code codes.Code
		desc string
	}{
		{slug: "red-mug", code: codes.Unset},
		{slug: "missing", code: codes.Error, desc: "Not Found"},
		{slug: "broken", code: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			router, sr := newTracedRouter(t, SpanErrorMarker())

			serveSlug(router, tt.slug)

			status := onlySpan(t, sr).Status()
			assert.Equal(t, tt.code, status.Code)
			if tt.desc != "" {
				assert.Equal(t, tt.desc, status.Description)
			}
		})
	}
}

func TestSpanErrorMarker_WithNoSpan(t *testing.T) {
	router := gin.New()
	router.Use(SpanErrorMarker(), SpanAttributes())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
