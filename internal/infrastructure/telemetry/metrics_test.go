package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestCounter(t *testing.T) {
	reader, mp := newManualMeter(t)
	ctx := context.Background()

	counter, err := NewCounter(mp.Meter("test"), "test.counter", "Test counter", "1")
	require.NoError(t, err)
	counter.Add(ctx, 5, AttrEventType.String("a"))
	counter.Inc(ctx, AttrEventType.String("b"))

	assert.Equal(t, int64(6), sumInt64(t, collect(t, reader)["test.counter"]))
}

func TestHistogram(t *testing.T) {
	reader, mp := newManualMeter(t)
	ctx := context.Background()

	h, err := NewHistogram(mp.Meter("test"), HistogramOpts{
		Name:       "test.duration",
		Unit:       "s",
		Boundaries: HTTPDurationBuckets,
	})
	require.NoError(t, err)
	h.RecordDuration(ctx, 250*time.Millisecond, AttrHTTPRoute.String("/x"))
	h.Record(ctx, 0.75, AttrHTTPRoute.String("/x"))

	hist, ok := collect(t, reader)["test.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 1.0, hist.DataPoints[0].Sum, 1e-9)
	assert.Equal(t, HTTPDurationBuckets, hist.DataPoints[0].Bounds)
}

func TestCatalogMetrics_Handle(t *testing.T) {
	reader, mp := newManualMeter(t)
	ctx := context.Background()

	metrics, err := NewCatalogMetrics(mp.Meter("catalog"))
	require.NoError(t, err)

	product, err := catalog.NewProduct("Red Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	categoryID := uuid.New()
	product.SetCategory(&categoryID)
	product.Publish()
	product.Archive()
	product.Publish()

	category, err := catalog.NewCategory("Kitchen", "", nil)
	require.NoError(t, err)

	for _, event := range append(product.PullEvents(), category.PullEvents()...) {
		require.NoError(t, metrics.Handle(ctx, event))
	}

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumInt64(t, data["catalog.products.created"]))
	assert.Equal(t, int64(2), sumInt64(t, data["catalog.products.published"]))
	assert.Equal(t, int64(1), sumInt64(t, data["catalog.products.archived"]))
	assert.Equal(t, int64(1), sumInt64(t, data["catalog.categories.changes"]))

	published := data["catalog.products.published"].Data.(metricdata.Sum[int64])
	assert.Len(t, published.DataPoints, 2, "first and repeat publications are split")
}

func TestCatalogMetrics_EventTypes(t *testing.T) {
	_, mp := newManualMeter(t)
	metrics, err := NewCatalogMetrics(mp.Meter("catalog"))
	require.NoError(t, err)

	assert.Contains(t, metrics.EventTypes(), catalog.EventTypeProductPublished)
	assert.NotContains(t, metrics.EventTypes(), catalog.EventTypeTagCreated)
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	reader, mp := newManualMeter(t)
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	reg, err := RegisterDBPoolMetrics(mp.Meter("db"), sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	data := collect(t, reader)
	maxOpen, ok := data["db.pool.max_open"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, maxOpen.DataPoints, 1)
	assert.Equal(t, int64(1), maxOpen.DataPoints[0].Value)

	connections, ok := data["db.pool.connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, connections.DataPoints, 2)
}
