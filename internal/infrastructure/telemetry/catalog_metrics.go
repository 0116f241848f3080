package telemetry

import (
	"context"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CatalogMetrics counts catalog events. It subscribes to the event bus, so
// the counters only move after a write has been committed.
type CatalogMetrics struct {
	productsCreated   *Counter
	productsPublished *Counter
	productsArchived  *Counter
	productsTagged    *Counter
	categoryChanges   *Counter
}

// NewCatalogMetrics creates the catalog counters on meter
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	var (
		m   CatalogMetrics
		err error
	)
	if m.productsCreated, err = NewCounter(meter, "catalog.products.created", "Products created", "{product}"); err != nil {
		return nil, err
	}
	if m.productsPublished, err = NewCounter(meter, "catalog.products.published", "Product publish transitions", "{product}"); err != nil {
		return nil, err
	}
	if m.productsArchived, err = NewCounter(meter, "catalog.products.archived", "Products archived", "{product}"); err != nil {
		return nil, err
	}
	if m.productsTagged, err = NewCounter(meter, "catalog.products.tagged", "Tags attached to products", "{link}"); err != nil {
		return nil, err
	}
	if m.categoryChanges, err = NewCounter(meter, "catalog.categories.changes", "Categories created or deleted", "{category}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// Handle increments the counter matching event
func (m *CatalogMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		m.productsCreated.Inc(ctx)
	case *catalog.ProductPublishedEvent:
		attrs := []attribute.KeyValue{AttrFirstPublic.Bool(e.FirstPublication)}
		if e.CategoryID != nil {
			attrs = append(attrs, AttrCategoryID.String(e.CategoryID.String()))
		}
		m.productsPublished.Inc(ctx, attrs...)
	case *catalog.ProductArchivedEvent:
		m.productsArchived.Inc(ctx)
	case *catalog.ProductTaggedEvent:
		m.productsTagged.Inc(ctx)
	case *catalog.CategoryCreatedEvent, *catalog.CategoryDeletedEvent:
		m.categoryChanges.Inc(ctx, AttrEventType.String(event.EventType()))
	}
	return nil
}

// EventTypes returns the catalog events this handler counts
func (m *CatalogMetrics) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductPublished,
		catalog.EventTypeProductArchived,
		catalog.EventTypeProductTagged,
		catalog.EventTypeCategoryCreated,
		catalog.EventTypeCategoryDeleted,
	}
}

var _ shared.EventHandler = (*CatalogMetrics)(nil)
