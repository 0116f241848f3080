package event

import "github.com/shop/backend/internal/domain/catalog"

// RegisterCatalogEvents registers every catalog event type with the serializer
func RegisterCatalogEvents(serializer *EventSerializer) {
	serializer.Register(catalog.EventTypeCategoryCreated, &catalog.CategoryCreatedEvent{})
	serializer.Register(catalog.EventTypeCategoryDeleted, &catalog.CategoryDeletedEvent{})
	serializer.Register(catalog.EventTypeTagCreated, &catalog.TagCreatedEvent{})
	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(catalog.EventTypeProductPublished, &catalog.ProductPublishedEvent{})
	serializer.Register(catalog.EventTypeProductArchived, &catalog.ProductArchivedEvent{})
	serializer.Register(catalog.EventTypeProductTagged, &catalog.ProductTaggedEvent{})
}
