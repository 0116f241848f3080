package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// DefaultTagWeight is the weight of a tag link when none is given
const DefaultTagWeight = 1

// ProductTag links a product to a tag and carries a weight. The
// (product, tag) pair is unique and the row goes away with either side.
//
// The weight field accepts any small non-negative integer; the storage
// check producttag_weight_gte_1 is what rejects zero.
type ProductTag struct {
	shared.EventRecorder
	ID        uuid.UUID
	ProductID uuid.UUID
	TagID     uuid.UUID
	Weight    int
	AddedAt   time.Time
}

// NewProductTag links productID to tagID
func NewProductTag(productID, tagID uuid.UUID, weight int) (*ProductTag, error) {
	if productID == uuid.Nil {
		return nil, newValidationError(CodeInvalidProduct, "Product is required")
	}
	if tagID == uuid.Nil {
		return nil, newValidationError(CodeInvalidTag, "Tag is required")
	}
	pt := &ProductTag{
		ID:        uuid.New(),
		ProductID: productID,
		TagID:     tagID,
		AddedAt:   shared.Now(),
	}
	if err := pt.SetWeight(weight); err != nil {
		return nil, err
	}
	pt.Record(NewProductTaggedEvent(pt))
	return pt, nil
}

// SetWeight changes the weight
func (pt *ProductTag) SetWeight(weight int) error {
	if weight < 0 || weight > math.MaxInt16 {
		return newValidationError(CodeInvalidWeight, fmt.Sprintf("Weight must be between 0 and %d", math.MaxInt16))
	}
	pt.Weight = weight
	return nil
}
