package catalog

import "github.com/shop/backend/internal/domain/shared"

// Error codes raised by the catalog
const (
	CodeInvalidName       = "INVALID_NAME"
	CodeInvalidSlug       = "INVALID_SLUG"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidWeight     = "INVALID_WEIGHT"
	CodeInvalidParent     = "INVALID_PARENT"
	CodeInvalidProduct    = "INVALID_PRODUCT"
	CodeInvalidTag        = "INVALID_TAG"
	CodeInvalidCategory   = "INVALID_CATEGORY"
	CodeSelfParent        = "SELF_PARENT"
	CodeCircularReference = "CIRCULAR_REFERENCE"
	CodeHasChildren       = "HAS_CHILDREN"
	CodeHasProducts       = "HAS_PRODUCTS"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeDuplicateSlug     = "DUPLICATE_SLUG"
	CodeAlreadyTagged     = "ALREADY_TAGGED"
)

func newValidationError(code, message string) *shared.DomainError {
	return shared.NewDomainError(code, message)
}
