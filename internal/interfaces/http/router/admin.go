package router

import (
	"maps"
	"slices"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/interfaces/http/admin"
)

// CatalogServices are the application services behind the admin site
type CatalogServices struct {
	Categories  *catalogapp.CategoryService
	Tags        *catalogapp.TagService
	Products    *catalogapp.ProductService
	ProductTags *catalogapp.ProductTagService
}

// NewCatalogAdmin declares the catalog resources on a new admin site
func NewCatalogAdmin(title string, svc CatalogServices) *admin.Site {
	site := admin.NewSite(title)

	admin.Register[catalogapp.CreateCategoryRequest, catalogapp.UpdateCategoryRequest, catalogapp.CategoryResponse](site, admin.Options{
		Name:        "categories",
		OrderFields: sortFields(persistence.CategorySortFields),
		Searchable:  true,
	}, svc.Categories)

	admin.Register[catalogapp.CreateTagRequest, catalogapp.UpdateTagRequest, catalogapp.TagResponse](site, admin.Options{
		Name:        "tags",
		OrderFields: sortFields(persistence.TagSortFields),
		Searchable:  true,
	}, svc.Tags)

	admin.Register[catalogapp.CreateProductRequest, catalogapp.UpdateProductRequest, catalogapp.ProductResponse](site, admin.Options{
		Name:        "products",
		OrderFields: sortFields(persistence.ProductSortFields),
		Searchable:  true,
	}, svc.Products,
		admin.Action[catalogapp.ProductResponse]{Name: "publish", Run: svc.Products.Publish},
		admin.Action[catalogapp.ProductResponse]{Name: "archive", Run: svc.Products.Archive},
	)

	admin.Register[catalogapp.CreateProductTagRequest, catalogapp.UpdateProductTagRequest, catalogapp.ProductTagResponse](site, admin.Options{
		Name:        "product-tags",
		Title:       "Product Tags",
		OrderFields: sortFields(persistence.ProductTagSortFields),
	}, svc.ProductTags)

	return site
}

func sortFields(allowed map[string]bool) []string {
	return slices.Sorted(maps.Keys(allowed))
}
