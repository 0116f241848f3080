// Package admin is a small declarative back office. A resource is declared
// once with Register and gets list, create, read, update and delete
// endpoints plus an entry in the site index.
package admin

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Site collects registered resources and mounts them on a router group
type Site struct {
	handler.BaseHandler
	title     string
	resources []*resource
}

// NewSite creates an empty admin site
func NewSite(title string) *Site {
	return &Site{title: title}
}

// Options declares how a resource is exposed
type Options struct {
	// Name is the URL segment, e.g. "product-tags"
	Name string
	// Title is shown in the index; defaults to the title-cased name
	Title string
	// OrderFields lists the accepted order_by values; empty accepts any
	OrderFields []string
	// Searchable advertises that the list honors the search parameter
	Searchable bool
}

// ResourceInfo describes one resource in the site index
type ResourceInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Columns     []Field  `json:"columns"`
	CreateForm  []Field  `json:"create_form"`
	UpdateForm  []Field  `json:"update_form"`
	OrderFields []string `json:"order_fields,omitempty"`
	Searchable  bool     `json:"searchable"`
	Actions     []string `json:"actions,omitempty"`
}

// IndexResponse is the body of GET /admin/
type IndexResponse struct {
	Title     string         `json:"title"`
	Resources []ResourceInfo `json:"resources"`
}

type resource struct {
	info  ResourceInfo
	mount func(rg *gin.RouterGroup)
}

// Resources returns the index entries in registration order
func (s *Site) Resources() []ResourceInfo {
	infos := make([]ResourceInfo, len(s.resources))
	for i, r := range s.resources {
		infos[i] = r.info
	}
	return infos
}

// RegisterRoutes mounts the index and every resource on rg
func (s *Site) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", s.index)
	for _, r := range s.resources {
		r.mount(rg.Group("/" + r.info.Name))
	}
}

func (s *Site) index(c *gin.Context) {
	s.Success(c, IndexResponse{
		Title:     s.title,
		Resources: s.Resources(),
	})
}

func (s *Site) add(r *resource) {
	if slices.ContainsFunc(s.resources, func(existing *resource) bool {
		return existing.info.Name == r.info.Name
	}) {
		panic("admin: resource " + r.info.Name + " registered twice")
	}
	s.resources = append(s.resources, r)
}

func defaultTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}
