package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").
	Funcs(template.FuncMap{"title": titleCase}).
	ParseFS(templateFS, "templates/*.html"))

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// aboutPage is the data of templates/about.html
type aboutPage struct {
	Name       string
	Categories []catalogapp.CategoryTreeNode
}

// AboutHandler renders the static about page
type AboutHandler struct {
	BaseHandler
	shopName   string
	categories CategoryReader
}

// NewAboutHandler creates a new AboutHandler. categories may be nil.
func NewAboutHandler(shopName string, categories CategoryReader) *AboutHandler {
	return &AboutHandler{shopName: shopName, categories: categories}
}

// About renders the page with the root categories as links. A failing
// category lookup still renders the page, just without links.
//
//	GET /about/
func (h *AboutHandler) About(c *gin.Context) {
	page := aboutPage{Name: h.shopName}
	if h.categories != nil {
		tree, err := h.categories.Tree(c.Request.Context())
		if err != nil {
			logger.GetGinLogger(c).Warn("About page without categories", zap.Error(err))
		}
		page.Categories = tree
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "about.html", page); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
