package admin

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/handler"
)

// Store is what a resource needs from its application service. C and U are
// the create and update requests, R the response.
type Store[C, U, R any] interface {
	List(ctx context.Context, filter shared.Filter) ([]R, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*R, error)
	Create(ctx context.Context, req C) (*R, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*R, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Action is a custom operation on one record, served at
// POST /<name>/:id/<action name>
type Action[R any] struct {
	Name string
	Run  func(ctx context.Context, id uuid.UUID) (*R, error)
}

// Register declares a resource on site. It panics on a blank or duplicate
// name, since registration happens once at startup.
func Register[C, U, R any](site *Site, opts Options, store Store[C, U, R], actions ...Action[R]) {
	if opts.Name == "" {
		panic("admin: resource name is required")
	}
	if opts.Title == "" {
		opts.Title = defaultTitle(opts.Name)
	}

	actionNames := make([]string, len(actions))
	for i, a := range actions {
		actionNames[i] = a.Name
	}

	h := &resourceHandler[C, U, R]{opts: opts, store: store}
	site.add(&resource{
		info: ResourceInfo{
			Name:        opts.Name,
			Title:       opts.Title,
			URL:         "/admin/" + opts.Name + "/",
			Columns:     fieldsOf[R](),
			CreateForm:  fieldsOf[C](),
			UpdateForm:  fieldsOf[U](),
			OrderFields: opts.OrderFields,
			Searchable:  opts.Searchable,
			Actions:     actionNames,
		},
		mount: func(rg *gin.RouterGroup) {
			rg.GET("/", h.list)
			rg.POST("/", h.create)
			rg.GET("/:id", h.get)
			rg.PUT("/:id", h.update)
			rg.DELETE("/:id", h.delete)
			for _, a := range actions {
				rg.POST("/:id/"+a.Name, h.action(a))
			}
		},
	})
}

type resourceHandler[C, U, R any] struct {
	handler.BaseHandler
	opts  Options
	store Store[C, U, R]
}

func (h *resourceHandler[C, U, R]) list(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OrderBy != "" && len(h.opts.OrderFields) > 0 && !slices.Contains(h.opts.OrderFields, req.OrderBy) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Cannot order by "+req.OrderBy)
		return
	}

	filter := req.ToFilter()
	items, total, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

func (h *resourceHandler[C, U, R]) get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	item, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

func (h *resourceHandler[C, U, R]) create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	item, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

func (h *resourceHandler[C, U, R]) update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	item, err := h.store.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

func (h *resourceHandler[C, U, R]) delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *resourceHandler[C, U, R]) action(a Action[R]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.id(c)
		if !ok {
			return
		}
		item, err := a.Run(c.Request.Context(), id)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, item)
	}
}

func (h *resourceHandler[C, U, R]) id(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}
