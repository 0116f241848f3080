package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationInput struct {
	Name  string `json:"name" binding:"required,max=10"`
	Slug  string `json:"slug" binding:"omitempty,slug"`
	Count int    `json:"count" binding:"gte=1"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var input validationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(input))
	})
	return router
}

func postValidation(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type slugged struct {
		Slug string `binding:"slug"`
	}
	assert.NoError(t, v.Struct(slugged{Slug: "red-mug_2"}))
	assert.Error(t, v.Struct(slugged{Slug: "red mug"}))
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("reports each failing field by JSON name", func(t *testing.T) {
		w, resp := postValidation(t, router, `{"name":"a very long name","slug":"no spaces!","count":0}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at most 10 characters", messages["name"])
		assert.Equal(t, "Can only contain letters, numbers, underscores, and hyphens", messages["slug"])
		assert.Equal(t, "Must be greater than or equal to 1", messages["count"])
	})

	t.Run("malformed JSON has no details", func(t *testing.T) {
		w, resp := postValidation(t, router, `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w, resp := postValidation(t, router, `{"name":"Mug","slug":"mug","count":2}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		UUID     string `validate:"uuid"`
		OneOf    string `validate:"oneof=draft published"`
		LTE      int    `validate:"lte=10"`
	}

	v := validator.New()
	err := v.Struct(sample{Min: "ab", UUID: "nope", OneOf: "gone", LTE: 11})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Must be at least 5 characters", got["Min"])
	assert.Equal(t, "Invalid UUID format", got["UUID"])
	assert.Equal(t, "Must be one of: draft published", got["OneOf"])
	assert.Equal(t, "Must be less than or equal to 10", got["LTE"])
}
