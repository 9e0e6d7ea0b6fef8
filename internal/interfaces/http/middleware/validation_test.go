package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bolibana/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidationResponses(t *testing.T) {
	type createProduct struct {
		Name         string `json:"name" binding:"required,max=200"`
		SellingPrice string `json:"selling_price" binding:"required,numeric"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/products", func(c *gin.Context) {
		var req createProduct
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid payload yields field details with json names", func(t *testing.T) {
		w := post(`{"selling_price": "abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "selling_price")
	})

	t.Run("valid payload passes", func(t *testing.T) {
		w := post(`{"name": "Huile 5L", "selling_price": "4500"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidationMessage(t *testing.T) {
	type probe struct {
		Required string `validate:"required"`
		Email    string `validate:"omitempty,email"`
		Min      string `validate:"omitempty,min=5"`
		Max      string `validate:"omitempty,max=3"`
		Len      string `validate:"omitempty,len=13"`
		UUID     string `validate:"omitempty,uuid"`
		OneOf    string `validate:"omitempty,oneof=cash mobile_money"`
		URL      string `validate:"omitempty,url"`
		Numeric  string `validate:"omitempty,numeric"`
	}

	cases := []struct {
		name  string
		value probe
		want  string
	}{
		{"required", probe{}, "This field is required"},
		{"email", probe{Required: "x", Email: "nope"}, "Invalid email format"},
		{"min", probe{Required: "x", Min: "ab"}, "Must be at least 5 characters"},
		{"max", probe{Required: "x", Max: "abcd"}, "Must be at most 3 characters"},
		{"len", probe{Required: "x", Len: "123"}, "Must be exactly 13 characters"},
		{"uuid", probe{Required: "x", UUID: "not-a-uuid"}, "Invalid UUID format"},
		{"oneof", probe{Required: "x", OneOf: "card"}, "Must be one of: cash mobile_money"},
		{"url", probe{Required: "x", URL: "::"}, "Invalid URL format"},
		{"numeric", probe{Required: "x", Numeric: "12a"}, "Must be numeric"},
	}

	v := validator.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.value)
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, verrs)
			assert.Equal(t, tc.want, validationMessage(verrs[0]))
		})
	}
}
