package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAdminID())
	r.PUT("/settings/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": GetAdminID(c)})
	})
	return r
}

func TestRequireAdminID_MissingHeader(t *testing.T) {
	r := setupAdminRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/settings/x", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), AdminIDHeader)
}

func TestRequireAdminID_StoresValue(t *testing.T) {
	r := setupAdminRouter()

	req := httptest.NewRequest(http.MethodPut, "/settings/x", nil)
	req.Header.Set(AdminIDHeader, "  ops-42 ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":"ops-42"}`, w.Body.String())
}
