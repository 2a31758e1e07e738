package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"talento_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(role interface{}, setRole bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if setRole {
			c.Set("role", role)
		}
	})

	admin := router.Group("/admin")
	admin.Use(RequireRoles(models.UserRoleAdmin))
	admin.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireRoles_AdminPasses(t *testing.T) {
	t.Parallel()

	router := roleRouter(models.UserRoleAdmin, true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_StringRolePasses(t *testing.T) {
	t.Parallel()

	// AuthMiddleware stores the claim value, which arrives as a string
	// after a JWT round trip.
	router := roleRouter("admin", true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_UserForbidden(t *testing.T) {
	t.Parallel()

	router := roleRouter(models.UserRoleUser, true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient role")
}

func TestRequireRoles_MissingRoleForbidden(t *testing.T) {
	t.Parallel()

	router := roleRouter(nil, false)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
