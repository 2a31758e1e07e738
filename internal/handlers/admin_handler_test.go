package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talento_backend/internal/middleware"
	"talento_backend/internal/models"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	listCalls   int
	deleteCalls int
	lastStatus  models.UserStatus
	users       []*dto.UserResponse
}

func (s *stubUserService) GetProfile(userID string) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubUserService) UpdateProfile(userID string, patch map[string]interface{}) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubUserService) UploadAvatar(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error) {
	return "", nil
}

func (s *stubUserService) ListUsers(limit, offset int) ([]*dto.UserResponse, error) {
	s.listCalls++
	return s.users, nil
}

func (s *stubUserService) SetUserStatus(userID string, status models.UserStatus) (*dto.UserResponse, error) {
	s.lastStatus = status
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubUserService) DeleteUser(userID string) error {
	s.deleteCalls++
	return nil
}

func adminTestRouter(svc *stubUserService, role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Set("role", role)
	})

	handler := NewAdminHandler(NewBaseHandler(validator.New()), svc)
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	handler.RegisterRoutes(admin)
	return router
}

func TestAdminListUsers_NonAdminForbidden(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	router := adminTestRouter(svc, models.UserRoleUser)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, svc.listCalls)
}

func TestAdminListUsers_AdminGetsUsers(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{users: []*dto.UserResponse{
		{ID: "user-1", Email: "one@example.com", Role: models.UserRoleUser},
		{ID: "user-2", Email: "two@example.com", Role: models.UserRoleAdmin},
	}}
	router := adminTestRouter(svc, models.UserRoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.listCalls)
	assert.Contains(t, rec.Body.String(), "one@example.com")
	assert.Contains(t, rec.Body.String(), "two@example.com")
}

func TestAdminSetUserStatus_ForwardsStatus(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	router := adminTestRouter(svc, models.UserRoleAdmin)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/user-2/status",
		strings.NewReader(`{"status":"suspended"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.UserStatusSuspended, svc.lastStatus)
}

func TestAdminSetUserStatus_MissingStatusRejected(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	router := adminTestRouter(svc, models.UserRoleAdmin)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/user-2/status",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDeleteUser(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	router := adminTestRouter(svc, models.UserRoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/user-2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.deleteCalls)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
