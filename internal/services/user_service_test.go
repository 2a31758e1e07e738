package services

import (
	"testing"

	"talento_backend/internal/models"
	"talento_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers_MapsUsersToResponses(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.users["user-1"] = &models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "one@example.com",
		Role:      models.UserRoleUser,
	}
	repo.users["user-2"] = &models.User{
		BaseModel: models.BaseModel{ID: "user-2"},
		Email:     "two@example.com",
		Role:      models.UserRoleAdmin,
	}

	svc := NewUserService(repo, nil, "", UploadLimits{})
	users, err := svc.ListUsers(0, -5)
	require.NoError(t, err)
	require.Len(t, users, 2)

	emails := []string{users[0].Email, users[1].Email}
	assert.ElementsMatch(t, []string{"one@example.com", "two@example.com"}, emails)
}

func TestSetUserStatus_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserRepo(), nil, "", UploadLimits{})
	_, err := svc.SetUserStatus("user-1", models.UserStatus("banned"))

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSetUserStatus_SuspendExistingUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.users["user-1"] = &models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "one@example.com",
		Role:      models.UserRoleUser,
	}

	svc := NewUserService(repo, nil, "", UploadLimits{})
	user, err := svc.SetUserStatus("user-1", models.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}
