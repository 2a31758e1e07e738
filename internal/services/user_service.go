package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/storage"
	"talento_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, patch map[string]interface{}) (*dto.UserResponse, error)
	UploadAvatar(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error)

	// Admin operations
	ListUsers(limit, offset int) ([]*dto.UserResponse, error)
	SetUserStatus(userID string, status models.UserStatus) (*dto.UserResponse, error)
	DeleteUser(userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	store    storage.Storage
	bucket   string
	limits   UploadLimits
}

func NewUserService(userRepo repositories.UserRepository, store storage.Storage, bucket string, limits UploadLimits) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		store:    store,
		bucket:   bucket,
		limits:   limits,
	}
}

func (s *UserServiceImpl) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile merges the given fields into the user metadata. Only
// whitelisted keys are accepted.
func (s *UserServiceImpl) UpdateProfile(userID string, patch map[string]interface{}) (*dto.UserResponse, error) {
	allowed := map[string]bool{
		models.MetaName:      true,
		models.MetaAvatarURL: true,
		"target_role":        true,
		"phone":              true,
		"location":           true,
	}
	filtered := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, apperrors.NewBadRequestError("No updatable fields provided")
	}

	if err := s.userRepo.UpdateMetadata(userID, filtered); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.GetProfile(userID)
}

func (s *UserServiceImpl) UploadAvatar(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewBadRequestError("No file provided")
	}
	if fileHeader.Size > s.limits.MaxSize {
		return "", apperrors.NewBadRequestError("File too large")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.NewBadRequestError("Avatar must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectPath := fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixMilli(), ext)

	if err := s.store.Save(ctx, s.bucket, objectPath, file, contentType); err != nil {
		return "", apperrors.NewExternalServiceError("storage", "Failed to store avatar", err)
	}

	url, err := s.store.GetURL(ctx, s.bucket, objectPath)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateMetadata(userID, map[string]interface{}{models.MetaAvatarURL: url}); err != nil {
		_ = s.store.Delete(ctx, s.bucket, objectPath)
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *UserServiceImpl) ListUsers(limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *UserServiceImpl) SetUserStatus(userID string, status models.UserStatus) (*dto.UserResponse, error) {
	switch status {
	case models.UserStatusPending, models.UserStatusActive, models.UserStatusSuspended:
	default:
		return nil, apperrors.NewBadRequestError("Unknown user status")
	}

	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Suspension kills every open session for the user.
	if status == models.UserStatusSuspended {
		if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return s.GetProfile(userID)
}

func (s *UserServiceImpl) DeleteUser(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
