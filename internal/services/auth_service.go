package services

import (
	"time"

	"talento_backend/internal/auth"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	CompleteOnboarding(userID string, req *dto.OnboardingRequest) (*dto.LoginResponse, error)
	GetUser(userID string) (*dto.UserResponse, error)

	// ResolveSession validates an access token, transparently falling back
	// to the refresh token when the access token is expired. It returns
	// fresh claims plus a new token pair when a refresh happened.
	ResolveSession(accessToken, refreshToken string) (*auth.Claims, *dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo   repositories.UserRepository
	issuer     *auth.TokenIssuer
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, issuer *auth.TokenIssuer, refreshTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		issuer:     issuer,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	metadata := map[string]interface{}{
		models.MetaOnboarded: false,
	}
	if req.Name != "" {
		metadata[models.MetaName] = req.Name
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		Metadata:     metadata,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("auth", "Email already registered")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account suspended")
	}

	return s.issueSession(user)
}

func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.LoginResponse, error) {
	rt, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid refresh token", 401)
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.New(apperrors.CodeTokenExpired, "auth", "Refresh token expired", 401)
	}

	user, err := s.userRepo.FindByID(rt.UserID)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid refresh token", 401)
	}

	// Rotate: the old refresh token dies with its first use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

// CompleteOnboarding flips the onboarded flag and re-issues the session
// so the access token carries the updated claim.
func (s *AuthServiceImpl) CompleteOnboarding(userID string, req *dto.OnboardingRequest) (*dto.LoginResponse, error) {
	patch := map[string]interface{}{
		models.MetaOnboarded: true,
		models.MetaName:      req.Name,
	}
	if req.AvatarURL != "" {
		patch[models.MetaAvatarURL] = req.AvatarURL
	}
	if req.Role != "" {
		patch["target_role"] = req.Role
	}

	if err := s.userRepo.UpdateMetadata(userID, patch); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueSession(user)
}

func (s *AuthServiceImpl) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) ResolveSession(accessToken, refreshToken string) (*auth.Claims, *dto.LoginResponse, error) {
	if accessToken != "" {
		claims, err := s.issuer.Parse(accessToken)
		if err == nil {
			return claims, nil, nil
		}
		if !apperrors.Is(err, auth.ErrTokenExpired) {
			return nil, nil, err
		}
		// Expired access token: fall through to the refresh token.
	}

	if refreshToken == "" {
		return nil, nil, auth.ErrInvalidToken
	}

	session, err := s.Refresh(refreshToken)
	if err != nil {
		return nil, nil, auth.ErrInvalidToken
	}

	claims, err := s.issuer.Parse(session.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return claims, session, nil
}

// issueSession creates the access/refresh pair for the user.
func (s *AuthServiceImpl) issueSession(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := s.issuer.Generate(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.userRepo.CreateRefreshToken(rt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}
