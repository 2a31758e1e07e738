package repositories

import (
	"errors"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateMetadata(userID string, patch map[string]interface{}) error
	UpdateStatus(userID string, status models.UserStatus) error
	Delete(userID string) error
	List(limit, offset int) ([]models.User, error)

	// RefreshToken operations
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshToken(token string) (*models.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteUserRefreshTokens(userID string) error
	CleanExpiredRefreshTokens() error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Subscription").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"email":      user.Email,
		"role":       user.Role,
		"status":     user.Status,
		"metadata":   user.Metadata,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateMetadata merges the patch into the user's metadata map. A read-
// modify-write; callers patch small flag sets (onboarded, name, avatar).
func (r *UserRepositoryImpl) UpdateMetadata(userID string, patch map[string]interface{}) error {
	user, err := r.FindByID(userID)
	if err != nil {
		return err
	}

	if user.Metadata == nil {
		user.Metadata = map[string]interface{}{}
	}
	for k, v := range patch {
		user.Metadata[k] = v
	}

	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"metadata":   user.Metadata,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepositoryImpl) UpdateStatus(userID string, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *UserRepositoryImpl) List(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.First(&rt, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(token string) error {
	return r.db.Delete(&models.RefreshToken{}, "token = ?", token).Error
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(userID string) error {
	return r.db.Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *UserRepositoryImpl) CleanExpiredRefreshTokens() error {
	return r.db.Delete(&models.RefreshToken{}, "expires_at < ?", time.Now()).Error
}
