package repositories

import (
	"context"
	"log"
	"time"

	"estates/internal/models"
	"estates/internal/repositories/cache"

	"gorm.io/gorm"
)

// UserRepository covers user rows and their verification tokens.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error

	CreateVerificationToken(token *models.UserVerificationToken) error
	GetVerificationToken(token string) (*models.UserVerificationToken, error)
	MarkTokenUsed(tokenID uint, usedAt time.Time) error
	// InvalidateUserTokens marks every unused token of the user used, except
	// the one identified by keepID (0 keeps nothing).
	InvalidateUserTokens(userID, keepID uint, usedAt time.Time) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) Create(user *models.User) error {
	return translateError(r.db.Create(user).Error)
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if user, err := r.cache.GetUser(context.Background(), key); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(context.Background(), &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}
	return &user, nil
}

// GetByEmail matches case-insensitively; callers are expected to pass an
// already-normalized address.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return translateError(err)
	}
	if r.cache != nil {
		if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
			log.Printf("failed to invalidate user cache %d: %v", user.ID, err)
		}
	}
	return nil
}

func (r *userRepository) CreateVerificationToken(token *models.UserVerificationToken) error {
	return translateError(r.db.Create(token).Error)
}

func (r *userRepository) GetVerificationToken(token string) (*models.UserVerificationToken, error) {
	var entry models.UserVerificationToken
	if err := r.db.Where("token = ?", token).First(&entry).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (r *userRepository) MarkTokenUsed(tokenID uint, usedAt time.Time) error {
	return translateError(r.db.Model(&models.UserVerificationToken{}).
		Where("id = ?", tokenID).
		Update("used_at", usedAt).Error)
}

func (r *userRepository) InvalidateUserTokens(userID, keepID uint, usedAt time.Time) error {
	q := r.db.Model(&models.UserVerificationToken{}).
		Where("user_id = ? AND used_at IS NULL", userID)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	return translateError(q.Update("used_at", usedAt).Error)
}
