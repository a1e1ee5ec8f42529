package repository

import (
	"context"
	"time"

	"nakliye/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository stores accounts and their refresh tokens.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, hash string) (*model.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeUserTokens(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).Preload("Company").First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "lower(email) = lower(?)", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Omit("Company").Save(user).Error
}

func (r *userRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *userRepository) GetRefreshToken(ctx context.Context, hash string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	if err := GetDB(ctx, r.db).First(&token, "token_hash = ?", hash).Error; err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

func (r *userRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}

func (r *userRepository) RevokeUserTokens(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
}
