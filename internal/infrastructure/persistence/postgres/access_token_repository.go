package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
)

// AccessTokenRepository implementa repositories.AccessTokenRepository
type AccessTokenRepository struct {
	db *gorm.DB
}

// NewAccessTokenRepository cria um novo AccessTokenRepository
func NewAccessTokenRepository(db *gorm.DB) repositories.AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) Create(ctx context.Context, token *entities.AccessToken) error {
	model := &AccessTokenModel{
		UserID:    token.UserID,
		TokenID:   token.TokenID,
		Name:      token.Name,
		ExpiresAt: token.ExpiresAt.UTC(),
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	token.ID = model.ID
	token.CreatedAt = model.CreatedAt
	return nil
}

func (r *AccessTokenRepository) FindByTokenID(ctx context.Context, tokenID string) (*entities.AccessToken, error) {
	var model AccessTokenModel

	if err := conn(ctx, r.db).Where("token_id = ?", tokenID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.AccessToken{
		ID:        model.ID,
		UserID:    model.UserID,
		TokenID:   model.TokenID,
		Name:      model.Name,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (r *AccessTokenRepository) DeleteByTokenID(ctx context.Context, tokenID string) error {
	return conn(ctx, r.db).Where("token_id = ?", tokenID).Delete(&AccessTokenModel{}).Error
}
