package repositories

import (
	"context"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários (tutores)
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// AccessTokenRepository define a interface para persistência de tokens de acesso
type AccessTokenRepository interface {
	Create(ctx context.Context, token *entities.AccessToken) error
	FindByTokenID(ctx context.Context, tokenID string) (*entities.AccessToken, error)
	DeleteByTokenID(ctx context.Context, tokenID string) error
}
