package entities

import (
	"time"

	"github.com/rafabene/ciaopet-backend/internal/domain/valueobjects"
)

// User representa um tutor (dono) de pets
type User struct {
	ID           uint
	Name         string
	Email        valueobjects.Email
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessToken representa um token de acesso emitido para um usuário.
// O token só é válido enquanto o registro existir e não estiver expirado.
type AccessToken struct {
	ID        uint
	UserID    uint
	TokenID   string
	Name      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired verifica se o token expirou em relação a now
func (t *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
