package dto

import (
	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
)

// TokenTypeBearer é o tipo de token devolvido no login e no registro
const TokenTypeBearer = "Bearer"

// RegisterRequest representa a requisição de registro de usuário
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse é o usuário com o token emitido
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
}

// MeResponse é o usuário autenticado
type MeResponse struct {
	User UserResponse `json:"user"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email.String(),
	}
}

// ToAuthResponse monta a resposta de registro e login
func ToAuthResponse(user *entities.User, token string) AuthResponse {
	return AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		TokenType: TokenTypeBearer,
	}
}
