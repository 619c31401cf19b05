package ports

import "time"

// TokenClaims identifica o usuário e o registro do token
type TokenClaims struct {
	UserID  uint
	TokenID string
}

// IssuedToken é um token assinado junto com os dados a persistir
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer define a interface para emissão e validação de tokens de acesso
type TokenIssuer interface {
	Issue(userID uint) (*IssuedToken, error)
	Parse(token string) (*TokenClaims, error)
}
