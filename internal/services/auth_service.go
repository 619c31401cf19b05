package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
	"github.com/rafabene/ciaopet-backend/internal/domain/valueobjects"
)

// Nome gravado nos tokens emitidos pela API
const accessTokenName = "auth_token"

// AuthService contém a lógica de registro, login e autenticação de usuários
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.AccessTokenRepository
	issuer    ports.TokenIssuer
	uow       ports.UnitOfWork
	logger    ports.Logger
	hashCost  int
	now       func() time.Time
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.AccessTokenRepository,
	issuer ports.TokenIssuer,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		issuer:    issuer,
		uow:       uow,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// WithHashCost altera o custo do bcrypt
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// WithClock substitui o relógio usado na verificação de expiração
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult é o usuário autenticado com o token recém-emitido
type AuthResult struct {
	User  *entities.User
	Token string
}

// Principal é o usuário identificado pelo token da requisição
type Principal struct {
	User    *entities.User
	TokenID string
}

// Register cria o usuário e emite o primeiro token numa única transação
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		verr := domainerrors.NewValidationError()
		verr.Add("email", "validation.email.email")
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
	}

	var token string
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return domainerrors.ErrEmailAlreadyExists
		}

		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		token, err = s.issueToken(txCtx, user.ID)
		return err
	})
	if errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
		verr := domainerrors.NewValidationError()
		verr.Add("email", "validation.email.unique")
		return nil, verr
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login valida as credenciais e emite um novo token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("invalid login attempt", "user_id", user.ID)
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Logout revoga o token usado na requisição
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.tokenRepo.DeleteByTokenID(ctx, tokenID)
}

// Authenticate valida o bearer token: assinatura, registro ativo, expiração e usuário
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*Principal, error) {
	claims, err := s.issuer.Parse(bearer)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	token, err := s.tokenRepo.FindByTokenID(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if token == nil || token.UserID != claims.UserID || token.IsExpired(s.now()) {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	return &Principal{User: user, TokenID: token.TokenID}, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID uint) (string, error) {
	issued, err := s.issuer.Issue(userID)
	if err != nil {
		return "", err
	}

	err = s.tokenRepo.Create(ctx, &entities.AccessToken{
		UserID:    userID,
		TokenID:   issued.TokenID,
		Name:      accessTokenName,
		ExpiresAt: issued.ExpiresAt,
	})
	if err != nil {
		return "", err
	}

	return issued.Token, nil
}
