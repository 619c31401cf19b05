package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/services"
)

// PrincipalContextKey guarda o usuário autenticado da requisição
const PrincipalContextKey = "principal"

// Authenticator valida bearer tokens
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*services.Principal, error)
}

// AuthMiddleware exige um bearer token válido antes de qualquer handler
type AuthMiddleware struct {
	auth   Authenticator
	logger ports.Logger
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(auth Authenticator, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

type authProblem struct {
	*problems.DefaultProblem
	Message string `json:"message"`
}

// RequireAuth rejeita a requisição com 401 quando o token está ausente ou inválido
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithProblem(c, http.StatusUnauthorized, domainerrors.ProblemTypeUnauthorized, "title.unauthorized", domainerrors.ErrUnauthorized.Error())
			return
		}

		principal, err := m.auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			abortWithProblem(c, http.StatusUnauthorized, domainerrors.ProblemTypeUnauthorized, "title.unauthorized", domainerrors.ErrUnauthorized.Error())
			return
		}
		if err != nil {
			m.logger.Error("failed to authenticate request", "error", err)
			abortWithProblem(c, http.StatusInternalServerError, domainerrors.ProblemTypeInternal, "title.internal", "error.internal")
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// CurrentPrincipal retorna o usuário autenticado pela RequireAuth
func CurrentPrincipal(c *gin.Context) (*services.Principal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*services.Principal)
	return principal, ok && principal != nil
}

// bearerToken extrai o token de "Bearer <token>"; o esquema não diferencia maiúsculas
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortWithProblem(c *gin.Context, status int, problemType, titleKey, messageKey string) {
	message := Translate(c, messageKey)

	problem := problems.NewDetailedProblem(status, message)
	problem.Type = c.GetString(BaseURLContextKey) + problemType
	problem.Title = Translate(c, titleKey)
	problem.Instance = c.Request.URL.Path

	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(status, authProblem{DefaultProblem: problem, Message: message})
}
