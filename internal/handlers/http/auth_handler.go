package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/handlers/dto"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
	"github.com/rafabene/ciaopet-backend/internal/services"
)

// AuthHandler lida com registro, login e sessão dos usuários
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register cria um usuário e devolve o primeiro token
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User"
// @Success 201 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: dto.T(c, "auth.registered"),
		Data:    dto.ToAuthResponse(result.User, result.Token),
	})
}

// Login valida as credenciais e emite um novo token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, domainerrors.ErrInvalidCredentials) {
		verr := domainerrors.NewValidationError()
		verr.Add("email", domainerrors.ErrInvalidCredentials.Error())
		respondError(c, h.logger, verr)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: dto.T(c, "auth.logged_in"),
		Data:    dto.ToAuthResponse(result.User, result.Token),
	})
}

// Logout revoga o token usado na requisição
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		respondError(c, h.logger, errors.New("logout without authenticated principal"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), principal.TokenID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: dto.T(c, "auth.logged_out"),
	})
}

// Me retorna o usuário autenticado
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=dto.MeResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		respondError(c, h.logger, errors.New("me without authenticated principal"))
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    dto.MeResponse{User: dto.ToUserResponse(principal.User)},
	})
}

// bind lê o corpo JSON e valida as tags de binding. Corpo vazio é validado
// como objeto vazio, para que os campos obrigatórios sejam reportados.
func (h *AuthHandler) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return true
	}

	if verr, ok := dto.ValidationErrorFromBinding(err); ok {
		respondError(c, h.logger, verr)
		return false
	}

	respondError(c, h.logger, errInvalidJSON)
	return false
}
