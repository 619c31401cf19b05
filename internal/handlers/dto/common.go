package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs), com a
// mensagem traduzida e os erros por campo das respostas 422
type ErrorResponse struct {
	*problems.DefaultProblem
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Response é o envelope das respostas de sucesso
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse é o envelope das listagens paginadas
type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination são os metadados de paginação
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, messageKey string, status int, params ...map[string]any) ErrorResponse {
	message := T(c, messageKey, params...)

	problem := problems.NewDetailedProblem(status, message)
	problem.Type = c.GetString(middleware.BaseURLContextKey) + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		DefaultProblem: problem,
		Message:        message,
	}
}

// WriteError escreve a resposta de erro com o media type de problem details
func WriteError(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// Helper functions para respostas de erro comuns com i18n

// ValidationErrorResponseI18n cria uma resposta 422 com as mensagens por campo
func ValidationErrorResponseI18n(c *gin.Context, verr *domainerrors.ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeValidation,
		"title.validation",
		domainerrors.ErrValidation.Error(),
		http.StatusUnprocessableEntity,
	)
	response.Errors = TranslateViolations(c, verr)
	return response
}

// NotFoundErrorResponseI18n cria uma resposta 404 com o recurso e o identificador
func NotFoundErrorResponseI18n(c *gin.Context, nf *domainerrors.NotFoundError) ErrorResponse {
	key := domainerrors.ErrNotFound.Error()
	if nf.Err != nil {
		key = nf.Err.Error()
	}

	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeNotFound,
		"title.not_found",
		key,
		http.StatusNotFound,
		map[string]any{"Resource": nf.Resource, "ID": nf.ID},
	)
}

// RouteNotFoundErrorResponseI18n cria uma resposta 404 para rotas inexistentes
func RouteNotFoundErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeNotFound,
		"title.not_found",
		"error.route_not_found",
		http.StatusNotFound,
		map[string]any{"Path": c.Request.URL.Path},
	)
}

// BadRequestErrorResponseI18n cria uma resposta de erro 400
func BadRequestErrorResponseI18n(c *gin.Context, messageKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeBadRequest,
		"title.bad_request",
		messageKey,
		http.StatusBadRequest,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeInternal,
		"title.internal",
		"error.internal",
		http.StatusInternalServerError,
	)
}

// NewPagination converte os metadados da página do domínio
func NewPagination(page, perPage int, total int64, lastPage int) Pagination {
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
