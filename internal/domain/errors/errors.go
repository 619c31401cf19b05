package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrNotFound           = errors.New("error.not_found")
	ErrPetNotFound        = errors.New("error.pet_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrValidation         = errors.New("error.validation")

	// Violação do índice único detectada na escrita
	ErrMicrochipAlreadyExists = errors.New("validation.numero_microchip.unique")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// NotFoundError identifica o recurso e o identificador não encontrados
type NotFoundError struct {
	Resource string
	ID       any
	Err      error
}

// NewNotFoundError cria um erro de recurso não encontrado
func NewNotFoundError(resource string, id any, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, Err: err}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is faz qualquer NotFoundError corresponder a ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Violation é uma regra violada: message ID para i18n e parâmetros de interpolação
type Violation struct {
	Key    string
	Params map[string]any
}

// ValidationError agrupa todas as violações por campo
type ValidationError struct {
	Fields map[string][]Violation
}

// NewValidationError cria um ValidationError vazio
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]Violation)}
}

// Add registra uma violação para o campo
func (e *ValidationError) Add(field, key string, params ...map[string]any) {
	v := Violation{Key: key}
	if len(params) > 0 {
		v.Params = params[0]
	}
	e.Fields[field] = append(e.Fields[field], v)
}

// Has verifica se o campo já possui alguma violação
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty indica que nenhuma violação foi registrada
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// FieldNames retorna os campos com violações em ordem alfabética
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for fields %v", e.FieldNames())
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
