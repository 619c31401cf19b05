package dto

import (
	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.pet_not_found", map[string]any{"ID": 42})
func T(c *gin.Context, key string, params ...map[string]any) string {
	return middleware.Translate(c, key, params...)
}

// TranslateViolations converte as violações em mensagens traduzidas por campo,
// preservando a ordem em que foram registradas
func TranslateViolations(c *gin.Context, verr *domainerrors.ValidationError) map[string][]string {
	if verr == nil || verr.Empty() {
		return nil
	}

	messages := make(map[string][]string, len(verr.Fields))
	for _, field := range verr.FieldNames() {
		for _, violation := range verr.Fields[field] {
			params := map[string]any{"Field": field}
			for k, v := range violation.Params {
				params[k] = v
			}
			messages[field] = append(messages[field], T(c, violation.Key, params))
		}
	}
	return messages
}
