package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/handlers/dto"
	"github.com/rafabene/ciaopet-backend/internal/validation"
)

var errInvalidJSON = errors.New("error.invalid_json")

// respondError converte erros do domínio em respostas RFC 7807
func respondError(c *gin.Context, logger ports.Logger, err error) {
	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) {
		dto.WriteError(c, dto.ValidationErrorResponseI18n(c, verr))
		return
	}

	var nf *domainerrors.NotFoundError
	if errors.As(err, &nf) {
		dto.WriteError(c, dto.NotFoundErrorResponseI18n(c, nf))
		return
	}

	if errors.Is(err, errInvalidJSON) {
		dto.WriteError(c, dto.BadRequestErrorResponseI18n(c, errInvalidJSON.Error()))
		return
	}

	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	_ = c.Error(err)
	dto.WriteError(c, dto.InternalErrorResponseI18n(c))
}

// parseID lê o parâmetro :id. Identificadores inválidos equivalem a inexistentes.
func parseID(c *gin.Context, resource string, notFound error) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, domainerrors.NewNotFoundError(resource, raw, notFound)
	}
	return uint(id), nil
}

// decodeRawPet lê o corpo como objeto JSON preservando os números sem conversão.
// Corpo vazio equivale a um objeto vazio.
func decodeRawPet(body io.Reader) (validation.RawPet, error) {
	raw := validation.RawPet{}
	if body == nil {
		return raw, nil
	}

	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.RawPet{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	if decoder.More() {
		return nil, errInvalidJSON
	}
	if raw == nil {
		// "null" decodifica para mapa nulo
		return validation.RawPet{}, nil
	}

	return raw, nil
}
