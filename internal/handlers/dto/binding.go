package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
)

// tag do binding → sufixo do message ID
var bindingRuleKeys = map[string]string{
	"required": "required",
	"email":    "email",
	"max":      "max",
	"min":      "min",
	"eqfield":  "confirmed",
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames faz o validator do gin reportar os campos pelo nome JSON
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// ValidationErrorFromBinding converte erros de binding em ValidationError.
// Retorna false quando o erro não é de validação (ex.: JSON malformado).
func ValidationErrorFromBinding(err error) (*domainerrors.ValidationError, bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}

	verr := domainerrors.NewValidationError()
	for _, fe := range fieldErrs {
		field := fe.Field()
		rule, ok := bindingRuleKeys[fe.Tag()]
		if !ok {
			verr.Add(field, "validation.invalid")
			continue
		}
		verr.Add(field, "validation."+field+"."+rule, map[string]any{"Param": fe.Param()})
	}
	return verr, true
}
