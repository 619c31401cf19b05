// Package validation contém as regras de validação dos campos de pets.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
)

// Campos aceitos no corpo das requisições de pet
const (
	FieldNome            = "nome"
	FieldEspecie         = "especie"
	FieldRaca            = "raca"
	FieldGenero          = "genero"
	FieldDataNascimento  = "data_nascimento"
	FieldPeso            = "peso"
	FieldNumeroMicrochip = "numero_microchip"
	FieldObservacoes     = "observacoes"
	FieldTutorID         = "tutor_id"
)

const dateLayout = "2006-01-02"

// decimalPattern aceita apenas números decimais, com expoente opcional
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// RawPet é o mapa campo → valor bruto recebido do cliente
type RawPet map[string]any

// MicrochipChecker verifica se um microchip já está cadastrado
type MicrochipChecker interface {
	MicrochipExists(ctx context.Context, microchip string, exceptID *uint) (bool, error)
}

// UserChecker verifica se um tutor existe
type UserChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// tag do validator → sufixo do message ID
var ruleKeys = map[string]string{
	"required":   "required",
	"max":        "max",
	"min":        "min",
	"pet_gender": "in",
	"not_future": "before_or_equal",
}

type petInput struct {
	Nome            string     `json:"nome" validate:"required,max=255"`
	Especie         string     `json:"especie" validate:"required,max=255"`
	Raca            *string    `json:"raca" validate:"omitempty,max=255"`
	Genero          *string    `json:"genero" validate:"omitempty,pet_gender"`
	DataNascimento  *time.Time `json:"data_nascimento" validate:"omitempty,not_future"`
	Peso            *float64   `json:"peso" validate:"omitempty,min=0,max=999.99"`
	NumeroMicrochip *string    `json:"numero_microchip" validate:"omitempty,max=255"`
	Observacoes     *string    `json:"observacoes" validate:"omitempty,max=5000"`
	TutorID         *uint      `json:"tutor_id" validate:"omitempty,min=1"`
}

// PetValidator aplica as regras de criação e atualização de pets
type PetValidator struct {
	validate *validator.Validate
	pets     MicrochipChecker
	users    UserChecker
	now      func() time.Time
}

// NewPetValidator cria um novo PetValidator
func NewPetValidator(pets MicrochipChecker, users UserChecker) *PetValidator {
	v := &PetValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		pets:     pets,
		users:    users,
		now:      time.Now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Erros de registro só ocorrem com tags vazias
	_ = v.validate.RegisterValidation("pet_gender", func(fl validator.FieldLevel) bool {
		_, ok := entities.ParseGender(fl.Field().String())
		return ok
	})
	_ = v.validate.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		date, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !date.After(today(v.now()))
	})

	return v
}

// WithClock substitui o relógio usado pela regra de data futura
func (v *PetValidator) WithClock(now func() time.Time) *PetValidator {
	v.now = now
	return v
}

// ValidateCreate aplica as regras de criação
func (v *PetValidator) ValidateCreate(ctx context.Context, raw RawPet) (entities.PetFields, error) {
	return v.run(ctx, raw, nil)
}

// ValidateUpdate aplica as regras de atualização; a unicidade do microchip
// ignora o próprio pet
func (v *PetValidator) ValidateUpdate(ctx context.Context, petID uint, raw RawPet) (entities.PetFields, error) {
	return v.run(ctx, raw, &petID)
}

func (v *PetValidator) run(ctx context.Context, raw RawPet, exceptID *uint) (entities.PetFields, error) {
	verr := domainerrors.NewValidationError()

	input, present := coerce(raw, verr)

	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return entities.PetFields{}, fmt.Errorf("validating pet: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fe.Field()
			if verr.Has(field) {
				// Já falhou na conversão de tipo
				continue
			}
			verr.Add(field, messageKey(field, ruleKeys[fe.Tag()]), ruleParams(fe))
		}
	}

	if input.NumeroMicrochip != nil && !verr.Has(FieldNumeroMicrochip) {
		exists, err := v.pets.MicrochipExists(ctx, *input.NumeroMicrochip, exceptID)
		if err != nil {
			return entities.PetFields{}, err
		}
		if exists {
			verr.Add(FieldNumeroMicrochip, messageKey(FieldNumeroMicrochip, "unique"))
		}
	}

	if input.TutorID != nil && !verr.Has(FieldTutorID) {
		exists, err := v.users.Exists(ctx, *input.TutorID)
		if err != nil {
			return entities.PetFields{}, err
		}
		if !exists {
			verr.Add(FieldTutorID, messageKey(FieldTutorID, "exists"))
		}
	}

	if !verr.Empty() {
		return entities.PetFields{}, verr
	}

	return toFields(input, present), nil
}

// coerce converte os valores brutos nos tipos esperados, registrando
// violações de tipo por campo
func coerce(raw RawPet, verr *domainerrors.ValidationError) (petInput, map[string]bool) {
	var input petInput
	present := make(map[string]bool, len(raw))

	for _, field := range []string{FieldNome, FieldEspecie, FieldRaca, FieldGenero, FieldNumeroMicrochip, FieldObservacoes} {
		value, ok := raw[field]
		if !ok {
			continue
		}
		present[field] = true

		s, ok := asString(value)
		if !ok {
			verr.Add(field, messageKey(field, "string"))
			continue
		}

		switch field {
		case FieldNome:
			input.Nome = deref(s)
		case FieldEspecie:
			input.Especie = deref(s)
		case FieldRaca:
			input.Raca = s
		case FieldGenero:
			input.Genero = s
		case FieldNumeroMicrochip:
			input.NumeroMicrochip = s
		case FieldObservacoes:
			input.Observacoes = s
		}
	}

	if value, ok := raw[FieldDataNascimento]; ok {
		present[FieldDataNascimento] = true
		date, ok := asDate(value)
		if !ok {
			verr.Add(FieldDataNascimento, messageKey(FieldDataNascimento, "date"))
		} else {
			input.DataNascimento = date
		}
	}

	if value, ok := raw[FieldPeso]; ok {
		present[FieldPeso] = true
		peso, ok := asFloat(value)
		if !ok {
			verr.Add(FieldPeso, messageKey(FieldPeso, "numeric"))
		} else {
			input.Peso = peso
		}
	}

	if value, ok := raw[FieldTutorID]; ok {
		present[FieldTutorID] = true
		id, ok := asID(value)
		if !ok {
			verr.Add(FieldTutorID, messageKey(FieldTutorID, "integer"))
		} else {
			input.TutorID = id
		}
	}

	return input, present
}

func toFields(input petInput, present map[string]bool) entities.PetFields {
	fields := entities.PetFields{
		Nome:    input.Nome,
		Especie: input.Especie,
	}

	if present[FieldRaca] {
		fields.Raca = entities.Optional[string]{Set: true, Value: input.Raca}
	}
	if present[FieldGenero] {
		fields.Genero = entities.Optional[entities.Gender]{Set: true}
		if input.Genero != nil {
			g := entities.Gender(*input.Genero)
			fields.Genero.Value = &g
		}
	}
	if present[FieldDataNascimento] {
		fields.DataNascimento = entities.Optional[time.Time]{Set: true, Value: input.DataNascimento}
	}
	if present[FieldPeso] {
		fields.Peso = entities.Optional[float64]{Set: true}
		if input.Peso != nil {
			rounded := math.Round(*input.Peso*100) / 100
			fields.Peso.Value = &rounded
		}
	}
	if present[FieldNumeroMicrochip] {
		fields.NumeroMicrochip = entities.Optional[string]{Set: true, Value: input.NumeroMicrochip}
	}
	if present[FieldObservacoes] {
		fields.Observacoes = entities.Optional[string]{Set: true, Value: input.Observacoes}
	}
	if present[FieldTutorID] {
		fields.TutorID = entities.Optional[uint]{Set: true, Value: input.TutorID}
	}

	return fields
}

func messageKey(field, rule string) string {
	return "validation." + field + "." + rule
}

func ruleParams(fe validator.FieldError) map[string]any {
	params := map[string]any{"Param": fe.Param()}
	if fe.Tag() == "pet_gender" {
		params["Values"] = strings.Join(entities.GenderValues(), ", ")
	}
	return params
}

// asString aceita string ou nulo. Strings são aparadas e vazias viram nulo.
func asString(value any) (*string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, true
		}
		return &v, true
	default:
		return nil, false
	}
}

func asDate(value any) (*time.Time, bool) {
	s, ok := asString(value)
	if !ok {
		return nil, false
	}
	if s == nil {
		return nil, true
	}

	for _, layout := range []string{dateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, *s); err == nil {
			d := calendarDate(parsed)
			return &d, true
		}
	}
	return nil, false
}

func asFloat(value any) (*float64, bool) {
	var f float64

	switch v := value.(type) {
	case nil:
		return nil, true
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		if !decimalPattern.MatchString(s) {
			return nil, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

func asID(value any) (*uint, bool) {
	f, ok := asFloat(value)
	if !ok {
		return nil, false
	}
	if f == nil {
		return nil, true
	}
	if *f != math.Trunc(*f) || *f < 0 || *f > math.MaxUint32 {
		return nil, false
	}
	id := uint(*f)
	return &id, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func today(t time.Time) time.Time {
	return calendarDate(t.UTC())
}

// calendarDate mantém a data no fuso em que foi informada
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
