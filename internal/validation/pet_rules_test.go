package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
)

type fakePets struct {
	microchips map[string]uint
	err        error
	calls      int
}

func (f *fakePets) MicrochipExists(_ context.Context, microchip string, exceptID *uint) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.microchips[microchip]
	if !ok {
		return false, nil
	}
	if exceptID != nil && *exceptID == owner {
		return false, nil
	}
	return true, nil
}

type fakeUsers struct {
	ids map[uint]bool
}

func (f *fakeUsers) Exists(_ context.Context, id uint) (bool, error) {
	return f.ids[id], nil
}

var fixedNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func newTestValidator(pets *fakePets) *PetValidator {
	if pets == nil {
		pets = &fakePets{microchips: map[string]uint{}}
	}
	users := &fakeUsers{ids: map[uint]bool{1: true}}
	return NewPetValidator(pets, users).WithClock(func() time.Time { return fixedNow })
}

func violationKeys(t *testing.T, err error) map[string][]string {
	t.Helper()

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr), "esperava ValidationError, obteve %v", err)

	keys := make(map[string][]string)
	for field, violations := range verr.Fields {
		for _, v := range violations {
			keys[field] = append(keys[field], v.Key)
		}
	}
	return keys
}

func TestPetValidator_ValidateCreate_Valid(t *testing.T) {
	v := newTestValidator(nil)

	fields, err := v.ValidateCreate(context.Background(), RawPet{
		"nome":             "  Rex ",
		"especie":          "Cachorro",
		"raca":             "Pastor Alemão",
		"genero":           "Macho",
		"data_nascimento":  "2021-06-10",
		"peso":             35.555,
		"numero_microchip": "123456789012345",
		"observacoes":      "Pet muito protetor e obediente.",
		"tutor_id":         float64(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rex", fields.Nome)
	assert.Equal(t, "Cachorro", fields.Especie)
	require.True(t, fields.Raca.Set)
	assert.Equal(t, "Pastor Alemão", *fields.Raca.Value)
	assert.Equal(t, entities.GenderMale, *fields.Genero.Value)
	assert.Equal(t, time.Date(2021, time.June, 10, 0, 0, 0, 0, time.UTC), *fields.DataNascimento.Value)
	assert.InDelta(t, 35.56, *fields.Peso.Value, 0.0001)
	assert.Equal(t, "123456789012345", *fields.NumeroMicrochip.Value)
	assert.Equal(t, uint(1), *fields.TutorID.Value)
}

func TestPetValidator_ValidateCreate_OnlyRequired(t *testing.T) {
	v := newTestValidator(nil)

	fields, err := v.ValidateCreate(context.Background(), RawPet{
		"nome":    "Mimi",
		"especie": "Gato",
	})
	require.NoError(t, err)

	assert.False(t, fields.Raca.Set)
	assert.False(t, fields.Genero.Set)
	assert.False(t, fields.Peso.Set)
	assert.False(t, fields.NumeroMicrochip.Set)
	assert.False(t, fields.TutorID.Set)
}

func TestPetValidator_ValidateCreate_ExplicitNulls(t *testing.T) {
	v := newTestValidator(nil)

	fields, err := v.ValidateCreate(context.Background(), RawPet{
		"nome":             "Mimi",
		"especie":          "Gato",
		"raca":             "",
		"peso":             nil,
		"numero_microchip": "   ",
	})
	require.NoError(t, err)

	assert.True(t, fields.Raca.Set)
	assert.Nil(t, fields.Raca.Value)
	assert.True(t, fields.Peso.Set)
	assert.Nil(t, fields.Peso.Value)
	assert.True(t, fields.NumeroMicrochip.Set)
	assert.Nil(t, fields.NumeroMicrochip.Value)
}

func TestPetValidator_ValidateCreate_CollectsAllViolations(t *testing.T) {
	pets := &fakePets{microchips: map[string]uint{}}
	v := newTestValidator(pets)

	_, err := v.ValidateCreate(context.Background(), RawPet{
		"raca":             strings.Repeat("a", 256),
		"genero":           "Male",
		"data_nascimento":  "2026-10-16",
		"peso":             1000,
		"numero_microchip": strings.Repeat("9", 256),
		"observacoes":      strings.Repeat("x", 5001),
		"tutor_id":         float64(42),
	})

	keys := violationKeys(t, err)
	assert.Equal(t, map[string][]string{
		"nome":             {"validation.nome.required"},
		"especie":          {"validation.especie.required"},
		"raca":             {"validation.raca.max"},
		"genero":           {"validation.genero.in"},
		"data_nascimento":  {"validation.data_nascimento.before_or_equal"},
		"peso":             {"validation.peso.max"},
		"numero_microchip": {"validation.numero_microchip.max"},
		"observacoes":      {"validation.observacoes.max"},
		"tutor_id":         {"validation.tutor_id.exists"},
	}, keys)
	assert.Zero(t, pets.calls, "microchip inválido não deve consultar o armazenamento")
}

func TestPetValidator_ValidateCreate_TypeErrors(t *testing.T) {
	v := newTestValidator(nil)

	_, err := v.ValidateCreate(context.Background(), RawPet{
		"nome":            123.0,
		"especie":         "Gato",
		"data_nascimento": "10/06/2021",
		"peso":            "pesado",
		"tutor_id":        "abc",
		"genero":          true,
	})

	keys := violationKeys(t, err)
	assert.Equal(t, []string{"validation.nome.string"}, keys["nome"])
	assert.Equal(t, []string{"validation.data_nascimento.date"}, keys["data_nascimento"])
	assert.Equal(t, []string{"validation.peso.numeric"}, keys["peso"])
	assert.Equal(t, []string{"validation.tutor_id.integer"}, keys["tutor_id"])
	assert.Equal(t, []string{"validation.genero.string"}, keys["genero"])
	assert.NotContains(t, keys, "especie")
}

func TestPetValidator_DateKeepsInformedCalendarDay(t *testing.T) {
	v := newTestValidator(nil)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"data simples", "2020-06-15", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"fuso negativo à noite", "2020-06-15T22:00:00-05:00", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"fuso positivo de madrugada", "2020-06-15T01:00:00+09:00", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"hoje em outro fuso não é futuro", "2026-10-15T23:30:00-05:00", time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := v.ValidateCreate(context.Background(), RawPet{
				"nome": "Rex", "especie": "Cachorro", "data_nascimento": tt.input,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *fields.DataNascimento.Value)
		})
	}
}

func TestPetValidator_PesoStringMustBeDecimal(t *testing.T) {
	v := newTestValidator(nil)

	for _, input := range []string{"0x1p4", "0x10", "1_000", "Inf", "NaN", "1e", ".", "12kg"} {
		t.Run("rejeita "+input, func(t *testing.T) {
			_, err := v.ValidateCreate(context.Background(), RawPet{
				"nome": "Rex", "especie": "Cachorro", "peso": input,
			})
			assert.Equal(t, []string{"validation.peso.numeric"}, violationKeys(t, err)["peso"])
		})
	}

	accepted := map[string]float64{"35.5": 35.5, " 12 ": 12, "+4": 4, ".5": 0.5, "7.": 7, "1e2": 100}
	for input, want := range accepted {
		t.Run("aceita "+input, func(t *testing.T) {
			fields, err := v.ValidateCreate(context.Background(), RawPet{
				"nome": "Rex", "especie": "Cachorro", "peso": input,
			})
			require.NoError(t, err)
			assert.InDelta(t, want, *fields.Peso.Value, 0.0001)
		})
	}
}

func TestPetValidator_GenderViolationCarriesAllowedValues(t *testing.T) {
	v := newTestValidator(nil)

	_, err := v.ValidateCreate(context.Background(), RawPet{
		"nome": "Rex", "especie": "Cachorro", "genero": "macho",
	})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Macho, Fêmea, Desconhecido", verr.Fields["genero"][0].Params["Values"])
}

func TestPetValidator_BoundaryValues(t *testing.T) {
	v := newTestValidator(nil)

	_, err := v.ValidateCreate(context.Background(), RawPet{
		"nome":            strings.Repeat("ç", 255),
		"especie":         "Peixe",
		"peso":            "999.99",
		"data_nascimento": "2026-10-15",
	})
	assert.NoError(t, err, "limites inclusivos devem ser aceitos")

	_, err = v.ValidateCreate(context.Background(), RawPet{
		"nome": "Nemo", "especie": "Peixe", "peso": -0.01,
	})
	assert.Equal(t, []string{"validation.peso.min"}, violationKeys(t, err)["peso"])
}

func TestPetValidator_MicrochipUniqueness(t *testing.T) {
	pets := &fakePets{microchips: map[string]uint{"123456789012345": 7}}
	v := newTestValidator(pets)
	raw := RawPet{"nome": "Max", "especie": "Cachorro", "numero_microchip": "123456789012345"}

	t.Run("criação rejeita microchip duplicado", func(t *testing.T) {
		_, err := v.ValidateCreate(context.Background(), raw)
		assert.Equal(t, []string{"validation.numero_microchip.unique"}, violationKeys(t, err)["numero_microchip"])
	})

	t.Run("atualização do próprio pet mantém o microchip", func(t *testing.T) {
		_, err := v.ValidateUpdate(context.Background(), 7, raw)
		assert.NoError(t, err)
	})

	t.Run("atualização de outro pet rejeita o microchip", func(t *testing.T) {
		_, err := v.ValidateUpdate(context.Background(), 8, raw)
		assert.Equal(t, []string{"validation.numero_microchip.unique"}, violationKeys(t, err)["numero_microchip"])
	})

	t.Run("vários pets sem microchip", func(t *testing.T) {
		_, err := v.ValidateCreate(context.Background(), RawPet{"nome": "Luna", "especie": "Gato", "numero_microchip": nil})
		assert.NoError(t, err)
	})
}

func TestPetValidator_StorageFailurePropagates(t *testing.T) {
	storageErr := errors.New("connection refused")
	v := newTestValidator(&fakePets{err: storageErr})

	_, err := v.ValidateCreate(context.Background(), RawPet{
		"nome": "Rex", "especie": "Cachorro", "numero_microchip": "1",
	})
	assert.ErrorIs(t, err, storageErr)

	var verr *domainerrors.ValidationError
	assert.False(t, errors.As(err, &verr))
}
