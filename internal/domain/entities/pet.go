package entities

import (
	"fmt"
	"time"
)

// Pet representa um animal cadastrado, opcionalmente vinculado a um tutor
type Pet struct {
	ID              uint
	Nome            string
	Especie         string
	Raca            *string
	Genero          *Gender
	DataNascimento  *time.Time
	Peso            *float64
	NumeroMicrochip *string
	Observacoes     *string
	TutorID         *uint
	Tutor           *User
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // Soft delete
}

// IsDeleted verifica se o pet foi removido logicamente
func (p *Pet) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Age calcula a idade em anos completos entre a data de nascimento e now.
// Retorna nil quando não há data de nascimento.
func (p *Pet) Age(now time.Time) *int {
	if p.DataNascimento == nil {
		return nil
	}

	birth := p.DataNascimento.UTC()
	now = now.UTC()

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}

// FormattedWeight retorna o peso com duas casas decimais e unidade ("35.50 kg")
func (p *Pet) FormattedWeight() *string {
	if p.Peso == nil {
		return nil
	}
	formatted := fmt.Sprintf("%.2f kg", *p.Peso)
	return &formatted
}

// Optional marca se um campo foi enviado e qual o seu valor (nil = nulo)
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some cria um Optional enviado com valor
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: &value}
}

// Null cria um Optional enviado explicitamente como nulo
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// PetFields são os campos de um pet já validados e normalizados.
// Campos opcionais não enviados (Set == false) não alteram o registro.
type PetFields struct {
	Nome            string
	Especie         string
	Raca            Optional[string]
	Genero          Optional[Gender]
	DataNascimento  Optional[time.Time]
	Peso            Optional[float64]
	NumeroMicrochip Optional[string]
	Observacoes     Optional[string]
	TutorID         Optional[uint]
}
