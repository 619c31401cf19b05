// Package seed cria dados de demonstração e de teste para o banco de dados.
package seed

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
)

// Factory gera pets e tutores com dados falsos, mas plausíveis
type Factory struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewFactory cria uma Factory. A mesma seed gera a mesma sequência de dados.
func NewFactory(seed int64) *Factory {
	return &Factory{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Pet gera campos válidos de um pet. Overrides são aplicados no final.
func (f *Factory) Pet(overrides ...func(*entities.PetFields)) entities.PetFields {
	especie := f.faker.RandomString(entities.CommonSpecies)
	genero := entities.Genders[f.faker.Number(0, len(entities.Genders)-1)]

	today := f.now().UTC().Truncate(24 * time.Hour)
	birth := f.faker.DateRange(today.AddDate(-15, 0, 0), today).UTC().Truncate(24 * time.Hour)
	peso := math.Round(f.faker.Float64Range(0.1, 80)*100) / 100

	fields := entities.PetFields{
		Nome:            f.faker.PetName(),
		Especie:         especie,
		Raca:            entities.Optional[string]{Set: true, Value: f.breed(especie)},
		Genero:          entities.Some(genero),
		DataNascimento:  entities.Some(birth),
		Peso:            entities.Some(peso),
		NumeroMicrochip: entities.Some(f.faker.DigitN(15)),
		Observacoes:     entities.Some(f.faker.Sentence(10)),
	}

	for _, override := range overrides {
		override(&fields)
	}
	return fields
}

// Tutor gera nome e e-mail de um tutor, sem senha
func (f *Factory) Tutor() (name, email string) {
	return f.faker.Name(), f.faker.Email()
}

func (f *Factory) breed(especie string) *string {
	var breed string
	switch especie {
	case "Cachorro":
		breed = f.faker.Dog()
	case "Gato":
		breed = f.faker.Cat()
	case "Pássaro":
		breed = f.faker.Bird()
	default:
		return nil
	}
	return &breed
}
