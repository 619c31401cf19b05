package entities

// Gender representa o gênero de um pet
type Gender string

const (
	GenderMale    Gender = "Macho"
	GenderFemale  Gender = "Fêmea"
	GenderUnknown Gender = "Desconhecido"
)

// Genders é a enumeração fechada de gêneros aceitos
var Genders = []Gender{
	GenderMale,
	GenderFemale,
	GenderUnknown,
}

// CommonSpecies são sugestões de espécie para formulários. Não é uma restrição.
var CommonSpecies = []string{
	"Cachorro",
	"Gato",
	"Pássaro",
	"Coelho",
	"Hamster",
	"Peixe",
	"Tartaruga",
}

// ParseGender converte uma string em Gender, sem normalização
func ParseGender(value string) (Gender, bool) {
	for _, g := range Genders {
		if string(g) == value {
			return g, true
		}
	}
	return "", false
}

// GenderValues retorna os gêneros como strings
func GenderValues() []string {
	values := make([]string, len(Genders))
	for i, g := range Genders {
		values[i] = string(g)
	}
	return values
}

// FormOptions agrupa os valores estáticos usados por formulários de pets
type FormOptions struct {
	Genders       []Gender
	CommonSpecies []string
}

// NewFormOptions devolve cópias das enumerações fixas
func NewFormOptions() FormOptions {
	genders := make([]Gender, len(Genders))
	copy(genders, Genders)
	species := make([]string, len(CommonSpecies))
	copy(species, CommonSpecies)

	return FormOptions{
		Genders:       genders,
		CommonSpecies: species,
	}
}
