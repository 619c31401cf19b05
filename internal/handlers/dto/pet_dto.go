package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// ListPetsQuery representa os parâmetros de listagem de pets.
// Números inválidos são ignorados e viram os valores padrão.
type ListPetsQuery struct {
	Especie       string `form:"especie"`
	Genero        string `form:"genero"`
	Search        string `form:"search"`
	SortBy        string `form:"sort_by"`
	SortDirection string `form:"sort_direction"`
	Page          string `form:"page"`
	PerPage       string `form:"per_page"`
}

// ToFilters converte os parâmetros em filtros normalizados
func (q ListPetsQuery) ToFilters() repositories.PetFilters {
	return repositories.PetFilters{
		Especie:       q.Especie,
		Genero:        q.Genero,
		Search:        q.Search,
		SortBy:        repositories.PetSortField(strings.TrimSpace(q.SortBy)),
		SortDirection: repositories.SortDirection(strings.TrimSpace(q.SortDirection)),
		Page:          atoi(q.Page),
		PerPage:       atoi(q.PerPage),
	}.Normalize()
}

// TutorResponse é o resumo do tutor embutido no pet
type TutorResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PetResponse representa a resposta de um pet com os campos derivados
type PetResponse struct {
	ID              uint           `json:"id"`
	Nome            string         `json:"nome"`
	Especie         string         `json:"especie"`
	Raca            *string        `json:"raca"`
	Genero          *string        `json:"genero"`
	DataNascimento  *string        `json:"data_nascimento"`
	Idade           *int           `json:"idade"`
	Peso            *json.Number   `json:"peso"`
	PesoFormatado   *string        `json:"peso_formatado"`
	NumeroMicrochip *string        `json:"numero_microchip"`
	Observacoes     *string        `json:"observacoes"`
	TutorID         *uint          `json:"tutor_id"`
	Tutor           *TutorResponse `json:"tutor,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       *time.Time     `json:"deleted_at,omitempty"`
}

// FormOptionsResponse são os valores estáticos dos formulários de pet
type FormOptionsResponse struct {
	Generos        []string `json:"generos"`
	EspeciesComuns []string `json:"especies_comuns"`
}

// ToPetResponse converte uma entidade Pet para PetResponse; now é a
// referência do cálculo da idade
func ToPetResponse(pet *entities.Pet, now time.Time) PetResponse {
	response := PetResponse{
		ID:              pet.ID,
		Nome:            pet.Nome,
		Especie:         pet.Especie,
		Raca:            pet.Raca,
		Idade:           pet.Age(now),
		PesoFormatado:   pet.FormattedWeight(),
		NumeroMicrochip: pet.NumeroMicrochip,
		Observacoes:     pet.Observacoes,
		TutorID:         pet.TutorID,
		CreatedAt:       pet.CreatedAt,
		UpdatedAt:       pet.UpdatedAt,
		DeletedAt:       pet.DeletedAt,
	}

	if pet.Genero != nil {
		genero := string(*pet.Genero)
		response.Genero = &genero
	}
	if pet.DataNascimento != nil {
		date := pet.DataNascimento.UTC().Format(dateLayout)
		response.DataNascimento = &date
	}
	if pet.Peso != nil {
		peso := json.Number(strconv.FormatFloat(*pet.Peso, 'f', 2, 64))
		response.Peso = &peso
	}
	if pet.Tutor != nil {
		response.Tutor = &TutorResponse{
			ID:    pet.Tutor.ID,
			Name:  pet.Tutor.Name,
			Email: pet.Tutor.Email.String(),
		}
	}

	return response
}

// ToPetResponses converte uma lista de entidades Pet para PetResponse
func ToPetResponses(pets []*entities.Pet, now time.Time) []PetResponse {
	responses := make([]PetResponse, len(pets))
	for i, pet := range pets {
		responses[i] = ToPetResponse(pet, now)
	}
	return responses
}

// ToFormOptionsResponse converte as opções do domínio
func ToFormOptionsResponse(options entities.FormOptions) FormOptionsResponse {
	generos := make([]string, len(options.Genders))
	for i, g := range options.Genders {
		generos[i] = string(g)
	}

	return FormOptionsResponse{
		Generos:        generos,
		EspeciesComuns: options.CommonSpecies,
	}
}

func atoi(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
