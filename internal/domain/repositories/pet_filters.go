package repositories

import (
	"math"
	"strings"
)

const (
	DefaultPetsPerPage = 15
	MaxPetsPerPage     = 100

	// MaxPetsPage mantém (Page-1)*PerPage dentro de int
	MaxPetsPage = math.MaxInt / MaxPetsPerPage
)

// PetSortField são os campos aceitos para ordenação da listagem
type PetSortField string

const (
	SortByNome           PetSortField = "nome"
	SortByEspecie        PetSortField = "especie"
	SortByCreatedAt      PetSortField = "created_at"
	SortByDataNascimento PetSortField = "data_nascimento"
)

// SortDirection é a direção da ordenação
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var allowedPetSortFields = map[PetSortField]struct{}{
	SortByNome:           {},
	SortByEspecie:        {},
	SortByCreatedAt:      {},
	SortByDataNascimento: {},
}

// PetFilters contém filtros, ordenação e paginação da listagem de pets
type PetFilters struct {
	Especie       string
	Genero        string
	Search        string
	SortBy        PetSortField
	SortDirection SortDirection
	Page          int // Página (começa em 1)
	PerPage       int // Itens por página (default: 15, max: 100)
}

// Normalize aplica defaults e limites. Campo de ordenação desconhecido
// volta para created_at desc, sem erro.
func (f PetFilters) Normalize() PetFilters {
	f.Especie = strings.TrimSpace(f.Especie)
	f.Genero = strings.TrimSpace(f.Genero)
	f.Search = strings.TrimSpace(f.Search)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPetsPage {
		f.Page = MaxPetsPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPetsPerPage
	}
	if f.PerPage > MaxPetsPerPage {
		f.PerPage = MaxPetsPerPage
	}

	if f.SortBy == "" {
		f.SortBy = SortByCreatedAt
	}
	if _, ok := allowedPetSortFields[f.SortBy]; !ok {
		f.SortBy = SortByCreatedAt
		f.SortDirection = SortDesc
		return f
	}

	switch SortDirection(strings.ToLower(string(f.SortDirection))) {
	case SortAsc:
		f.SortDirection = SortAsc
	default:
		f.SortDirection = SortDesc
	}

	return f
}

// Offset retorna o deslocamento da página atual
func (f PetFilters) Offset() int {
	return (f.Page - 1) * f.PerPage
}
