package repositories

import (
	"context"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
)

// PetRepository define a interface para persistência de pets.
// Todas as leituras excluem pets removidos, exceto FindByIDWithDeleted.
type PetRepository interface {
	Create(ctx context.Context, fields entities.PetFields) (*entities.Pet, error)
	FindByID(ctx context.Context, id uint) (*entities.Pet, error)
	FindByIDWithDeleted(ctx context.Context, id uint) (*entities.Pet, error)
	Update(ctx context.Context, id uint, fields entities.PetFields) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filters PetFilters) (*PetPage, error)
	MicrochipExists(ctx context.Context, microchip string, exceptID *uint) (bool, error)
}

// PetPage é uma página de resultados com metadados de paginação
type PetPage struct {
	Items    []*entities.Pet
	Page     int
	PerPage  int
	Total    int64
	LastPage int
}

// NewPetPage calcula a última página a partir do total e do tamanho da página
func NewPetPage(items []*entities.Pet, page, perPage int, total int64) *PetPage {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}

	return &PetPage{
		Items:    items,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		LastPage: lastPage,
	}
}
