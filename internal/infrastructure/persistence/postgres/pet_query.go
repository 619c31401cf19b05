package postgres

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Busca case-insensitive em nome, raça e microchip
const searchCondition = `(LOWER(pets.nome) LIKE LOWER(?) ESCAPE '\'` +
	` OR LOWER(pets.raca) LIKE LOWER(?) ESCAPE '\'` +
	` OR LOWER(pets.numero_microchip) LIKE LOWER(?) ESCAPE '\')`

// activePets exclui pets removidos logicamente
func activePets(db *gorm.DB) *gorm.DB {
	return db.Where("pets.deleted_at IS NULL")
}

// filterPets aplica os filtros de espécie, gênero e busca textual.
// Filtros vazios são ignorados.
func filterPets(f repositories.PetFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Especie != "" {
			db = db.Where("pets.especie = ?", f.Especie)
		}
		if f.Genero != "" {
			db = db.Where("pets.genero = ?", f.Genero)
		}
		if f.Search != "" {
			term := "%" + likeEscaper.Replace(f.Search) + "%"
			db = db.Where(
				searchCondition,
				term, term, term,
			)
		}
		return db
	}
}

// sortPets ordena pelo campo permitido com id como desempate
func sortPets(f repositories.PetFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		desc := f.SortDirection == repositories.SortDesc
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Table: "pets", Name: string(f.SortBy)}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: "pets", Name: "id"}, Desc: desc})
	}
}

func paginate(f repositories.PetFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(f.Offset()).Limit(f.PerPage)
	}
}
