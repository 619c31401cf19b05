package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
)

// PetRepository implementa repositories.PetRepository
type PetRepository struct {
	db *gorm.DB
}

// NewPetRepository cria um novo PetRepository
func NewPetRepository(db *gorm.DB) repositories.PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, fields entities.PetFields) (*entities.Pet, error) {
	model := &PetModel{}
	applyPetFields(model, fields)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return nil, translatePetError(err)
	}

	return r.findByID(ctx, model.ID, false)
}

func (r *PetRepository) FindByID(ctx context.Context, id uint) (*entities.Pet, error) {
	return r.findByID(ctx, id, false)
}

func (r *PetRepository) FindByIDWithDeleted(ctx context.Context, id uint) (*entities.Pet, error) {
	return r.findByID(ctx, id, true)
}

func (r *PetRepository) findByID(ctx context.Context, id uint, withDeleted bool) (*entities.Pet, error) {
	var model PetModel

	query := conn(ctx, r.db).Preload("Tutor").Where("pets.id = ?", id)
	if !withDeleted {
		query = query.Scopes(activePets)
	}

	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toPetEntity(&model)
}

// Update altera apenas os campos enviados de um pet não removido
func (r *PetRepository) Update(ctx context.Context, id uint, fields entities.PetFields) error {
	updates := petUpdates(fields)
	updates["updated_at"] = time.Now().UTC()

	err := conn(ctx, r.db).
		Model(&PetModel{}).
		Where("id = ?", id).
		Scopes(activePets).
		Updates(updates).Error

	return translatePetError(err)
}

// SoftDelete marca o pet como removido. Retorna false se não havia pet ativo.
func (r *PetRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	now := time.Now().UTC()

	result := conn(ctx, r.db).
		Model(&PetModel{}).
		Where("id = ?", id).
		Scopes(activePets).
		Updates(map[string]any{"deleted_at": now, "updated_at": now})

	return result.RowsAffected > 0, result.Error
}

// Restore limpa a marca de remoção. Retorna false se o pet não estava removido.
func (r *PetRepository) Restore(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).
		Model(&PetModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{"deleted_at": nil, "updated_at": time.Now().UTC()})

	return result.RowsAffected > 0, result.Error
}

func (r *PetRepository) List(ctx context.Context, filters repositories.PetFilters) (*repositories.PetPage, error) {
	f := filters.Normalize()

	base := func() *gorm.DB {
		return conn(ctx, r.db).Model(&PetModel{}).Scopes(activePets, filterPets(f))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	var models []*PetModel
	if err := base().Preload("Tutor").Scopes(sortPets(f), paginate(f)).Find(&models).Error; err != nil {
		return nil, err
	}

	pets := make([]*entities.Pet, 0, len(models))
	for _, model := range models {
		pet, err := toPetEntity(model)
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}

	return repositories.NewPetPage(pets, f.Page, f.PerPage, total), nil
}

// MicrochipExists considera também pets removidos, já que o índice único
// cobre todos os registros
func (r *PetRepository) MicrochipExists(ctx context.Context, microchip string, exceptID *uint) (bool, error) {
	var count int64

	query := conn(ctx, r.db).Model(&PetModel{}).Where("numero_microchip = ?", microchip)
	if exceptID != nil {
		query = query.Where("id <> ?", *exceptID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// translatePetError converte a violação do índice único de microchip
func translatePetError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrMicrochipAlreadyExists
	}
	return err
}

func applyPetFields(model *PetModel, fields entities.PetFields) {
	model.Nome = fields.Nome
	model.Especie = fields.Especie

	if fields.Raca.Set {
		model.Raca = fields.Raca.Value
	}
	if fields.Genero.Set {
		model.Genero = genderToString(fields.Genero.Value)
	}
	if fields.DataNascimento.Set {
		model.DataNascimento = fields.DataNascimento.Value
	}
	if fields.Peso.Set {
		model.Peso = fields.Peso.Value
	}
	if fields.NumeroMicrochip.Set {
		model.NumeroMicrochip = fields.NumeroMicrochip.Value
	}
	if fields.Observacoes.Set {
		model.Observacoes = fields.Observacoes.Value
	}
	if fields.TutorID.Set {
		model.TutorID = fields.TutorID.Value
	}
}

// petUpdates monta o mapa de colunas a atualizar; valores nil gravam NULL
func petUpdates(fields entities.PetFields) map[string]any {
	updates := map[string]any{
		"nome":    fields.Nome,
		"especie": fields.Especie,
	}

	if fields.Raca.Set {
		updates["raca"] = nullable(fields.Raca.Value)
	}
	if fields.Genero.Set {
		updates["genero"] = nullable(genderToString(fields.Genero.Value))
	}
	if fields.DataNascimento.Set {
		updates["data_nascimento"] = nullable(fields.DataNascimento.Value)
	}
	if fields.Peso.Set {
		updates["peso"] = nullable(fields.Peso.Value)
	}
	if fields.NumeroMicrochip.Set {
		updates["numero_microchip"] = nullable(fields.NumeroMicrochip.Value)
	}
	if fields.Observacoes.Set {
		updates["observacoes"] = nullable(fields.Observacoes.Value)
	}
	if fields.TutorID.Set {
		updates["tutor_id"] = nullable(fields.TutorID.Value)
	}

	return updates
}

func nullable[T any](value *T) any {
	if value == nil {
		return nil
	}
	return *value
}

func genderToString(g *entities.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

func toPetEntity(model *PetModel) (*entities.Pet, error) {
	pet := &entities.Pet{
		ID:              model.ID,
		Nome:            model.Nome,
		Especie:         model.Especie,
		Raca:            model.Raca,
		Peso:            model.Peso,
		NumeroMicrochip: model.NumeroMicrochip,
		Observacoes:     model.Observacoes,
		TutorID:         model.TutorID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
		DeletedAt:       model.DeletedAt,
	}

	if model.Genero != nil {
		g := entities.Gender(*model.Genero)
		pet.Genero = &g
	}

	if model.DataNascimento != nil {
		d := model.DataNascimento.UTC()
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		pet.DataNascimento = &d
	}

	if model.Tutor != nil {
		tutor, err := toUserEntity(model.Tutor)
		if err != nil {
			return nil, err
		}
		pet.Tutor = tutor
	}

	return pet, nil
}
