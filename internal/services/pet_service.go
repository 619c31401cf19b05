package services

import (
	"context"
	"errors"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
)

// PetService contém a lógica de negócio para pets
type PetService struct {
	petRepo repositories.PetRepository
	logger  ports.Logger
}

// NewPetService cria um novo PetService
func NewPetService(petRepo repositories.PetRepository, logger ports.Logger) *PetService {
	return &PetService{
		petRepo: petRepo,
		logger:  logger,
	}
}

// ListPets lista pets ativos com filtros, ordenação e paginação
func (s *PetService) ListPets(ctx context.Context, filters repositories.PetFilters) (*repositories.PetPage, error) {
	return s.petRepo.List(ctx, filters.Normalize())
}

// GetPet busca um pet ativo com o tutor carregado
func (s *PetService) GetPet(ctx context.Context, id uint) (*entities.Pet, error) {
	pet, err := s.petRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, petNotFound(id)
	}
	return pet, nil
}

// CreatePet persiste um pet já validado
func (s *PetService) CreatePet(ctx context.Context, fields entities.PetFields) (*entities.Pet, error) {
	pet, err := s.petRepo.Create(ctx, fields)
	if err != nil {
		return nil, s.translateWriteError(err, "create")
	}

	s.logger.Info("pet created", "pet_id", pet.ID, "especie", pet.Especie)
	return pet, nil
}

// UpdatePet aplica apenas os campos enviados e devolve o pet recarregado
func (s *PetService) UpdatePet(ctx context.Context, pet *entities.Pet, fields entities.PetFields) (*entities.Pet, error) {
	if err := s.petRepo.Update(ctx, pet.ID, fields); err != nil {
		return nil, s.translateWriteError(err, "update")
	}

	updated, err := s.GetPet(ctx, pet.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pet updated", "pet_id", updated.ID)
	return updated, nil
}

// DeletePet remove logicamente o pet. Retorna false se ele já não estava ativo.
func (s *PetService) DeletePet(ctx context.Context, pet *entities.Pet) (bool, error) {
	deleted, err := s.petRepo.SoftDelete(ctx, pet.ID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("pet deleted", "pet_id", pet.ID)
	}
	return deleted, nil
}

// RestorePet desfaz a remoção lógica. Restaurar um pet ativo não tem efeito.
func (s *PetService) RestorePet(ctx context.Context, id uint) (*entities.Pet, error) {
	pet, err := s.petRepo.FindByIDWithDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, petNotFound(id)
	}

	if pet.IsDeleted() {
		if _, err := s.petRepo.Restore(ctx, id); err != nil {
			return nil, err
		}
		s.logger.Info("pet restored", "pet_id", id)
	}

	return s.GetPet(ctx, id)
}

// FormOptions retorna os valores fixos usados nos formulários
func (s *PetService) FormOptions() entities.FormOptions {
	return entities.NewFormOptions()
}

// translateWriteError converte a colisão de microchip detectada pelo índice
// único (corrida após a validação) em erro de validação
func (s *PetService) translateWriteError(err error, operation string) error {
	if errors.Is(err, domainerrors.ErrMicrochipAlreadyExists) {
		s.logger.Warn("microchip collision on write", "operation", operation)
		verr := domainerrors.NewValidationError()
		verr.Add("numero_microchip", domainerrors.ErrMicrochipAlreadyExists.Error())
		return verr
	}
	return err
}

func petNotFound(id uint) error {
	return domainerrors.NewNotFoundError("Pet", id, domainerrors.ErrPetNotFound)
}
