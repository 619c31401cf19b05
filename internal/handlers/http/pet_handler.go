package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/handlers/dto"
	"github.com/rafabene/ciaopet-backend/internal/services"
	"github.com/rafabene/ciaopet-backend/internal/validation"
)

const petResource = "Pet"

// PetHandler lida com requisições HTTP relacionadas a pets
type PetHandler struct {
	petService *services.PetService
	validator  *validation.PetValidator
	logger     ports.Logger
	now        func() time.Time
}

// NewPetHandler cria um novo PetHandler
func NewPetHandler(petService *services.PetService, validator *validation.PetValidator, logger ports.Logger) *PetHandler {
	return &PetHandler{
		petService: petService,
		validator:  validator,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock substitui o relógio usado no cálculo da idade
func (h *PetHandler) WithClock(now func() time.Time) *PetHandler {
	h.now = now
	return h
}

// ListPets lista pets com filtros, ordenação e paginação
// @Summary List pets
// @Description Lists active pets. Unknown sort fields fall back to created_at desc; per_page is capped at 100.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param especie query string false "Exact species"
// @Param genero query string false "Exact gender" Enums(Macho, Fêmea, Desconhecido)
// @Param search query string false "Substring of nome, raca or numero_microchip"
// @Param sort_by query string false "Sort field" Enums(nome, especie, created_at, data_nascimento)
// @Param sort_direction query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page (from 1)"
// @Param per_page query int false "Items per page (default 15, max 100)"
// @Success 200 {object} dto.PaginatedResponse{data=[]dto.PetResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /pets [get]
func (h *PetHandler) ListPets(c *gin.Context) {
	var query dto.ListPetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.WriteError(c, dto.BadRequestErrorResponseI18n(c, errInvalidJSON.Error()))
		return
	}

	page, err := h.petService.ListPets(c.Request.Context(), query.ToFilters())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Success:    true,
		Data:       dto.ToPetResponses(page.Items, h.now()),
		Pagination: dto.NewPagination(page.Page, page.PerPage, page.Total, page.LastPage),
	})
}

// Options retorna os valores dos campos de formulário
// @Summary Pet form options
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=dto.FormOptionsResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /pets/options [get]
func (h *PetHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    dto.ToFormOptionsResponse(h.petService.FormOptions()),
	})
}

// CreatePet cadastra um novo pet
// @Summary Create pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{nome=string,especie=string,raca=string,genero=string,data_nascimento=string,peso=number,numero_microchip=string,observacoes=string,tutor_id=int} true "Pet"
// @Success 201 {object} dto.Response{data=dto.PetResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pets [post]
func (h *PetHandler) CreatePet(c *gin.Context) {
	raw, err := decodeRawPet(c.Request.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	fields, err := h.validator.ValidateCreate(c.Request.Context(), raw)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	pet, err := h.petService.CreatePet(c.Request.Context(), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: dto.T(c, "pet.created"),
		Data:    dto.ToPetResponse(pet, h.now()),
	})
}

// GetPet busca um pet por ID
// @Summary Show pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} dto.Response{data=dto.PetResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pets/{id} [get]
func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := parseID(c, petResource, domainerrors.ErrPetNotFound)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    dto.ToPetResponse(pet, h.now()),
	})
}

// UpdatePet atualiza um pet; apenas os campos enviados são alterados
// @Summary Update pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Param request body object{nome=string,especie=string,raca=string,genero=string,data_nascimento=string,peso=number,numero_microchip=string,observacoes=string,tutor_id=int} true "Pet"
// @Success 200 {object} dto.Response{data=dto.PetResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pets/{id} [put]
// @Router /pets/{id} [patch]
func (h *PetHandler) UpdatePet(c *gin.Context) {
	id, err := parseID(c, petResource, domainerrors.ErrPetNotFound)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	raw, err := decodeRawPet(c.Request.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	fields, err := h.validator.ValidateUpdate(c.Request.Context(), pet.ID, raw)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	updated, err := h.petService.UpdatePet(c.Request.Context(), pet, fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: dto.T(c, "pet.updated"),
		Data:    dto.ToPetResponse(updated, h.now()),
	})
}

// DeletePet remove logicamente um pet
// @Summary Delete pet
// @Description Soft delete; the pet can be restored later.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pets/{id} [delete]
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, err := parseID(c, petResource, domainerrors.ErrPetNotFound)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if _, err := h.petService.DeletePet(c.Request.Context(), pet); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: dto.T(c, "pet.deleted"),
	})
}

// RestorePet desfaz a remoção lógica de um pet
// @Summary Restore pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} dto.Response{data=dto.PetResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pets/{id}/restore [post]
func (h *PetHandler) RestorePet(c *gin.Context) {
	id, err := parseID(c, petResource, domainerrors.ErrPetNotFound)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	pet, err := h.petService.RestorePet(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: dto.T(c, "pet.restored"),
		Data:    dto.ToPetResponse(pet, h.now()),
	})
}
