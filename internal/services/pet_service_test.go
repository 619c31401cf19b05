package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/ciaopet-backend/internal/services"
	"github.com/rafabene/ciaopet-backend/internal/testutil"
)

var _ = Describe("PetService", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *services.PetService
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())
		service = services.NewPetService(postgres.NewPetRepository(db), logging.NewNopLogger())
	})

	AfterEach(func() {
		testutil.CloseDB(db)
	})

	rex := func() entities.PetFields {
		return entities.PetFields{
			Nome:            "Rex",
			Especie:         "Cachorro",
			Raca:            entities.Some("Pastor Alemão"),
			Genero:          entities.Some(entities.GenderMale),
			DataNascimento:  entities.Some(time.Date(2021, time.June, 10, 0, 0, 0, 0, time.UTC)),
			Peso:            entities.Some(35.5),
			NumeroMicrochip: entities.Some("123456789012345"),
		}
	}

	Describe("CreatePet", func() {
		It("persiste o pet com id e timestamps gerados", func() {
			pet, err := service.CreatePet(ctx, rex())

			Expect(err).NotTo(HaveOccurred())
			Expect(pet.ID).NotTo(BeZero())
			Expect(pet.CreatedAt).NotTo(BeZero())
			Expect(*pet.FormattedWeight()).To(Equal("35.50 kg"))
			Expect(pet.IsDeleted()).To(BeFalse())
		})

		It("converte a colisão no índice único em erro de validação do microchip", func() {
			_, err := service.CreatePet(ctx, rex())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreatePet(ctx, rex())

			var verr *domainerrors.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Fields).To(HaveKey("numero_microchip"))
			Expect(verr.Fields["numero_microchip"][0].Key).To(Equal("validation.numero_microchip.unique"))
		})
	})

	Describe("GetPet", func() {
		It("retorna NotFoundError com recurso e id", func() {
			_, err := service.GetPet(ctx, 99)

			Expect(errors.Is(err, domainerrors.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(err, domainerrors.ErrPetNotFound)).To(BeTrue())

			var nf *domainerrors.NotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(nf.Resource).To(Equal("Pet"))
			Expect(nf.ID).To(Equal(uint(99)))
		})
	})

	Describe("UpdatePet", func() {
		It("altera apenas os campos enviados e recarrega o pet", func() {
			pet, err := service.CreatePet(ctx, rex())
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdatePet(ctx, pet, entities.PetFields{
				Nome:    "Rex",
				Especie: "Cachorro",
				Peso:    entities.Some(36.0),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Peso).To(BeNumerically("~", 36.0, 0.001))
			Expect(*updated.Raca).To(Equal("Pastor Alemão"))
			Expect(*updated.NumeroMicrochip).To(Equal("123456789012345"))
		})

		It("falha com NotFound para pet removido", func() {
			pet, err := service.CreatePet(ctx, rex())
			Expect(err).NotTo(HaveOccurred())
			_, err = service.DeletePet(ctx, pet)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdatePet(ctx, pet, entities.PetFields{Nome: "Rex", Especie: "Cachorro"})
			Expect(errors.Is(err, domainerrors.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("DeletePet e RestorePet", func() {
		It("remove logicamente e restaura", func() {
			pet, err := service.CreatePet(ctx, rex())
			Expect(err).NotTo(HaveOccurred())

			deleted, err := service.DeletePet(ctx, pet)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = service.GetPet(ctx, pet.ID)
			Expect(errors.Is(err, domainerrors.ErrPetNotFound)).To(BeTrue())

			deleted, err = service.DeletePet(ctx, pet)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())

			restored, err := service.RestorePet(ctx, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.IsDeleted()).To(BeFalse())
			Expect(restored.Nome).To(Equal("Rex"))
		})

		It("restaurar um pet ativo não tem efeito", func() {
			pet, err := service.CreatePet(ctx, rex())
			Expect(err).NotTo(HaveOccurred())

			restored, err := service.RestorePet(ctx, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.ID).To(Equal(pet.ID))
		})

		It("restaurar um id inexistente retorna NotFound", func() {
			_, err := service.RestorePet(ctx, 1234)
			Expect(errors.Is(err, domainerrors.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("ListPets", func() {
		BeforeEach(func() {
			for _, f := range []entities.PetFields{
				{Nome: "Rex", Especie: "Cachorro"},
				{Nome: "Mimi", Especie: "Gato"},
				{Nome: "Bolinha", Especie: "Cachorro"},
			} {
				_, err := service.CreatePet(ctx, f)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("filtra, ordena e pagina", func() {
			page, err := service.ListPets(ctx, repositories.PetFilters{
				Especie:       "Cachorro",
				SortBy:        repositories.SortByNome,
				SortDirection: repositories.SortAsc,
				PerPage:       1,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
			Expect(page.LastPage).To(Equal(2))
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Nome).To(Equal("Bolinha"))
		})

		It("limita per_page em 100", func() {
			page, err := service.ListPets(ctx, repositories.PetFilters{PerPage: 200})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.PerPage).To(Equal(100))
			Expect(page.Items).To(HaveLen(3))
		})
	})

	Describe("FormOptions", func() {
		It("retorna gêneros e espécies comuns", func() {
			options := service.FormOptions()

			Expect(options.Genders).To(Equal([]entities.Gender{
				entities.GenderMale, entities.GenderFemale, entities.GenderUnknown,
			}))
			Expect(options.CommonSpecies).To(ContainElements("Cachorro", "Gato", "Tartaruga"))
			Expect(options.CommonSpecies).To(HaveLen(7))
		})
	})
})
