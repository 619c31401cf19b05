package seed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/ciaopet-backend/internal/domain/entities"
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
	"github.com/rafabene/ciaopet-backend/internal/domain/valueobjects"
)

// DemoPassword é a senha de todos os tutores de demonstração
const DemoPassword = "password123"

type demoTutor struct {
	name  string
	email string
}

var demoTutors = []demoTutor{
	{name: "João Silva", email: "joao@ciaopet.com"},
	{name: "Maria Santos", email: "maria@ciaopet.com"},
}

// demoPet referencia o tutor pelo índice em demoTutors; -1 é sem tutor
type demoPet struct {
	nome        string
	especie     string
	raca        string
	genero      entities.Gender
	nascimento  string
	peso        float64
	microchip   string
	tutor       int
	observacoes string
}

var demoPets = []demoPet{
	{"Rex", "Cachorro", "Pastor Alemão", entities.GenderMale, "2021-06-10", 35.5, "123456789012345", 0, "Pet muito protetor e obediente. Adora brincar no parque."},
	{"Bella", "Gato", "Persa", entities.GenderFemale, "2022-03-15", 4.2, "987654321098765", 1, "Gata muito carinhosa e independente. Gosta de ficar no sol."},
	{"Max", "Cachorro", "Golden Retriever", entities.GenderMale, "2020-09-22", 28.0, "456789123456789", 0, "Cachorro muito energético e brincalhão. Adora nadar."},
	{"Luna", "Gato", "Siamês", entities.GenderFemale, "2023-01-08", 3.8, "", 1, "Gata muito vocal e curiosa. Segue o tutor pela casa."},
	{"Thor", "Cachorro", "Rottweiler", entities.GenderMale, "2019-11-30", 45.2, "789123456789123", -1, "Cachorro imponente mas dócil. Precisa de exercícios regulares."},
	{"Mimi", "Gato", "Vira-lata", entities.GenderFemale, "2021-07-14", 3.5, "", -1, "Gatinha resgatada. Muito carinhosa depois que pega confiança."},
	{"Buddy", "Cachorro", "Beagle", entities.GenderMale, "2022-05-20", 15.8, "321654987321654", 0, "Cachorro muito sociável e curioso. Adora farejar tudo."},
	{"Nala", "Gato", "Maine Coon", entities.GenderFemale, "2020-12-03", 5.8, "654321987654321", -1, "Gata grande e majestosa. Muito calma e elegante."},
	{"Charlie", "Pássaro", "Calopsita", entities.GenderMale, "2023-04-12", 0.09, "", 1, "Pássaro muito inteligente e falante. Sabe assobiar várias músicas."},
	{"Bolt", "Cachorro", "Border Collie", entities.GenderMale, "2021-02-28", 22.3, "147258369147258", -1, "Cachorro extremamente inteligente e ágil. Ótimo para adestramento."},
}

// Result resume o que foi criado por uma execução do seeder
type Result struct {
	Tutors int
	Pets   int
}

// Seeder popula o banco com tutores e pets
type Seeder struct {
	users    repositories.UserRepository
	pets     repositories.PetRepository
	uow      ports.UnitOfWork
	logger   ports.Logger
	hashCost int
}

// NewSeeder cria um novo Seeder
func NewSeeder(users repositories.UserRepository, pets repositories.PetRepository, uow ports.UnitOfWork, logger ports.Logger) *Seeder {
	return &Seeder{
		users:    users,
		pets:     pets,
		uow:      uow,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost altera o custo do bcrypt das senhas de demonstração
func (s *Seeder) WithHashCost(cost int) *Seeder {
	s.hashCost = cost
	return s
}

// SeedDemo cria os tutores e os pets de demonstração. Tutores já cadastrados
// são reaproveitados e os pets só são criados quando não há nenhum pet ativo.
func (s *Seeder) SeedDemo(ctx context.Context) (*Result, error) {
	result := &Result{}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		tutorIDs := make([]uint, len(demoTutors))
		for i, tutor := range demoTutors {
			user, created, err := s.ensureTutor(txCtx, tutor.name, tutor.email)
			if err != nil {
				return err
			}
			tutorIDs[i] = user.ID
			if created {
				result.Tutors++
			}
		}

		page, err := s.pets.List(txCtx, repositories.PetFilters{PerPage: 1}.Normalize())
		if err != nil {
			return err
		}
		if page.Total > 0 {
			s.logger.Info("pets table already has data, skipping demo pets", "total", page.Total)
			return nil
		}

		for _, demo := range demoPets {
			fields, err := demo.toFields(tutorIDs)
			if err != nil {
				return err
			}
			if _, err := s.pets.Create(txCtx, fields); err != nil {
				return fmt.Errorf("creating demo pet %s: %w", demo.nome, err)
			}
			result.Pets++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("demo data seeded", "tutors", result.Tutors, "pets", result.Pets)
	return result, nil
}

// SeedFake cria count tutores e count pets aleatórios, cada pet com um dos novos tutores
func (s *Seeder) SeedFake(ctx context.Context, factory *Factory, count int) (*Result, error) {
	result := &Result{}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := 0; i < count; i++ {
			name, email := factory.Tutor()
			tutor, created, err := s.ensureTutor(txCtx, name, email)
			if err != nil {
				return err
			}
			if created {
				result.Tutors++
			}

			fields := factory.Pet(func(f *entities.PetFields) {
				f.TutorID = entities.Some(tutor.ID)
			})
			if _, err := s.pets.Create(txCtx, fields); err != nil {
				return fmt.Errorf("creating fake pet: %w", err)
			}
			result.Pets++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fake data seeded", "tutors", result.Tutors, "pets", result.Pets)
	return result, nil
}

func (s *Seeder) ensureTutor(ctx context.Context, name, rawEmail string) (*entities.User, bool, error) {
	email, err := valueobjects.NewEmail(rawEmail)
	if err != nil {
		return nil, false, fmt.Errorf("tutor %s: %w", rawEmail, err)
	}

	existing, err := s.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.hashCost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (d demoPet) toFields(tutorIDs []uint) (entities.PetFields, error) {
	birth, err := time.Parse("2006-01-02", d.nascimento)
	if err != nil {
		return entities.PetFields{}, fmt.Errorf("demo pet %s: %w", d.nome, err)
	}

	fields := entities.PetFields{
		Nome:            d.nome,
		Especie:         d.especie,
		Raca:            entities.Some(d.raca),
		Genero:          entities.Some(d.genero),
		DataNascimento:  entities.Some(birth),
		Peso:            entities.Some(d.peso),
		Observacoes:     entities.Some(d.observacoes),
		NumeroMicrochip: entities.Null[string](),
		TutorID:         entities.Null[uint](),
	}
	if d.microchip != "" {
		fields.NumeroMicrochip = entities.Some(d.microchip)
	}
	if d.tutor >= 0 {
		fields.TutorID = entities.Some(tutorIDs[d.tutor])
	}
	return fields, nil
}
