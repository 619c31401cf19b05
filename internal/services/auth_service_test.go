package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domainerrors "github.com/rafabene/ciaopet-backend/internal/domain/errors"
	"github.com/rafabene/ciaopet-backend/internal/domain/repositories"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/auth"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/ciaopet-backend/internal/services"
	"github.com/rafabene/ciaopet-backend/internal/testutil"
)

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		tokens  repositories.AccessTokenRepository
		service *services.AuthService
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())

		tokens = postgres.NewAccessTokenRepository(db)
		service = services.NewAuthService(
			postgres.NewUserRepository(db),
			tokens,
			auth.NewTokenIssuer("segredo-de-teste", time.Hour),
			postgres.NewUnitOfWork(db),
			logging.NewNopLogger(),
		).WithHashCost(bcrypt.MinCost)
	})

	AfterEach(func() {
		testutil.CloseDB(db)
	})

	register := func() *services.AuthResult {
		result, err := service.Register(ctx, services.RegisterInput{
			Name:     "João Silva",
			Email:    "Joao@Example.com",
			Password: "password123",
		})
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	Describe("Register", func() {
		It("cria o usuário com e-mail normalizado e emite um token", func() {
			result := register()

			Expect(result.User.ID).NotTo(BeZero())
			Expect(result.User.Email.String()).To(Equal("joao@example.com"))
			Expect(result.User.PasswordHash).NotTo(Equal("password123"))
			Expect(result.Token).NotTo(BeEmpty())
		})

		It("rejeita e-mail já cadastrado sem criar token", func() {
			register()

			_, err := service.Register(ctx, services.RegisterInput{
				Name: "Outro", Email: "joao@example.com", Password: "password123",
			})

			var verr *domainerrors.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Fields["email"][0].Key).To(Equal("validation.email.unique"))

			var count int64
			Expect(db.Model(&postgres.AccessTokenModel{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			register()
		})

		It("emite um token com credenciais válidas", func() {
			result, err := service.Login(ctx, "joao@example.com", "password123")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.User.Name).To(Equal("João Silva"))
			Expect(result.Token).NotTo(BeEmpty())
		})

		It("rejeita senha incorreta", func() {
			_, err := service.Login(ctx, "joao@example.com", "errada")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita e-mail desconhecido", func() {
			_, err := service.Login(ctx, "ninguem@example.com", "password123")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})
	})

	Describe("Authenticate e Logout", func() {
		It("aceita o token emitido e o rejeita após o logout", func() {
			result := register()

			principal, err := service.Authenticate(ctx, result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.User.ID).To(Equal(result.User.ID))

			Expect(service.Logout(ctx, principal.TokenID)).To(Succeed())

			_, err = service.Authenticate(ctx, result.Token)
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})

		It("rejeita token malformado", func() {
			_, err := service.Authenticate(ctx, "abc.def.ghi")
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})

		It("rejeita token cujo registro expirou", func() {
			result := register()

			service.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

			_, err := service.Authenticate(ctx, result.Token)
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})
})
