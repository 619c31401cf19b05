package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	httphandlers "github.com/rafabene/ciaopet-backend/internal/handlers/http"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/auth"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/i18n"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/ciaopet-backend/internal/services"
	"github.com/rafabene/ciaopet-backend/internal/testutil"
	"github.com/rafabene/ciaopet-backend/internal/validation"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewSQLiteDB()
	require.NoError(t, err)
	t.Cleanup(func() { testutil.CloseDB(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)

	translations, err := i18n.NewEmbeddedService("pt-BR")
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	userRepo := postgres.NewUserRepository(db)
	petRepo := postgres.NewPetRepository(db)

	authService := services.NewAuthService(
		userRepo,
		postgres.NewAccessTokenRepository(db),
		auth.NewTokenIssuer("segredo-de-teste-com-mais-de-32-caracteres", time.Hour),
		postgres.NewUnitOfWork(db),
		logger,
	).WithHashCost(bcrypt.MinCost)

	petHandler := httphandlers.NewPetHandler(
		services.NewPetService(petRepo, logger),
		validation.NewPetValidator(petRepo, userRepo).WithClock(func() time.Time { return fixedNow }),
		logger,
	).WithClock(func() time.Time { return fixedNow })

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            "test",
		BaseURL:        "http://api.test",
		AllowedOrigins: []string{"*"},
		I18n:           translations,
		Auth:           middleware.NewAuthMiddleware(authService, logger),
		Pets:           petHandler,
		Users:          httphandlers.NewAuthHandler(authService, logger),
		Database:       sqlDB,
		Logger:         logger,
	})

	return &testAPI{t: t, router: router, db: db}
}

// do envia a requisição; body pode ser string (enviada como está) ou qualquer valor serializável
func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register cria um usuário pela API e devolve o id e o token
func (a *testAPI) register(name, email string) (uint, string) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name":                  name,
		"email":                 email,
		"password":              "password123",
		"password_confirmation": "password123",
	}, "")
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.User.ID, body.Data.Token
}

func (a *testAPI) createPet(token string, pet map[string]any) uint {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/pets", pet, token)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(a.t, w)
	return uint(body["data"].(map[string]any)["id"].(float64))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Errors
}
