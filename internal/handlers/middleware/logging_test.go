package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "sucesso em info", status: http.StatusOK, level: "INFO"},
		{name: "erro do cliente em warn", status: http.StatusUnprocessableEntity, level: "WARN"},
		{name: "erro do servidor em error", status: http.StatusInternalServerError, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			router := gin.New()
			router.Use(RequestLogger(logging.NewSlogLoggerWithWriter(&buf, "debug")))
			router.GET("/api/pets", func(c *gin.Context) {
				c.Status(tt.status)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/pets", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log não é JSON: %v (%s)", err, buf.String())
			}
			if entry["level"] != tt.level {
				t.Errorf("esperava nível %s, obteve %v", tt.level, entry["level"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("esperava status %d, obteve %v", tt.status, entry["status"])
			}
			if entry["path"] != "/api/pets" {
				t.Errorf("path inesperado: %v", entry["path"])
			}
		})
	}
}
