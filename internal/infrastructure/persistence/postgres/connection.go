package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/config"
)

// NewGormConfig retorna a configuração GORM comum a todos os dialetos.
// TranslateError converte violações de unicidade em gorm.ErrDuplicatedKey.
func NewGormConfig(log ports.Logger, logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger: NewGormLogger(log, logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:    false,
		TranslateError: true,
	}
}

// NewDatabaseConnection cria uma nova conexão com o PostgreSQL
func NewDatabaseConnection(cfg *config.DatabaseConfig, log ports.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DSN()), cfg, log)
}

// Open abre a conexão com o dialeto informado e configura o pool
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig, log ports.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, NewGormConfig(log, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configurar connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxIdleTime(cfg.MaxIdleTime)

	// Ping para verificar conexão
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	return db, nil
}
