// Package testutil reúne helpers compartilhados pelos testes de integração.
package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
)

// NewSQLiteDB cria um banco SQLite em memória, isolado por chamada, com o
// schema dos models aplicado. Usa uma única conexão para que o banco viva
// enquanto o *gorm.DB estiver aberto.
func NewSQLiteDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), postgres.NewGormConfig(logging.NewNopLogger(), "silent"))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(postgres.Models()...); err != nil {
		return nil, err
	}

	return db, nil
}

// CloseDB fecha a conexão subjacente
func CloseDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
