package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
)

// GormLogger encaminha os logs do GORM para o ports.Logger da aplicação
type GormLogger struct {
	log    ports.Logger
	Config logger.Config
}

// NewGormLogger cria um GormLogger com o nível informado ("silent", "error", "warn", "info")
func NewGormLogger(log ports.Logger, level string) *GormLogger {
	return &GormLogger{
		log: log.With("component", "gorm"),
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  ParseGormLevel(level),
			IgnoreRecordNotFoundError: true,
		},
	}
}

// ParseGormLevel converte o nível textual; desconhecidos viram warn
func ParseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.Config.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

// Trace registra as queries; erros de registro não encontrado e de chave
// duplicada são tratados pelas camadas superiores
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !isExpectedError(err):
		l.log.Error("query failed",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
			"error", err.Error(),
		)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Config.LogLevel >= logger.Warn:
		l.log.Warn("slow query",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
		)
	case l.Config.LogLevel >= logger.Info:
		l.log.Debug("query",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}

func isExpectedError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}
