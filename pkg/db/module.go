// Package db opens the shared gorm handle for the application.
package db

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pdushie/bundle-management-app-sub001/internal/config"
)

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	log.Info("database connected")
	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
