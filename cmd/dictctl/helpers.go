package main

import (
	"fmt"

	"github.com/amchigale/konkani-dictionary/internal/config"
	"github.com/amchigale/konkani-dictionary/internal/database"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openDB returns the configured database and a closer
func openDB(cfg *config.Config) (*gorm.DB, func(), error) {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closer := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closer, nil
}

func loadConfigAndDB() (*config.Config, *gorm.DB, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	db, closer, err := openDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, db, closer, nil
}
