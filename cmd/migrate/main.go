package main

import (
	"wanderlist/internal/config" // Custom import path (Config)
	"wanderlist/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The signing key is not needed to migrate, only the database settings
	if cfg.DBName == "" {
		logrus.Fatal("DB_NAME is required")
	}

	gdb, err := db.Connect(cfg.DBType, cfg.DSN(), 1)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.WithField("driver", cfg.DBType).Info("Migration completed")
}
