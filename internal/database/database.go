package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// Initialize opens the sqlite file backing the session store
func Initialize(dbPath string, verbose bool) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dbPath != "" && dbPath != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logLevel := logger.Error
	if verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// sqlite serializes writers; a single connection also keeps :memory: databases shared
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("[INFO] Migrated %d model(s)", len(models))
	return nil
}

// Models lists every table owned by the session store
func Models() []any {
	return []any{&models.Session{}, &models.StoreState{}}
}

// Migrate creates or updates the session store tables
func (db *DB) Migrate() error {
	return db.AutoMigrate(Models()...)
}

// MigrationStatus reports whether each store table exists
func (db *DB) MigrationStatus() map[string]bool {
	status := make(map[string]bool)
	migrator := db.DB.Migrator()
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db.DB}
		name := fmt.Sprintf("%T", m)
		if err := stmt.Parse(m); err == nil {
			name = stmt.Schema.Table
		}
		status[name] = migrator.HasTable(m)
	}
	return status
}
