package repository

import (
	"dbconnmanager/config"
	"dbconnmanager/models"

	"gorm.io/gorm"
)

// BaseRepository provides transaction and schema management for the record store.
type BaseRepository interface {
	Begin() *gorm.DB
	Migrate() error
}

type baseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository instance with database connection.
func NewBaseRepository() BaseRepository {
	return NewBaseRepositoryWithDB(config.DB)
}

// NewBaseRepositoryWithDB creates a base repository on an explicit GORM handle.
func NewBaseRepositoryWithDB(db *gorm.DB) BaseRepository {
	return &baseRepository{db: db}
}

func (r *baseRepository) Begin() *gorm.DB {
	return r.db.Begin()
}

// Migrate creates or alters the tables backing the record store.
func (r *baseRepository) Migrate() error {
	return r.db.AutoMigrate(&models.DBConnection{})
}
