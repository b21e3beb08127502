package repository

import (
	"time"

	"dbconnmanager/config"
	"dbconnmanager/models"

	"gorm.io/gorm"
)

// DBConnectionRepository provides data access operations for connection records.
type DBConnectionRepository interface {
	GetByID(tx *gorm.DB, id uint) (*models.DBConnection, error)
	GetAll(tx *gorm.DB) ([]models.DBConnection, error)
	Create(tx *gorm.DB, conn *models.DBConnection) error
	UpdateDetails(tx *gorm.DB, conn *models.DBConnection) error
	UpdateStatus(tx *gorm.DB, id uint, status, message string, at time.Time) error
	DeleteByID(tx *gorm.DB, id uint) error
}

type dbConnectionRepository struct {
	db *gorm.DB
}

// NewDBConnectionRepository creates a repository on the global record store connection.
func NewDBConnectionRepository() DBConnectionRepository {
	return NewDBConnectionRepositoryWithDB(config.DB)
}

// NewDBConnectionRepositoryWithDB creates a repository on an explicit GORM handle.
func NewDBConnectionRepositoryWithDB(db *gorm.DB) DBConnectionRepository {
	return &dbConnectionRepository{db: db}
}

func (r *dbConnectionRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dbConnectionRepository) GetByID(tx *gorm.DB, id uint) (*models.DBConnection, error) {
	var rec models.DBConnection
	if err := r.conn(tx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *dbConnectionRepository) GetAll(tx *gorm.DB) ([]models.DBConnection, error) {
	var recs []models.DBConnection
	if err := r.conn(tx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *dbConnectionRepository) Create(tx *gorm.DB, conn *models.DBConnection) error {
	return r.conn(tx).Create(conn).Error
}

// UpdateDetails writes title, lifecycle state and credential columns. Status columns are never touched.
func (r *dbConnectionRepository) UpdateDetails(tx *gorm.DB, conn *models.DBConnection) error {
	res := r.conn(tx).Model(&models.DBConnection{}).Where("id = ?", conn.ID).Updates(map[string]interface{}{
		"title":         conn.Title,
		"post_status":   conn.PostStatus,
		"db_type":       conn.DBType,
		"host":          conn.Host,
		"port":          conn.Port,
		"username":      conn.Username,
		"password":      conn.Password,
		"database_name": conn.Database,
		"options":       conn.Options,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus writes the three status columns in one statement.
func (r *dbConnectionRepository) UpdateStatus(tx *gorm.DB, id uint, status, message string, at time.Time) error {
	return r.conn(tx).Model(&models.DBConnection{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         status,
		"status_message": message,
		"status_updated": at,
	}).Error
}

func (r *dbConnectionRepository) DeleteByID(tx *gorm.DB, id uint) error {
	res := r.conn(tx).Delete(&models.DBConnection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
