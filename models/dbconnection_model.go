package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Supported database types for a DBConnection.
const (
	DBTypeMySQL   = "mysql"
	DBTypeMongoDB = "mongodb"
)

// Lifecycle states of a DBConnection record.
const (
	PostStatusDraft   = "draft"
	PostStatusPublish = "publish"
)

// Connection test outcomes. StatusUnset means the record was never tested.
const (
	StatusUnset   = ""
	StatusSuccess = "success"
	StatusError   = "error"
)

// DBConnection stores the parameters of one external database connection
// together with the outcome of its most recent connection test.
// Status, StatusMessage and StatusUpdated are always written together.
type DBConnection struct {
	ID            uint       `gorm:"primaryKey;column:id" json:"id"`
	Title         string     `gorm:"column:title" json:"title"`
	PostStatus    string     `gorm:"column:post_status;default:draft" json:"post_status"` // draft/publish, only published records serve queries
	DBType        string     `gorm:"column:db_type;default:mysql" json:"db_type"`         // mysql, mongodb
	Host          string     `gorm:"column:host" json:"host"`
	Port          string     `gorm:"column:port" json:"port"` // digits only, empty means driver default
	Username      string     `gorm:"column:username" json:"username"`
	Password      string     `gorm:"column:password" json:"-"`
	Database      string     `gorm:"column:database_name" json:"database"` // database name, or auth source for MongoDB
	Options       string     `gorm:"column:options;type:text" json:"options"` // empty or valid JSON
	Status        string     `gorm:"column:status" json:"status"`
	StatusMessage string     `gorm:"column:status_message;type:text" json:"status_message"`
	StatusUpdated *time.Time `gorm:"column:status_updated" json:"status_updated"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the static table name for GORM.
func (DBConnection) TableName() string {
	return "db_connections"
}

// IsPublished reports whether the record may serve embedded queries.
func (c *DBConnection) IsPublished() bool {
	return c.PostStatus == PostStatusPublish
}

// MaskedPassword returns one bullet per password character, or "" when no password is set.
func (c *DBConnection) MaskedPassword() string {
	return strings.Repeat("•", utf8.RuneCountInString(c.Password))
}

// DBConnectionView is the admin-facing representation of a record; the password is masked.
type DBConnectionView struct {
	DBConnection
	PasswordMask string `json:"password"`
}

// View builds the masked admin representation.
func (c DBConnection) View() DBConnectionView {
	return DBConnectionView{DBConnection: c, PasswordMask: c.MaskedPassword()}
}
