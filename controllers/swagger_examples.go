package controllers

import (
	"dbconnmanager/models"
	"dbconnmanager/services"
	"dbconnmanager/services/notice"
)

// Example request/response models for Swagger documentation

// StandardErrorResponse represents an error payload
type StandardErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Invalid connection ID."`
}

// MessageResponse represents a plain confirmation
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Connection was deleted successfully"`
}

// ConnectionCredentialsExample documents the accepted credential keys
type ConnectionCredentialsExample struct {
	DBType   string `json:"db_type" example:"mysql" enums:"mysql,mongodb"`
	Host     string `json:"host" example:"db.internal"`
	Port     string `json:"port" example:"3306"`
	Username string `json:"username" example:"reporting"`
	Password string `json:"password" example:"s3cret"`
	Database string `json:"database" example:"shop"`
	Options  string `json:"options" example:"{\"charset\":\"utf8mb4\"}"`
}

// ConnectionSaveRequest represents the request body for creating or updating a connection
type ConnectionSaveRequest struct {
	Title       string                       `json:"title" example:"Reporting replica"`
	PostStatus  string                       `json:"post_status" example:"publish" enums:"draft,publish"`
	Credentials ConnectionCredentialsExample `json:"credentials"`
}

// ConnectionSaveResponse represents the response for a saved connection
type ConnectionSaveResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    services.SaveResult `json:"data"`
}

// ConnectionResponse represents one connection
type ConnectionResponse struct {
	Success bool                    `json:"success" example:"true"`
	Data    models.DBConnectionView `json:"data"`
}

// ConnectionListResponse represents a list of connections
type ConnectionListResponse struct {
	Success bool                      `json:"success" example:"true"`
	Data    []models.DBConnectionView `json:"data"`
}

// ConnectionTestResponse represents a connection test outcome
type ConnectionTestResponse struct {
	Success bool                `json:"success" example:"false"`
	Data    services.TestResult `json:"data"`
}

// NoticeListResponse represents the caller's pending notices
type NoticeListResponse struct {
	Success bool            `json:"success" example:"true"`
	Data    []notice.Notice `json:"data"`
}
