package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dbconnmanager/models"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/services"
	"dbconnmanager/services/credential"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
)

var dbConnectionSrv services.DBConnectionService

// SetDBConnectionService initializes the connection store service instance.
// Used for dependency injection in tests to provide mock implementations.
func SetDBConnectionService(s services.DBConnectionService) {
	dbConnectionSrv = s
}

func parseID(c *gin.Context) (uint, error) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid connection ID %q: must be a positive integer", idParam)
	}
	return uint(id), nil
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	var userErr *credential.UserError
	switch {
	case errors.Is(err, services.ErrConnectionNotFound):
		utils.ErrorResponseWithStatus(c, http.StatusNotFound, err)
	case errors.As(err, &userErr):
		utils.ErrorResponseWithStatus(c, http.StatusBadRequest, userErr)
	default:
		utils.ErrorResponseWithStatus(c, http.StatusInternalServerError, err)
	}
}

// ListConnections lists all connection records
// @Summary List connections
// @Description Returns every stored connection with passwords masked
// @Tags Connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ConnectionListResponse "Connections"
// @Failure 401 {object} StandardErrorResponse "Unauthorized"
// @Failure 500 {object} StandardErrorResponse "Internal server error"
// @Router /connections [get]
func listConnections(c *gin.Context) {
	recs, err := dbConnectionSrv.List(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list connections: %v", err)
		respondServiceError(c, err)
		return
	}
	views := make([]models.DBConnectionView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, rec.View())
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true, "data": views})
}

// GetConnection returns one connection record
// @Summary Get connection
// @Description Returns a stored connection with its password masked
// @Tags Connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Success 200 {object} ConnectionResponse "Connection"
// @Failure 400 {object} StandardErrorResponse "Invalid connection ID"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Router /connections/{id} [get]
func getConnection(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	rec, err := dbConnectionSrv.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true, "data": rec.View()})
}

// CreateConnection creates a connection record
// @Summary Create connection
// @Description Sanitizes and stores a new connection. Invalid options are dropped and reported in notices.
// @Tags Connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param connection body ConnectionSaveRequest true "Connection"
// @Success 201 {object} ConnectionSaveResponse "Connection created"
// @Failure 400 {object} StandardErrorResponse "Invalid request body"
// @Failure 401 {object} StandardErrorResponse "Unauthorized"
// @Failure 500 {object} StandardErrorResponse "Internal server error"
// @Router /connections [post]
func createConnection(c *gin.Context) {
	var in services.SaveConnectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&in); err != nil {
		utils.ErrorResponse(c, errors.New(utils.ValidationMessage(err)))
		return
	}

	res, err := dbConnectionSrv.Create(c.Request.Context(), utils.CurrentUser(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{"success": true, "data": res})
}

// UpdateConnection updates a connection record
// @Summary Update connection
// @Description Overwrites title, lifecycle state and credentials. Omitting "password" keeps the stored one.
// @Tags Connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Param connection body ConnectionSaveRequest true "Connection"
// @Success 200 {object} ConnectionSaveResponse "Connection updated"
// @Failure 400 {object} StandardErrorResponse "Invalid request"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Router /connections/{id} [put]
func updateConnection(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	var in services.SaveConnectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&in); err != nil {
		utils.ErrorResponse(c, errors.New(utils.ValidationMessage(err)))
		return
	}

	res, err := dbConnectionSrv.Update(c.Request.Context(), utils.CurrentUser(c), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true, "data": res})
}

// DeleteConnection deletes a connection record
// @Summary Delete connection
// @Tags Connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Success 200 {object} MessageResponse "Connection deleted"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Router /connections/{id} [delete]
func deleteConnection(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := dbConnectionSrv.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true, "message": "Connection was deleted successfully"})
}

// RegisterDBConnectionRoutes registers HTTP endpoints for connection records.
func RegisterDBConnectionRoutes(rg *gin.RouterGroup) {
	connections := rg.Group("/connections")
	{
		connections.GET("", listConnections)
		connections.POST("", createConnection)
		connections.GET("/:id", getConnection)
		connections.PUT("/:id", updateConnection)
		connections.DELETE("/:id", deleteConnection)
	}
}
