package controllers

import (
	"errors"
	"io"
	"net/http"

	"dbconnmanager/pkg/logger"
	"dbconnmanager/services"
	"dbconnmanager/services/credential"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
)

// ConnectionTestController handles database connection testing operations.
type ConnectionTestController struct {
	connectionTestService services.ConnectionTestService
}

// NewConnectionTestController creates a new connection test controller instance.
func NewConnectionTestController(svc services.ConnectionTestService) *ConnectionTestController {
	return &ConnectionTestController{
		connectionTestService: svc,
	}
}

// ConnectionTestRequest carries the credentials to test. Without credentials the stored ones are used.
type ConnectionTestRequest struct {
	Credentials map[string]any `json:"credentials"`
}

// TestConnection tests database connection status
// @Summary Test database connection
// @Description Opens one connection with the submitted (or stored) credentials and records the outcome on the connection
// @Tags Connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Param credentials body ConnectionTestRequest false "Credentials to test"
// @Success 200 {object} ConnectionTestResponse "Test outcome; success reports whether the connection was established"
// @Failure 400 {object} StandardErrorResponse "Invalid ID or invalid options JSON"
// @Failure 401 {object} StandardErrorResponse "Unauthorized"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Failure 500 {object} StandardErrorResponse "Internal server error"
// @Router /connections/{id}/test [post]
func (ctrl *ConnectionTestController) TestConnection(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		logger.Errorf("Invalid connection ID parameter: %s, error: %v", c.Param("id"), err)
		utils.ErrorResponse(c, errors.New(services.MsgInvalidConnectionID))
		return
	}

	var req ConnectionTestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, err)
		return
	}

	logger.Infof("Testing connection for ID: %d", id)

	var result *services.TestResult
	if req.Credentials != nil {
		result, err = ctrl.connectionTestService.TestCredentials(c.Request.Context(), id, req.Credentials)
	} else {
		result, err = ctrl.connectionTestService.TestConnection(c.Request.Context(), id)
	}
	if err != nil {
		logger.Errorf("Connection test failed for ID %d: %v", id, err)
		var userErr *credential.UserError
		switch {
		case errors.Is(err, services.ErrConnectionNotFound):
			utils.ErrorResponseWithStatus(c, http.StatusNotFound, errors.New(services.MsgInvalidConnectionID))
		case errors.As(err, &userErr):
			utils.ErrorResponseWithStatus(c, http.StatusBadRequest, userErr)
		default:
			utils.ErrorResponseWithStatus(c, http.StatusInternalServerError, err)
		}
		return
	}

	logger.Infof("Connection test completed for ID %d: %s", id, result.Status)
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"success": result.Success,
		"data":    result,
	})
}

// RegisterConnectionTestRoutes registers connection test routes
func RegisterConnectionTestRoutes(rg *gin.RouterGroup, svc services.ConnectionTestService) {
	connectionController := NewConnectionTestController(svc)

	connections := rg.Group("/connections")
	{
		connections.POST("/:id/test", connectionController.TestConnection)
	}
}
