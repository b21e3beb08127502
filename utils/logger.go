package utils

import (
	"net/http"
	"time"

	"dbconnmanager/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Init structured logger with full config
func InitLoggerWithConfig(filePath, level string, maxSize, maxBackups, maxAge int, compress bool) {
	logLevel := logger.ParseLogLevel(level)
	logger.InitWithConfig(filePath, logLevel, maxSize, maxBackups, maxAge, compress)
	logger.Infof("Logger initialized with level %s at: %s", level, filePath)
}

// Enhanced structured middleware log
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		// Log based on status code level
		if status >= 500 {
			logger.Errorf("HTTP %s %s - Status: %d, Duration: %v, IP: %s, RequestID: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP(), requestID)
		} else if status >= 400 {
			logger.Warnf("HTTP %s %s - Status: %d, Duration: %v, IP: %s, RequestID: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP(), requestID)
		} else {
			logger.Infof("HTTP %s %s - Status: %d, Duration: %v, IP: %s, RequestID: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP(), requestID)
		}
	}
}

// JSONResponse sends a JSON response with the specified HTTP status code.
func JSONResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// ErrorResponse logs and sends a standardized error response with HTTP 400 status.
func ErrorResponse(c *gin.Context, err error) {
	ErrorResponseWithStatus(c, http.StatusBadRequest, err)
}

// ErrorResponseWithStatus logs and sends a standardized error response.
func ErrorResponseWithStatus(c *gin.Context, status int, err error) {
	logger.Errorf("API Error: %v", err)
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
