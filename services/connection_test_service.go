package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dbconnmanager/models"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/pkg/metrics"
	"dbconnmanager/repository"
	"dbconnmanager/services/credential"
	"dbconnmanager/services/dbclient"

	"gorm.io/gorm"
)

// Fixed connection test messages.
const (
	MsgMySQLConnected      = "MySQL connection established."
	MsgMySQLFailed         = "MySQL connection failed: %s"
	MsgMongoConnected      = "MongoDB connection established."
	MsgMongoFailed         = "MongoDB connection failed: %s"
	MsgMongoNotConfigured  = "MongoDB driver is not configured."
	MsgUnsupportedDBType   = "Unsupported database type."
	MsgInvalidConnectionID = "Invalid connection ID."
)

// ErrConnectionNotFound is returned when a connection record does not exist.
var ErrConnectionNotFound = errors.New("connection not found")

// TestResult is the outcome of one connection test.
type TestResult struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	CheckedAt int64  `json:"checked_at"` // unix seconds
}

// ConnectionTestService interface defines connection testing operations
type ConnectionTestService interface {
	// TestCredentials tests the submitted credentials and records the outcome on record id.
	TestCredentials(ctx context.Context, id uint, input map[string]any) (*TestResult, error)
	// TestConnection tests the credentials stored on record id.
	TestConnection(ctx context.Context, id uint) (*TestResult, error)
}

type connectionTestService struct {
	repo  repository.DBConnectionRepository
	mysql dbclient.MySQLClient
	mongo dbclient.MongoClient
	now   func() time.Time
}

// NewConnectionTestService creates a new connection test service instance
func NewConnectionTestService(mysqlClient dbclient.MySQLClient, mongoClient dbclient.MongoClient) ConnectionTestService {
	return NewConnectionTestServiceWithDeps(repository.NewDBConnectionRepository(), mysqlClient, mongoClient)
}

// NewConnectionTestServiceWithDeps creates a connection test service on explicit dependencies.
func NewConnectionTestServiceWithDeps(repo repository.DBConnectionRepository, mysqlClient dbclient.MySQLClient, mongoClient dbclient.MongoClient) ConnectionTestService {
	return &connectionTestService{
		repo:  repo,
		mysql: mysqlClient,
		mongo: mongoClient,
		now:   time.Now,
	}
}

func (s *connectionTestService) TestCredentials(ctx context.Context, id uint, input map[string]any) (*TestResult, error) {
	if id == 0 {
		return nil, &credential.UserError{Message: MsgInvalidConnectionID}
	}
	if _, err := s.lookup(id); err != nil {
		return nil, err
	}

	creds := credential.Sanitize(input)
	options, err := credential.NormalizeOptions(creds.Options)
	if err != nil {
		return nil, err
	}
	creds.Options = options

	return s.run(ctx, id, creds)
}

func (s *connectionTestService) TestConnection(ctx context.Context, id uint) (*TestResult, error) {
	if id == 0 {
		return nil, &credential.UserError{Message: MsgInvalidConnectionID}
	}
	rec, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, id, credential.FromRecord(rec))
}

func (s *connectionTestService) lookup(id uint) (*models.DBConnection, error) {
	rec, err := s.repo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("connection with id=%d: %w", id, ErrConnectionNotFound)
		}
		return nil, fmt.Errorf("failed to load connection with id=%d: %w", id, err)
	}
	return rec, nil
}

func (s *connectionTestService) run(ctx context.Context, id uint, creds credential.Credentials) (*TestResult, error) {
	logger.Infof("Testing connection: id=%d, type=%s, host=%s, port=%s, database=%s",
		id, creds.DBType, creds.Host, creds.Port, creds.Database)

	start := time.Now()
	success, message := s.probe(ctx, creds)

	status := models.StatusError
	if success {
		status = models.StatusSuccess
		logger.Infof("Connection test successful for id=%d", id)
	} else {
		logger.Warnf("Connection test failed for id=%d: %s", id, message)
	}
	metrics.ObserveConnectionTest(creds.DBType, status, time.Since(start))

	checkedAt := s.now()
	if err := s.repo.UpdateStatus(nil, id, status, message, checkedAt); err != nil {
		logger.Errorf("Failed to update connection status for id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to update connection status: %w", err)
	}

	return &TestResult{
		Success:   success,
		Status:    status,
		Message:   message,
		CheckedAt: checkedAt.Unix(),
	}, nil
}

// probe opens one connection for creds and reports the outcome message.
func (s *connectionTestService) probe(ctx context.Context, creds credential.Credentials) (bool, string) {
	switch creds.DBType {
	case models.DBTypeMySQL:
		if err := s.mysql.Ping(ctx, creds); err != nil {
			return false, fmt.Sprintf(MsgMySQLFailed, err.Error())
		}
		return true, MsgMySQLConnected
	case models.DBTypeMongoDB:
		if !s.mongo.Available() {
			return false, MsgMongoNotConfigured
		}
		if err := s.mongo.Ping(ctx, creds); err != nil {
			return false, fmt.Sprintf(MsgMongoFailed, err.Error())
		}
		return true, MsgMongoConnected
	default:
		return false, MsgUnsupportedDBType
	}
}
