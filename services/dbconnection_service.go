package services

import (
	"context"
	"errors"
	"fmt"

	"dbconnmanager/models"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/repository"
	"dbconnmanager/services/credential"
	"dbconnmanager/services/notice"
	"dbconnmanager/utils"

	"gorm.io/gorm"
)

// SaveConnectionInput is the admin payload for creating or updating a record.
type SaveConnectionInput struct {
	Title       string         `json:"title" validate:"max=200"`
	PostStatus  string         `json:"post_status" validate:"omitempty,oneof=draft publish"`
	Credentials map[string]any `json:"credentials"`
}

// SaveResult reports a saved record and any notices raised while saving it.
type SaveResult struct {
	Connection models.DBConnectionView `json:"connection"`
	Notices    []string                `json:"notices"`
}

// DBConnectionService manages stored connection records.
type DBConnectionService interface {
	Create(ctx context.Context, user string, in SaveConnectionInput) (*SaveResult, error)
	Update(ctx context.Context, user string, id uint, in SaveConnectionInput) (*SaveResult, error)
	Get(ctx context.Context, id uint) (*models.DBConnection, error)
	List(ctx context.Context) ([]models.DBConnection, error)
	Delete(ctx context.Context, id uint) error
}

type dbConnectionService struct {
	repo    repository.DBConnectionRepository
	notices notice.NoticeService
}

// NewDBConnectionService creates a new connection store service instance
func NewDBConnectionService(notices notice.NoticeService) DBConnectionService {
	return NewDBConnectionServiceWithDeps(repository.NewDBConnectionRepository(), notices)
}

// NewDBConnectionServiceWithDeps creates a connection store service on explicit dependencies.
func NewDBConnectionServiceWithDeps(repo repository.DBConnectionRepository, notices notice.NoticeService) DBConnectionService {
	return &dbConnectionService{repo: repo, notices: notices}
}

func (s *dbConnectionService) Create(ctx context.Context, user string, in SaveConnectionInput) (*SaveResult, error) {
	if err := validateSave(in); err != nil {
		return nil, err
	}

	rec := &models.DBConnection{
		Title:      in.Title,
		PostStatus: in.PostStatus,
	}
	if rec.PostStatus == "" {
		rec.PostStatus = models.PostStatusDraft
	}
	creds, notices := s.sanitize(user, in.Credentials)
	creds.Apply(rec)

	if err := s.repo.Create(nil, rec); err != nil {
		logger.Errorf("Failed to create connection %q: %v", in.Title, err)
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	logger.Infof("Created connection id=%d, type=%s, host=%s", rec.ID, rec.DBType, rec.Host)

	return &SaveResult{Connection: rec.View(), Notices: notices}, nil
}

// Update overwrites the title, lifecycle state and credentials of record id.
// A payload without a "password" key keeps the stored password.
func (s *dbConnectionService) Update(ctx context.Context, user string, id uint, in SaveConnectionInput) (*SaveResult, error) {
	if err := validateSave(in); err != nil {
		return nil, err
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.Title = in.Title
	if in.PostStatus != "" {
		rec.PostStatus = in.PostStatus
	}
	storedPassword := rec.Password
	creds, notices := s.sanitize(user, in.Credentials)
	if _, ok := in.Credentials["password"]; !ok {
		creds.Password = storedPassword
	}
	creds.Apply(rec)

	if err := s.repo.UpdateDetails(nil, rec); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("connection with id=%d: %w", id, ErrConnectionNotFound)
		}
		logger.Errorf("Failed to update connection id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to update connection: %w", err)
	}
	logger.Infof("Updated connection id=%d, type=%s, host=%s", rec.ID, rec.DBType, rec.Host)

	return &SaveResult{Connection: rec.View(), Notices: notices}, nil
}

// validateSave checks the payload shape and reports failures as user-facing messages.
func validateSave(in SaveConnectionInput) error {
	if err := utils.ValidateStruct(in); err != nil {
		return &credential.UserError{Message: utils.ValidationMessage(err)}
	}
	return nil
}

// sanitize coerces the payload and normalizes its options. Invalid options are
// dropped and the failure is queued as a notice for user.
func (s *dbConnectionService) sanitize(user string, input map[string]any) (credential.Credentials, []string) {
	notices := []string{}
	creds := credential.Sanitize(input)

	options, err := credential.NormalizeOptions(creds.Options)
	if err != nil {
		logger.Warnf("Discarding invalid options submitted by user=%s: %v", user, err)
		creds.Options = ""
		notices = append(notices, err.Error())
		if s.notices != nil {
			s.notices.Push(user, err.Error())
		}
		return creds, notices
	}
	creds.Options = options
	return creds, notices
}

func (s *dbConnectionService) Get(ctx context.Context, id uint) (*models.DBConnection, error) {
	rec, err := s.repo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("connection with id=%d: %w", id, ErrConnectionNotFound)
		}
		return nil, fmt.Errorf("failed to load connection with id=%d: %w", id, err)
	}
	return rec, nil
}

func (s *dbConnectionService) List(ctx context.Context) ([]models.DBConnection, error) {
	recs, err := s.repo.GetAll(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return recs, nil
}

func (s *dbConnectionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteByID(nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("connection with id=%d: %w", id, ErrConnectionNotFound)
		}
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	logger.Infof("Deleted connection id=%d", id)
	return nil
}
