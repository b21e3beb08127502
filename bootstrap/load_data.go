package bootstrap

import (
	"context"
	"fmt"
	"strconv"

	"dbconnmanager/models"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/repository"
	"dbconnmanager/services/sandbox"
)

// SandboxConnectionTitle names the record that points at the in-memory sandbox.
const SandboxConnectionTitle = "Sandbox MySQL"

// LoadData prepares the record store schema.
func LoadData(base repository.BaseRepository) error {
	logger.Infof("Starting bootstrap data loading...")

	if err := base.Migrate(); err != nil {
		logger.Errorf("Failed to migrate record store: %v", err)
		return fmt.Errorf("failed to migrate record store: %w", err)
	}

	logger.Infof("Bootstrap data loading completed successfully")
	return nil
}

// StartSandbox starts the in-memory MySQL sandbox with the demo seed and makes
// sure a published record points at it.
func StartSandbox(ctx context.Context, repo repository.DBConnectionRepository, dbName string) (*sandbox.MySQL, *models.DBConnection, error) {
	sb, err := sandbox.StartMySQL(ctx, dbName, sandbox.SeedStatements...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start sandbox: %w", err)
	}

	rec, err := EnsureSandboxConnection(repo, sb.Host(), sb.Port, sb.Database)
	if err != nil {
		sb.Close()
		return nil, nil, err
	}
	logger.Infof("Sandbox MySQL listening on %s, connection id=%d", sb.Addr(), rec.ID)
	return sb, rec, nil
}

// EnsureSandboxConnection creates the sandbox record, or repoints an existing
// one at host:port since the sandbox port changes on every start.
func EnsureSandboxConnection(repo repository.DBConnectionRepository, host string, port int, database string) (*models.DBConnection, error) {
	recs, err := repo.GetAll(nil)
	if err != nil {
		logger.Errorf("Failed to load connections: %v", err)
		return nil, fmt.Errorf("failed to load connections: %w", err)
	}

	var rec *models.DBConnection
	for i := range recs {
		if recs[i].Title == SandboxConnectionTitle {
			rec = &recs[i]
			break
		}
	}

	if rec == nil {
		rec = &models.DBConnection{Title: SandboxConnectionTitle}
		fillSandbox(rec, host, port, database)
		if err := repo.Create(nil, rec); err != nil {
			return nil, fmt.Errorf("failed to create sandbox connection: %w", err)
		}
		logger.Infof("Created sandbox connection id=%d", rec.ID)
		return rec, nil
	}

	fillSandbox(rec, host, port, database)
	if err := repo.UpdateDetails(nil, rec); err != nil {
		return nil, fmt.Errorf("failed to update sandbox connection id=%d: %w", rec.ID, err)
	}
	logger.Infof("Repointed sandbox connection id=%d at port %d", rec.ID, port)
	return rec, nil
}

func fillSandbox(rec *models.DBConnection, host string, port int, database string) {
	rec.PostStatus = models.PostStatusPublish
	rec.DBType = models.DBTypeMySQL
	rec.Host = host
	rec.Port = strconv.Itoa(port)
	rec.Username = "root"
	rec.Password = ""
	rec.Database = database
	rec.Options = ""
}
