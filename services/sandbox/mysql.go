// Package sandbox runs a throwaway in-memory MySQL server that connection
// records can point at, for local trials of the tester and the query runner.
package sandbox

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/server"
	"github.com/dolthub/go-mysql-server/sql"

	"dbconnmanager/pkg/logger"
)

// SeedStatements creates and fills the demo "widgets" table.
var SeedStatements = []string{
	"CREATE TABLE widgets (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL, color VARCHAR(32))",
	"INSERT INTO widgets (id, name, color) VALUES (1, 'sprocket', 'red'), (2, 'gear', 'blue'), (3, 'cog', NULL)",
}

// MySQL is an in-memory MySQL server listening on localhost.
// Any username is accepted; the sandbox has no user accounts.
type MySQL struct {
	Server   *server.Server
	Engine   *sqle.Engine
	Provider *memory.DbProvider
	Database string
	Port     int

	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// StartMySQL starts a server on a free port with database dbName and runs seed against it.
// It returns once the server accepts TCP connections, or fails after five seconds.
func StartMySQL(ctx context.Context, dbName string, seed ...string) (*MySQL, error) {
	port, err := GetFreePort()
	if err != nil {
		return nil, fmt.Errorf("failed to get free port: %w", err)
	}

	db := memory.NewDatabase(dbName)
	provider := memory.NewDBProvider(db)
	engine := sqle.NewDefault(provider)

	sb := &MySQL{
		Engine:   engine,
		Provider: provider,
		Database: dbName,
		Port:     port,
	}
	for _, stmt := range seed {
		if err := sb.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to seed sandbox: %w", err)
		}
	}

	config := server.Config{
		Protocol: "tcp",
		Address:  sb.Addr(),
	}
	s, err := server.NewServer(config, engine, sql.NewContext, memory.NewSessionBuilder(provider), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	sb.Server = s

	serverCtx, cancel := context.WithCancel(ctx)
	sb.cancel = cancel

	go func() {
		if err := s.Start(); err != nil {
			logger.Errorf("Sandbox MySQL server on port %d stopped: %v", port, err)
		}
	}()

	go func() {
		<-serverCtx.Done()
		if err := sb.shutdown(); err != nil {
			logger.Warnf("Failed to close sandbox MySQL server on port %d: %v", port, err)
		}
	}()

	readyCtx, readyCancel := context.WithTimeout(ctx, 5*time.Second)
	defer readyCancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-readyCtx.Done():
			cancel()
			return nil, fmt.Errorf("sandbox server failed to start within timeout: %w", readyCtx.Err())
		case <-ticker.C:
			conn, err := net.DialTimeout("tcp", sb.Addr(), 100*time.Millisecond)
			if err == nil {
				conn.Close()
				logger.Infof("Started sandbox MySQL server on %s (database %s)", sb.Addr(), dbName)
				return sb, nil
			}
		}
	}
}

// Host returns the address clients should dial.
func (s *MySQL) Host() string {
	return "127.0.0.1"
}

// Addr returns host:port of the listener.
func (s *MySQL) Addr() string {
	return net.JoinHostPort(s.Host(), strconv.Itoa(s.Port))
}

// Exec runs one statement directly on the engine and drains its result.
func (s *MySQL) Exec(ctx context.Context, statement string) error {
	session := memory.NewSession(sql.NewBaseSession(), s.Provider)
	sqlCtx := sql.NewContext(ctx, sql.WithSession(session))
	sqlCtx.SetCurrentDatabase(s.Database)

	_, rowIter, _, err := s.Engine.Query(sqlCtx, statement)
	if err != nil {
		return fmt.Errorf("statement failed: %w", err)
	}
	defer rowIter.Close(sqlCtx)

	for {
		_, err := rowIter.Next(sqlCtx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("statement failed: %w", err)
		}
	}
}

// Close shuts down the server. It is safe to call more than once.
func (s *MySQL) Close() error {
	err := s.shutdown()
	if s.cancel != nil {
		s.cancel()
	}
	if err != nil {
		return fmt.Errorf("failed to close server: %w", err)
	}
	return nil
}

func (s *MySQL) shutdown() error {
	s.closeOnce.Do(func() {
		if s.Server == nil {
			return
		}
		s.closeErr = s.Server.Close()
		logger.Infof("Closed sandbox MySQL server on port %d", s.Port)
	})
	return s.closeErr
}

// GetFreePort finds an available TCP port.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}
