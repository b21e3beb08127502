// Package dbclient opens short-lived connections to external MySQL and
// MongoDB servers. Every call opens one connection, performs one operation
// and closes the connection before returning.
package dbclient

import (
	"context"
	"errors"
	"time"

	"dbconnmanager/services/credential"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrConnect marks failures to establish a connection.
	ErrConnect = errors.New("connect")
	// ErrQuery marks failures of the statement itself on an open connection.
	ErrQuery = errors.New("query")
	// ErrMongoUnavailable is returned by the client selected when MongoDB support is disabled.
	ErrMongoUnavailable = errors.New("mongodb driver is not configured")
)

// ResultSet holds a fully materialized SQL result in column order.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// FindRequest describes a single bounded find operation. Limit <= 0 means unbounded.
type FindRequest struct {
	Collection string
	Filter     bson.D
	Projection bson.D
	Limit      int64
}

// MySQLClient tests and queries MySQL servers.
type MySQLClient interface {
	Ping(ctx context.Context, creds credential.Credentials) error
	Query(ctx context.Context, creds credential.Credentials, query string) (*ResultSet, error)
}

// MongoClient tests and queries MongoDB servers.
type MongoClient interface {
	Available() bool
	Ping(ctx context.Context, creds credential.Credentials) error
	Find(ctx context.Context, creds credential.Credentials, req FindRequest) ([]bson.Raw, error)
}

// withTimeout bounds ctx by d; d <= 0 leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
