package dbclient

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"time"

	"dbconnmanager/services/credential"

	"github.com/go-sql-driver/mysql"
)

const defaultMySQLPort = 3306

// DriverError carries a driver failure verbatim while classifying it as
// ErrConnect or ErrQuery for errors.Is.
type DriverError struct {
	Kind error
	Err  error
}

func (e *DriverError) Error() string {
	return e.Err.Error()
}

func (e *DriverError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type mysqlClient struct {
	timeout time.Duration
}

// NewMySQLClient creates a MySQL client whose operations are bounded by timeout (0 = no bound).
func NewMySQLClient(timeout time.Duration) MySQLClient {
	return &mysqlClient{timeout: timeout}
}

// MySQLConfig builds the driver configuration for creds. A blank port uses 3306.
func MySQLConfig(creds credential.Credentials, timeout time.Duration) *mysql.Config {
	host := creds.Host
	if host == "" {
		host = "localhost"
	}
	port := defaultMySQLPort
	if p, err := strconv.Atoi(creds.Port); err == nil && p > 0 {
		port = p
	}

	cfg := mysql.NewConfig()
	cfg.User = creds.Username
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = creds.Database
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg
}

// open returns a single-connection handle that has already been pinged.
func (c *mysqlClient) open(ctx context.Context, creds credential.Credentials) (*sql.DB, error) {
	connector, err := mysql.NewConnector(MySQLConfig(creds, c.timeout))
	if err != nil {
		return nil, &DriverError{Kind: ErrConnect, Err: err}
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &DriverError{Kind: ErrConnect, Err: err}
	}
	return db, nil
}

func (c *mysqlClient) Ping(ctx context.Context, creds credential.Credentials) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	db, err := c.open(ctx, creds)
	if err != nil {
		return err
	}
	return db.Close()
}

func (c *mysqlClient) Query(ctx context.Context, creds credential.Credentials, query string) (*ResultSet, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	db, err := c.open(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &DriverError{Kind: ErrQuery, Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &DriverError{Kind: ErrQuery, Err: err}
	}
	return result, nil
}

// scanRows materializes rows, converting driver []byte values to strings.
// Numeric columns keep the driver's numeric types.
func scanRows(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &ResultSet{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
