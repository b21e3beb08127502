package sandbox

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartMySQL_AcceptsConnectionsAndCloses(t *testing.T) {
	sb, err := StartMySQL(context.Background(), "sandbox_test", SeedStatements...)
	require.NoError(t, err)

	conn, err := net.DialTimeout("tcp", sb.Addr(), time.Second)
	require.NoError(t, err)
	conn.Close()

	assert.NoError(t, sb.Exec(context.Background(), "SELECT * FROM widgets"))
	assert.Error(t, sb.Exec(context.Background(), "SELECT * FROM missing_table"))

	assert.NoError(t, sb.Close())
	assert.NoError(t, sb.Close())
}

func TestStartMySQL_BadSeedFails(t *testing.T) {
	_, err := StartMySQL(context.Background(), "sandbox_bad", "THIS IS NOT SQL")
	assert.Error(t, err)
}

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}
