package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.Error(t, err)
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = Close(gdb) }()

	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "properties", "room_requests"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}
