package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, DBConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DriverSQLite, db.Driver())
	require.NoError(t, db.Ping(ctx))

	// Schema creation is create-if-absent and may run on every start.
	require.NoError(t, db.InitializeSchema(ctx))
	require.NoError(t, db.InitializeSchema(ctx))

	var tables int
	err = db.BunDB().NewRaw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'links', 'user_likes')").
		Scan(ctx, &tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}

func TestBuildConnString(t *testing.T) {
	got := buildConnString(DBConfig{Host: "db", Port: 5432, User: "bot", Password: "pw", Database: "engage"})
	assert.Contains(t, got, "db:5432")
	assert.Contains(t, got, "engage")
}
