package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tousif31/simple-to-do-list/config"
	"github.com/tousif31/simple-to-do-list/logger"
	"github.com/tousif31/simple-to-do-list/store/memory"
)

func TestOpen_EmptyURLUsesMemoryStore(t *testing.T) {
	st, err := Open(context.Background(), config.DatabaseConfig{}, logger.Discard())
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &memory.Store{}, st)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{URL: "sqlite:///tmp/x.db"}, logger.Discard())
	assert.Error(t, err)
}

func TestRunMigrations_MemoryIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(config.DatabaseConfig{}, logger.Discard()))
	assert.NoError(t, RollbackMigrations(config.DatabaseConfig{}, logger.Discard()))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN("mysql://root:pw@tcp(localhost:3306)/login_system")
	require.NoError(t, err)

	assert.Contains(t, dsn, "root:pw@tcp(localhost:3306)/login_system")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestMigrateURL(t *testing.T) {
	pg, err := migrateURL(config.DatabaseConfig{URL: "postgres://todo:pw@localhost:5432/todo?sslmode=disable&pool_max_conns=5"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://todo:pw@localhost:5432/todo?sslmode=disable", pg)

	my, err := migrateURL(config.DatabaseConfig{URL: "mysql://root:pw@tcp(localhost:3306)/login_system"})
	require.NoError(t, err)
	assert.Contains(t, my, "mysql://root:pw@tcp(localhost:3306)/login_system")
	assert.Contains(t, my, "multiStatements=true")

	_, err = migrateURL(config.DatabaseConfig{})
	assert.Error(t, err)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for _, dir := range []string{"migrations/postgres", "migrations/mysql"} {
		entries, err := migrationsFS.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, dir)
	}
}
