package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhgcare/hhg/internal/shared/config"
)

func TestInitAndClose_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "hhg.db"),
	}

	require.NoError(t, Init(cfg))
	conn := Get()
	require.NotNil(t, conn)

	var one int
	require.NoError(t, conn.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	assert.NoError(t, Close())
}

func TestOpen_UnreachableMySQL(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          "mysql",
		Host:            "127.0.0.1",
		Port:            1,
		Username:        "root",
		Database:        "hhg_test",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: 1,
	}

	_, err := Open(cfg)
	assert.Error(t, err)
}
