package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzbot/pkg/logger"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want Kind
	}{
		{"postgres://u:p@localhost:5432/tzbot?sslmode=disable", KindPostgres},
		{"postgresql://localhost/tzbot", KindPostgres},
		{"POSTGRES://localhost/tzbot", KindPostgres},
		{"sqlite://data/tzbot.db", KindSQLite},
		{"file:tzbot.db?cache=shared", KindSQLite},
		{"tzbot.db", KindSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url))
		})
	}
}

func TestOpen_SQLite(t *testing.T) {
	stg, err := Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "tzbot.db"), logger.NewNop())
	require.NoError(t, err)
	defer stg.Close()

	assert.NoError(t, stg.Ping(context.Background()))
}
