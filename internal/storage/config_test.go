package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{Name: "trellcord"}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 1, cfg.Version)
	require.Equal(t, KindKV, cfg.Kind)
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing name", Config{}},
		{"negative version", Config{Name: "x", Version: -1}},
		{"unknown kind", Config{Name: "x", Kind: "mongodb"}},
		{"postgres without dsn", Config{Name: "x", Kind: KindPostgres}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.cfg.Validate())
		})
	}
}

func TestConfigValidateAccepts(t *testing.T) {
	cfg := Config{Name: "x", Kind: KindPostgres, DSN: "postgres://localhost/x"}
	require.NoError(t, cfg.Validate())

	cfg = Config{Name: "x", Kind: KindSQLite, Dir: "data", Version: 3}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 3, cfg.Version)
}
