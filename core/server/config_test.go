package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/server"
)

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  server.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  server.Config{Address: "localhost", Port: 8080},
			want: "localhost:8080",
		},
		{
			name: "all_interfaces",
			cfg:  server.Config{Address: "", Port: 80},
			want: ":80",
		},
		{
			name: "ipv6",
			cfg:  server.Config{Address: "::1", Port: 9000},
			want: "[::1]:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()

	assert.Equal(t, "localhost", cfg.Address)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.HotReload)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1<<20, cfg.MaxHeaderBytes)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid_config", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("missing_address_and_port", func(t *testing.T) {
		t.Parallel()

		_, err := server.NewFromConfig(server.Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})
}
