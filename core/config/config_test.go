package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/config"
)

func TestLoad_ParsesEnvironment(t *testing.T) {
	type serverEnv struct {
		Host string `env:"TEST_LOAD_HOST" envDefault:"localhost"`
		Port int    `env:"TEST_LOAD_PORT" envDefault:"8080"`
	}

	t.Setenv("TEST_LOAD_HOST", "example.com")
	t.Setenv("TEST_LOAD_PORT", "9090")

	var cfg serverEnv
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	type defaultsEnv struct {
		Name  string `env:"TEST_DEFAULTS_NAME" envDefault:"fallback"`
		Count int    `env:"TEST_DEFAULTS_COUNT" envDefault:"3"`
	}

	var cfg defaultsEnv
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 3, cfg.Count)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedEnv struct {
		Value string `env:"TEST_CACHE_VALUE" envDefault:"initial"`
	}

	t.Setenv("TEST_CACHE_VALUE", "first")

	var first cachedEnv
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// The environment changes, but the cached value wins.
	t.Setenv("TEST_CACHE_VALUE", "second")

	var second cachedEnv
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoad_CaseInsensitiveLookup(t *testing.T) {
	type caseEnv struct {
		Mode string `env:"TEST_CASE_MODE" envDefault:"off"`
	}

	// Lowercase in the environment satisfies the uppercase tag.
	t.Setenv("test_case_mode", "on")

	var cfg caseEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "on", cfg.Mode)
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	type requiredEnv struct {
		Secret string `env:"TEST_REQUIRED_SECRET_NEVER_SET,required"`
	}

	var cfg requiredEnv
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_REQUIRED_SECRET_NEVER_SET")
}

func TestLoad_NilTarget(t *testing.T) {
	t.Parallel()

	var cfg *struct{}
	err := config.Load(cfg)
	require.Error(t, err)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type mustEnv struct {
		Token string `env:"TEST_MUST_TOKEN_NEVER_SET,required"`
	}

	assert.Panics(t, func() {
		var cfg mustEnv
		config.MustLoad(&cfg)
	})
}

func TestMustLoad_ReturnsValue(t *testing.T) {
	type okEnv struct {
		Region string `env:"TEST_MUSTOK_REGION" envDefault:"eu-west-1"`
	}

	var cfg okEnv
	assert.NotPanics(t, func() {
		config.MustLoad(&cfg)
	})
	assert.Equal(t, "eu-west-1", cfg.Region)
}
