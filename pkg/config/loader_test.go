package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filedrop/pkg/bytesize"
	"github.com/dmitrymomot/filedrop/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"TEST_CFG_ADDR" envDefault:":8080"`
	MaxSize bytesize.Size `env:"TEST_CFG_MAX_SIZE" envDefault:"8M"`
	Exts    []string      `env:"TEST_CFG_EXTS" envDefault:"png,zip"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, int64(8388608), cfg.MaxSize.Bytes())
	assert.Equal(t, []string{"png", "zip"}, cfg.Exts)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_CFG_ADDR", ":9999")
	t.Setenv("TEST_CFG_MAX_SIZE", "2G")
	t.Setenv("TEST_CFG_EXTS", "png")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, int64(2147483648), cfg.MaxSize.Bytes())
	assert.Equal(t, []string{"png"}, cfg.Exts)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED_SECRET,required"`
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
