package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "orders-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.HTTP.Swagger)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "orders.changed", cfg.Redis.InvalidationChannel)
	assert.Equal(t, language.Spanish, cfg.Report.Locale)
	assert.Equal(t, "*/15 * * * *", cfg.Worker.WarmupCron)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("CACHE_TTL_SECONDS", "60")
	v.Set("REPORT_LOCALE", "en_US")
	v.Set("HTTP_PORT", "9090")
	v.Set("HTTP_SWAGGER", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, language.English, cfg.Report.Locale)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.Swagger)
}

func TestFromViper_LocaleNoSoportadoCaeAEspanol(t *testing.T) {
	v := viper.New()
	v.Set("REPORT_LOCALE", "ja")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, cfg.Report.Locale)
}

func TestFromViper_LocaleInvalido(t *testing.T) {
	v := viper.New()
	v.Set("REPORT_LOCALE", "no es un idioma!")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_PoolInconsistente(t *testing.T) {
	v := viper.New()
	v.Set("DB_MIN_CONNS", 10)
	v.Set("DB_MAX_CONNS", 5)

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "orders", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/orders?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
