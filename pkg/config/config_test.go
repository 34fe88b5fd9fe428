package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nota-fiscal/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "nota-fiscal", cfg.App.Name)
	assert.Equal(t, "pt-BR", cfg.App.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.02", cfg.Tax.ProductRate.String())
	assert.Equal(t, "0.06", cfg.Tax.ServiceRate.String())
	assert.False(t, cfg.Issuer.Strict)
}

func TestFromViper_Sobrescritos(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("TAX_SERVICE_RATE", "5")
	v.Set("ISSUER_TAX_ID", "11.222.333/0001-81")
	v.Set("ISSUER_LEGAL_NAME", "Balão Apagado SA")
	v.Set("ISSUER_STRICT", "true")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "5", cfg.Tax.ServiceRate.String())
	assert.Equal(t, "11.222.333/0001-81", cfg.Issuer.TaxID)
	assert.Equal(t, "Balão Apagado SA", cfg.Issuer.LegalName)
	assert.True(t, cfg.Issuer.Strict)
}

func TestFromViper_AlicuotaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("TAX_PRODUCT_RATE", "dos por ciento")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "TAX_PRODUCT_RATE")
}

func TestFromViper_AlicuotaNegativa(t *testing.T) {
	v := viper.New()
	v.Set("TAX_SERVICE_RATE", "-1")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_NAME", "emisor-test")
	t.Setenv("TAX_PRODUCT_RATE", "0.03")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "emisor-test", cfg.App.Name)
	assert.Equal(t, "0.03", cfg.Tax.ProductRate.String())
}
