package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	Tax    TaxConfig
	Issuer IssuerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env    string // development, staging, production
	Name   string
	Locale string // idioma para formatear montos (BCP 47, ej. pt-BR)
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string
}

// TaxConfig alícuotas de las variantes de nota fiscal.
// Valores menores a 1 son fracción (0.02 = 2 %); valores desde 1 son porcentaje
// (1 = 1 %, 2 = 2 %). Cero deja la variante exenta.
type TaxConfig struct {
	ProductRate decimal.Decimal
	ServiceRate decimal.Decimal
}

// IssuerConfig datos por defecto del emisor.
type IssuerConfig struct {
	TaxID     string // CNPJ
	LegalName string // Razón social
	Strict    bool   // valida CNPJ y totales antes de emitir
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, TAX_PRODUCT_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper arma la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	productRate, err := getDecimal(v, "TAX_PRODUCT_RATE", "0.02")
	if err != nil {
		return nil, err
	}
	serviceRate, err := getDecimal(v, "TAX_SERVICE_RATE", "0.06")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:    getString(v, "APP_ENV", "development"),
			Name:   getString(v, "APP_NAME", "nota-fiscal"),
			Locale: getString(v, "DOCUMENT_LOCALE", "pt-BR"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Tax: TaxConfig{
			ProductRate: productRate,
			ServiceRate: serviceRate,
		},
		Issuer: IssuerConfig{
			TaxID:     getString(v, "ISSUER_TAX_ID", ""),
			LegalName: getString(v, "ISSUER_LEGAL_NAME", ""),
			Strict:    getBool(v, "ISSUER_STRICT", false),
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	switch val := v.Get(key).(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return def
		}
		return b
	default:
		return v.GetBool(key)
	}
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := getString(v, key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido %q: %w", key, raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("config: %s no puede ser negativo", key)
	}
	return d, nil
}
