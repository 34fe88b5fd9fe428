// Package fiscal construye notas fiscales con un constructor fluido y aplica la regla
// de impuesto de cada variante (producto o servicio) al finalizar el documento.
package fiscal

import "github.com/shopspring/decimal"

// Alícuotas por defecto de cada variante.
var (
	DefaultProductRate = decimal.NewFromFloat(0.02)
	DefaultServiceRate = decimal.NewFromFloat(0.06)
)

// TaxRule calcula el valor de impuestos a partir del valor total de la nota.
type TaxRule interface {
	ComputeTax(total decimal.Decimal) decimal.Decimal
}

// TaxRuleFunc adapta una función a TaxRule.
type TaxRuleFunc func(total decimal.Decimal) decimal.Decimal

// ComputeTax implementa TaxRule.
func (f TaxRuleFunc) ComputeTax(total decimal.Decimal) decimal.Decimal { return f(total) }

// ProductTaxRule aplica la alícuota de notas de venta de productos.
// El valor cero (ProductTaxRule{}) usa DefaultProductRate; NewProductTaxRule respeta
// la alícuota dada aunque sea cero.
type ProductTaxRule struct {
	Rate     decimal.Decimal
	explicit bool
}

// NewProductTaxRule crea la regla con la alícuota tal cual (cero = nota exenta).
func NewProductTaxRule(rate decimal.Decimal) ProductTaxRule {
	return ProductTaxRule{Rate: rate, explicit: true}
}

// ComputeTax implementa TaxRule.
func (r ProductTaxRule) ComputeTax(total decimal.Decimal) decimal.Decimal {
	return percentOf(total, effectiveRate(r.Rate, r.explicit, DefaultProductRate))
}

// ServiceTaxRule aplica la alícuota de notas de prestación de servicios.
// El valor cero (ServiceTaxRule{}) usa DefaultServiceRate; NewServiceTaxRule respeta
// la alícuota dada aunque sea cero.
type ServiceTaxRule struct {
	Rate     decimal.Decimal
	explicit bool
}

// NewServiceTaxRule crea la regla con la alícuota tal cual (cero = nota exenta).
func NewServiceTaxRule(rate decimal.Decimal) ServiceTaxRule {
	return ServiceTaxRule{Rate: rate, explicit: true}
}

// ComputeTax implementa TaxRule.
func (r ServiceTaxRule) ComputeTax(total decimal.Decimal) decimal.Decimal {
	return percentOf(total, effectiveRate(r.Rate, r.explicit, DefaultServiceRate))
}

// NormalizeRate acepta la alícuota como fracción (0.06) o como porcentaje (6).
// Valores mayores o iguales a 1 se leen como porcentaje: 1 es 1 %, no 100 %.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

func effectiveRate(rate decimal.Decimal, explicit bool, def decimal.Decimal) decimal.Decimal {
	if !explicit && rate.IsZero() {
		return def
	}
	return NormalizeRate(rate)
}

func percentOf(total, rate decimal.Decimal) decimal.Decimal {
	return total.Mul(rate).Round(2)
}
