package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/nota-fiscal/internal/domain/fiscal"
)

func TestProductTaxRule_AlicuotaPorDefecto(t *testing.T) {
	tax := fiscal.ProductTaxRule{}.ComputeTax(decimal.NewFromInt(3000))
	assert.Equal(t, "60.00", tax.StringFixed(2))
}

func TestServiceTaxRule_AlicuotaPorDefecto(t *testing.T) {
	tax := fiscal.ServiceTaxRule{}.ComputeTax(decimal.NewFromInt(3000))
	assert.Equal(t, "180.00", tax.StringFixed(2))
}

func TestTaxRule_AlicuotaComoPorcentaje(t *testing.T) {
	asFraction := fiscal.ServiceTaxRule{Rate: decimal.RequireFromString("0.05")}.ComputeTax(decimal.NewFromInt(200))
	asPercent := fiscal.ServiceTaxRule{Rate: decimal.NewFromInt(5)}.ComputeTax(decimal.NewFromInt(200))

	assert.True(t, asFraction.Equal(asPercent))
	assert.Equal(t, "10.00", asPercent.StringFixed(2))
}

func TestTaxRule_RedondeoADosDecimales(t *testing.T) {
	tax := fiscal.ProductTaxRule{}.ComputeTax(decimal.RequireFromString("33.33"))
	assert.Equal(t, "0.67", tax.String())
}

func TestNormalizeRate(t *testing.T) {
	assert.Equal(t, "0.19", fiscal.NormalizeRate(decimal.NewFromInt(19)).String())
	assert.Equal(t, "0.19", fiscal.NormalizeRate(decimal.RequireFromString("0.19")).String())
	assert.Equal(t, "0.01", fiscal.NormalizeRate(decimal.NewFromInt(1)).String(), "1 es 1 %")
	assert.Equal(t, "0.5", fiscal.NormalizeRate(decimal.RequireFromString("0.5")).String())
}

func TestTaxRule_AlicuotaUnoEsUnPorciento(t *testing.T) {
	tax := fiscal.NewProductTaxRule(decimal.NewFromInt(1)).ComputeTax(decimal.NewFromInt(3000))
	assert.Equal(t, "30.00", tax.StringFixed(2))
}

func TestTaxRule_AlicuotaCeroExplicita(t *testing.T) {
	total := decimal.NewFromInt(3000)

	assert.True(t, fiscal.NewProductTaxRule(decimal.Zero).ComputeTax(total).IsZero())
	assert.True(t, fiscal.NewServiceTaxRule(decimal.Zero).ComputeTax(total).IsZero())
}

func TestTaxRule_ConstructorConAlicuota(t *testing.T) {
	tax := fiscal.NewServiceTaxRule(decimal.RequireFromString("0.10")).ComputeTax(decimal.NewFromInt(3000))
	assert.Equal(t, "300.00", tax.StringFixed(2))
}
