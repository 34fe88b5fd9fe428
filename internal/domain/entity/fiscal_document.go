package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalDocument representa una nota fiscal emitida por una empresa.
//
// TaxAmount solo tiene sentido después de que el constructor finaliza el documento
// (fiscal.Builder.Build). Antes de eso vale cero y no debe leerse.
type FiscalDocument struct {
	TaxID     string // CNPJ del emisor
	LegalName string // Razón social
	Items     *LineItems
	Notes     string
	IssuedAt  time.Time
	TaxAmount decimal.Decimal
}

// NewFiscalDocument crea un documento vacío con la fecha de emisión dada.
func NewFiscalDocument(issuedAt time.Time) *FiscalDocument {
	return &FiscalDocument{
		Items:    NewLineItems(),
		IssuedAt: issuedAt,
	}
}

// TotalValue devuelve la suma de los montos de los ítems (cero si no hay ítems).
// Falla con domain.ErrUnsetAmount si algún ítem no tiene monto asignado.
func (d *FiscalDocument) TotalValue() (decimal.Decimal, error) {
	return d.Items.Total()
}

// CloneWithFreshIssuance devuelve una copia con fecha de emisión actual.
// Ver CloneAt.
func (d *FiscalDocument) CloneWithFreshIssuance() *FiscalDocument {
	return d.CloneAt(time.Now())
}

// CloneAt copia todos los campos por valor salvo Items, que se comparte por referencia
// con el original (agregar un ítem a la copia también lo agrega al original), e IssuedAt,
// que se reemplaza por now: una copia es legalmente una nueva emisión.
func (d *FiscalDocument) CloneAt(now time.Time) *FiscalDocument {
	clone := *d
	clone.IssuedAt = now
	return &clone
}
