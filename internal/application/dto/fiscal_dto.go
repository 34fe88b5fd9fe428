package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de nota fiscal.
const (
	DocumentKindProduct = "product"
	DocumentKindService = "service"
)

// IssueDocumentRequest datos para emitir una nota fiscal.
// Emisor vacío usa el emisor configurado.
type IssueDocumentRequest struct {
	Kind      string                `json:"kind"` // product | service
	TaxID     string                `json:"tax_id,omitempty"`
	LegalName string                `json:"legal_name,omitempty"`
	Items     []DocumentItemRequest `json:"items"`
	Notes     string                `json:"notes,omitempty"`
	IssuedAt  *time.Time            `json:"issued_at,omitempty"` // opcional; por defecto la hora actual
	Strict    bool                  `json:"strict,omitempty"`    // valida CNPJ y totales antes de emitir
}

// DocumentItemRequest ítem de la nota. Amount nil representa un ítem sin valor asignado.
type DocumentItemRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// DocumentResponse nota fiscal emitida.
type DocumentResponse struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	TaxID      string            `json:"tax_id"`
	LegalName  string            `json:"legal_name"`
	Items      []decimal.Decimal `json:"items"`
	Notes      string            `json:"notes,omitempty"`
	IssuedAt   string            `json:"issued_at"`
	TotalValue decimal.Decimal   `json:"total_value"`
	TaxAmount  decimal.Decimal   `json:"tax_amount"`
	Digest     string            `json:"digest"`
	SourceID   string            `json:"source_id,omitempty"` // nota de la que se copió, si es una reemisión
}
