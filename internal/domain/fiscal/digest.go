package fiscal

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
)

// Digest calcula la huella SHA-384 (hex) de una nota finalizada.
//
// Cadena (separada por "|"): CNPJ (solo dígitos) + fecha de emisión RFC3339 UTC (con nanosegundos) +
// monto de cada ítem en orden + total + impuestos + observaciones.
// Montos sin separador de miles, punto decimal y 2 decimales (ej: 1500.00).
// Dos emisiones del mismo contenido con fechas distintas tienen huellas distintas.
func Digest(doc *entity.FiscalDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("fiscal: nota nula")
	}
	total, err := doc.TotalValue()
	if err != nil {
		return "", fmt.Errorf("fiscal: huella: %w", err)
	}

	parts := []string{
		onlyDigits(doc.TaxID),
		doc.IssuedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, item := range doc.Items.All() {
		parts = append(parts, formatAmount(item.Amount.Decimal))
	}
	parts = append(parts,
		formatAmount(total),
		formatAmount(doc.TaxAmount),
		doc.Notes,
	)

	hash := sha512.Sum384([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:]), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
