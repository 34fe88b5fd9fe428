package fiscal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/nota-fiscal/internal/domain"
	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
	"github.com/jhoicas/nota-fiscal/pkg/cnpj"
)

// ValidateDocument valida una nota ya construida con la regla con la que se construyó.
// Exige CNPJ con dígitos verificadores válidos, razón social, al menos un ítem con monto
// y que TaxAmount coincida con la regla aplicada al total.
// Build no la invoca: el emisor decide si aplica la validación estricta.
func ValidateDocument(doc *entity.FiscalDocument, rule TaxRule) error {
	if doc == nil {
		return fmt.Errorf("%w: nota nula", domain.ErrInvalidDocument)
	}
	var errs []error

	if err := cnpj.Validate(doc.TaxID); err != nil {
		errs = append(errs, fmt.Errorf("emisor: %w", err))
	}
	if strings.TrimSpace(doc.LegalName) == "" {
		errs = append(errs, errors.New("la razón social es obligatoria"))
	}

	if doc.Items.Len() == 0 {
		errs = append(errs, errors.New("la nota debe tener al menos un ítem"))
	} else if total, err := doc.TotalValue(); err != nil {
		errs = append(errs, err)
	} else if rule != nil {
		expected := rule.ComputeTax(total)
		if !doc.TaxAmount.Equal(expected) {
			errs = append(errs, fmt.Errorf("impuestos (%s) no coinciden con la regla aplicada al total %s (%s)",
				doc.TaxAmount.StringFixed(2), total.StringFixed(2), expected.StringFixed(2)))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrInvalidDocument}, errs...)...)
	}
	return nil
}
