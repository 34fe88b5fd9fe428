package fiscal

import (
	"fmt"
	"time"

	"github.com/jhoicas/nota-fiscal/internal/domain"
	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
)

// Clock devuelve la hora actual. Permite fijar la fecha de emisión en pruebas.
type Clock func() time.Time

// Option configura un Builder.
type Option func(*Builder)

// WithClock reemplaza el reloj del constructor (por defecto time.Now).
func WithClock(clock Clock) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// Builder acumula los datos de una nota fiscal y la finaliza aplicando su TaxRule.
//
// Ciclo de vida: creado → configurando → construido. Después de Build el constructor
// queda cerrado: las llamadas de configuración no modifican el documento y dejan
// domain.ErrAlreadyBuilt en Err(); un segundo Build devuelve ese mismo error.
// Un Builder no es seguro para uso concurrente.
type Builder struct {
	rule  TaxRule
	clock Clock
	doc   *entity.FiscalDocument
	built bool
	err   error
}

// NewBuilder crea un constructor con la regla de impuesto dada. La nota en construcción
// se crea vacía y con fecha de emisión igual a la hora actual del reloj.
func NewBuilder(rule TaxRule, opts ...Option) *Builder {
	b := &Builder{rule: rule, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	b.doc = entity.NewFiscalDocument(b.clock())
	return b
}

// NewProductBuilder crea un constructor de notas de productos con la alícuota por defecto.
func NewProductBuilder(opts ...Option) *Builder {
	return NewBuilder(NewProductTaxRule(DefaultProductRate), opts...)
}

// NewServiceBuilder crea un constructor de notas de servicios con la alícuota por defecto.
func NewServiceBuilder(opts ...Option) *Builder {
	return NewBuilder(NewServiceTaxRule(DefaultServiceRate), opts...)
}

// ForCompany asigna CNPJ y razón social del emisor.
func (b *Builder) ForCompany(taxID, legalName string) *Builder {
	if b.closed("ForCompany") {
		return b
	}
	b.doc.TaxID = taxID
	b.doc.LegalName = legalName
	return b
}

// WithItem agrega un ítem al final de la lista.
func (b *Builder) WithItem(item *entity.LineItem) *Builder {
	if b.closed("WithItem") {
		return b
	}
	b.doc.Items.Add(item)
	return b
}

// WithNotes asigna las observaciones.
func (b *Builder) WithNotes(notes string) *Builder {
	if b.closed("WithNotes") {
		return b
	}
	b.doc.Notes = notes
	return b
}

// WithIssuedAt reemplaza la fecha de emisión tomada al crear el constructor.
func (b *Builder) WithIssuedAt(issuedAt time.Time) *Builder {
	if b.closed("WithIssuedAt") {
		return b
	}
	b.doc.IssuedAt = issuedAt
	return b
}

// Build calcula el valor total, aplica la regla de impuesto y devuelve la nota finalizada.
// Falla con domain.ErrUnsetAmount si algún ítem no tiene monto; en ese caso el constructor
// sigue abierto y puede corregirse.
func (b *Builder) Build() (*entity.FiscalDocument, error) {
	if b.built {
		return nil, domain.ErrAlreadyBuilt
	}
	if b.rule == nil {
		return nil, fmt.Errorf("%w: constructor sin regla de impuesto", domain.ErrInvalidInput)
	}
	total, err := b.doc.TotalValue()
	if err != nil {
		return nil, fmt.Errorf("fiscal: calcular impuestos: %w", err)
	}
	b.doc.TaxAmount = b.rule.ComputeTax(total)
	b.built = true
	return b.doc, nil
}

// Err devuelve el primer error registrado por una llamada de configuración inválida.
func (b *Builder) Err() error {
	return b.err
}

// Built indica si el constructor ya entregó su nota.
func (b *Builder) Built() bool {
	return b.built
}

// Rule devuelve la regla de impuesto del constructor.
func (b *Builder) Rule() TaxRule {
	return b.rule
}

func (b *Builder) closed(op string) bool {
	if !b.built {
		return false
	}
	if b.err == nil {
		b.err = fmt.Errorf("fiscal: %s: %w", op, domain.ErrAlreadyBuilt)
	}
	return true
}
