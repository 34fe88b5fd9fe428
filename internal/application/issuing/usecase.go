// Package issuing orquesta la emisión de notas fiscales: elige la variante del
// constructor, valida, calcula la huella y genera las representaciones.
package issuing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nota-fiscal/internal/application/dto"
	"github.com/jhoicas/nota-fiscal/internal/domain"
	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
	"github.com/jhoicas/nota-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/nota-fiscal/pkg/logger"
)

// Config para el caso de uso (alícuotas y emisor por defecto).
type Config struct {
	ProductRate     decimal.Decimal
	ServiceRate     decimal.Decimal
	IssuerTaxID     string
	IssuerLegalName string
	Strict          bool
}

// Issued es una nota emitida junto con sus metadatos de emisión.
type Issued struct {
	ID       string
	Kind     string
	Document *entity.FiscalDocument
	Digest   string
	SourceID string
	rule     fiscal.TaxRule
}

// UseCase emite y reemite notas fiscales.
type UseCase struct {
	cfg   Config
	log   *logger.Logger
	clock fiscal.Clock
	pdf   DocumentPDFRenderer
	xml   DocumentXMLRenderer
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithClock fija el reloj usado para las fechas de emisión.
func WithClock(clock fiscal.Clock) Option {
	return func(uc *UseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

// WithPDFRenderer inyecta el generador de PDF.
func WithPDFRenderer(r DocumentPDFRenderer) Option {
	return func(uc *UseCase) { uc.pdf = r }
}

// WithXMLRenderer inyecta el generador de XML.
func WithXMLRenderer(r DocumentXMLRenderer) Option {
	return func(uc *UseCase) { uc.xml = r }
}

// NewUseCase construye el caso de uso.
func NewUseCase(cfg Config, log *logger.Logger, opts ...Option) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &UseCase{cfg: cfg, log: log.Named("issuing"), clock: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// TaxRuleFor devuelve la regla de impuesto configurada para el tipo de nota.
func (uc *UseCase) TaxRuleFor(kind string) (fiscal.TaxRule, error) {
	switch normalizeKind(kind) {
	case dto.DocumentKindProduct:
		return fiscal.NewProductTaxRule(uc.cfg.ProductRate), nil
	case dto.DocumentKindService:
		return fiscal.NewServiceTaxRule(uc.cfg.ServiceRate), nil
	default:
		return nil, fmt.Errorf("%w: tipo de nota %q (use product o service)", domain.ErrInvalidInput, kind)
	}
}

// Issue construye la nota con la variante pedida, la valida si corresponde,
// calcula su huella y le asigna un ID.
func (uc *UseCase) Issue(_ context.Context, in dto.IssueDocumentRequest) (*Issued, error) {
	kind := normalizeKind(in.Kind)
	rule, err := uc.TaxRuleFor(kind)
	if err != nil {
		return nil, err
	}

	taxID := firstNonEmpty(in.TaxID, uc.cfg.IssuerTaxID)
	legalName := firstNonEmpty(in.LegalName, uc.cfg.IssuerLegalName)
	if taxID == "" || legalName == "" {
		return nil, fmt.Errorf("%w: CNPJ y razón social del emisor son obligatorios", domain.ErrInvalidInput)
	}

	b := fiscal.NewBuilder(rule, fiscal.WithClock(uc.clock)).
		ForCompany(taxID, legalName).
		WithNotes(in.Notes)
	for i, it := range in.Items {
		item := &entity.LineItem{}
		if it.Amount != nil {
			if err := item.SetAmount(*it.Amount); err != nil {
				return nil, fmt.Errorf("%w: ítem %d: %w", domain.ErrInvalidInput, i+1, err)
			}
		}
		b.WithItem(item)
	}
	if in.IssuedAt != nil {
		b.WithIssuedAt(*in.IssuedAt)
	}

	doc, err := b.Build()
	if err != nil {
		uc.log.Warn().Err(err).Str("kind", kind).Str("tax_id", taxID).Msg("nota no construida")
		return nil, err
	}

	if in.Strict || uc.cfg.Strict {
		if err := fiscal.ValidateDocument(doc, rule); err != nil {
			uc.log.Warn().Err(err).Str("tax_id", taxID).Msg("nota rechazada por validación")
			return nil, err
		}
	}

	issued, err := uc.finalize(doc, kind, rule, "")
	if err != nil {
		return nil, err
	}
	uc.logIssued("nota emitida", issued)
	return issued, nil
}

// Reissue copia una nota emitida con una nueva fecha de emisión (nueva emisión legal).
// La copia comparte la lista de ítems con la nota original.
func (uc *UseCase) Reissue(_ context.Context, src *Issued) (*Issued, error) {
	if src == nil || src.Document == nil {
		return nil, fmt.Errorf("%w: nota de origen nula", domain.ErrInvalidInput)
	}
	clone := src.Document.CloneAt(uc.clock())

	issued, err := uc.finalize(clone, src.Kind, src.rule, src.ID)
	if err != nil {
		return nil, err
	}
	uc.logIssued("nota reemitida", issued)
	return issued, nil
}

// RenderPDF genera el PDF de una nota emitida.
func (uc *UseCase) RenderPDF(ctx context.Context, issued *Issued) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("issuing: generador de PDF no configurado")
	}
	if issued == nil {
		return nil, fmt.Errorf("%w: nota nula", domain.ErrInvalidInput)
	}
	out, err := uc.pdf.Render(ctx, issued.Document, kindLabel(issued.Kind), issued.Digest)
	if err != nil {
		return nil, fmt.Errorf("issuing: generar PDF: %w", err)
	}
	uc.log.Debug().Str("id", issued.ID).Int("bytes", len(out)).Msg("PDF generado")
	return out, nil
}

// RenderXML genera el XML de una nota emitida.
func (uc *UseCase) RenderXML(issued *Issued) ([]byte, error) {
	if uc.xml == nil {
		return nil, fmt.Errorf("issuing: generador de XML no configurado")
	}
	if issued == nil {
		return nil, fmt.Errorf("%w: nota nula", domain.ErrInvalidInput)
	}
	out, err := uc.xml.Render(issued.Document, issued.Digest)
	if err != nil {
		return nil, fmt.Errorf("issuing: generar XML: %w", err)
	}
	return out, nil
}

// ToResponse arma el DTO de respuesta de una nota emitida.
func ToResponse(issued *Issued) (*dto.DocumentResponse, error) {
	if issued == nil || issued.Document == nil {
		return nil, fmt.Errorf("%w: nota nula", domain.ErrInvalidInput)
	}
	doc := issued.Document
	total, err := doc.TotalValue()
	if err != nil {
		return nil, err
	}
	all := doc.Items.All()
	amounts := make([]decimal.Decimal, len(all))
	for i, it := range all {
		amounts[i] = it.Amount.Decimal
	}
	return &dto.DocumentResponse{
		ID:         issued.ID,
		Kind:       issued.Kind,
		TaxID:      doc.TaxID,
		LegalName:  doc.LegalName,
		Items:      amounts,
		Notes:      doc.Notes,
		IssuedAt:   doc.IssuedAt.Format(time.RFC3339),
		TotalValue: total,
		TaxAmount:  doc.TaxAmount,
		Digest:     issued.Digest,
		SourceID:   issued.SourceID,
	}, nil
}

func (uc *UseCase) finalize(doc *entity.FiscalDocument, kind string, rule fiscal.TaxRule, sourceID string) (*Issued, error) {
	digest, err := fiscal.Digest(doc)
	if err != nil {
		return nil, err
	}
	return &Issued{
		ID:       uuid.New().String(),
		Kind:     kind,
		Document: doc,
		Digest:   digest,
		SourceID: sourceID,
		rule:     rule,
	}, nil
}

func (uc *UseCase) logIssued(msg string, issued *Issued) {
	total, _ := issued.Document.TotalValue()
	ev := uc.log.Info().
		Str("id", issued.ID).
		Str("kind", issued.Kind).
		Str("tax_id", issued.Document.TaxID).
		Int("items", issued.Document.Items.Len()).
		Str("total", total.StringFixed(2)).
		Str("tax", issued.Document.TaxAmount.StringFixed(2)).
		Time("issued_at", issued.Document.IssuedAt)
	if issued.SourceID != "" {
		ev = ev.Str("source_id", issued.SourceID)
	}
	ev.Msg(msg)
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

func kindLabel(kind string) string {
	switch kind {
	case dto.DocumentKindProduct:
		return "PRODUTO"
	case dto.DocumentKindService:
		return "SERVIÇO"
	default:
		return strings.ToUpper(kind)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
