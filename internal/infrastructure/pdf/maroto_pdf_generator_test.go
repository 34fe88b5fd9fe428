package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nota-fiscal/internal/domain"
	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
	"github.com/jhoicas/nota-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/nota-fiscal/internal/infrastructure/pdf"
	"github.com/jhoicas/nota-fiscal/pkg/money"
)

func buildDocument(t *testing.T) *entity.FiscalDocument {
	t.Helper()
	doc, err := fiscal.NewProductBuilder().
		ForCompany("11222333000181", "Balão Apagado SA").
		WithItem(entity.NewLineItem(decimal.NewFromInt(500))).
		WithItem(entity.NewLineItem(decimal.NewFromInt(1000))).
		WithItem(entity.NewLineItem(decimal.NewFromInt(1500))).
		WithNotes("Esta nota fiscal foi construída com um construtor").
		WithIssuedAt(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)).
		Build()
	require.NoError(t, err)
	return doc
}

func TestRender_GeneraPDF(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator(money.NewFormatter("pt-BR"))

	out, err := gen.Render(context.Background(), buildDocument(t), "PRODUTO", "f5693bff411776a0c3536bba5df32491df2ffc101a8ff4810cdfc04368b8a9286dc0d5c578fa2344e119d118947a0c4c")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el resultado debe ser un PDF")
}

func TestRender_SinObservacionesNiHuella(t *testing.T) {
	doc := buildDocument(t)
	doc.Notes = ""

	out, err := pdf.NewMarotoPDFGenerator(nil).Render(context.Background(), doc, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_ItemSinValor(t *testing.T) {
	doc := buildDocument(t)
	doc.Items.Add(&entity.LineItem{})

	_, err := pdf.NewMarotoPDFGenerator(nil).Render(context.Background(), doc, "PRODUTO", "")
	assert.ErrorIs(t, err, domain.ErrUnsetAmount)
}

func TestRender_NotaNula(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator(nil).Render(context.Background(), nil, "", "")
	assert.Error(t, err)
}
