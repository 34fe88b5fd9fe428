// Package xmldoc genera y lee la representación XML de una nota fiscal finalizada.
//
//	<NotaFiscal versao="1.0">
//	  <Emitente><CNPJ/><RazaoSocial/></Emitente>
//	  <DataEmissao>RFC3339</DataEmissao>
//	  <Itens><Item nItem="1"><Valor>500.00</Valor></Item>...</Itens>
//	  <Total><ValorTotal/><ValorImpostos/></Total>
//	  <Observacoes/>
//	  <Huella/>
//	</NotaFiscal>
package xmldoc

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
)

// Version del layout XML.
const Version = "1.0"

// XMLRenderer genera el XML de la nota.
type XMLRenderer struct {
	indent int
}

// NewXMLRenderer crea el renderizador con indentación de 2 espacios.
func NewXMLRenderer() *XMLRenderer {
	return &XMLRenderer{indent: 2}
}

// Render genera el XML de una nota finalizada. digest puede estar vacío.
func (r *XMLRenderer) Render(doc *entity.FiscalDocument, digest string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xmldoc: nota nula")
	}
	total, err := doc.TotalValue()
	if err != nil {
		return nil, fmt.Errorf("xmldoc: total: %w", err)
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("NotaFiscal")
	root.CreateAttr("versao", Version)

	emit := root.CreateElement("Emitente")
	emit.CreateElement("CNPJ").SetText(doc.TaxID)
	emit.CreateElement("RazaoSocial").SetText(doc.LegalName)

	root.CreateElement("DataEmissao").SetText(doc.IssuedAt.Format(time.RFC3339Nano))

	itens := root.CreateElement("Itens")
	for i, item := range doc.Items.All() {
		el := itens.CreateElement("Item")
		el.CreateAttr("nItem", strconv.Itoa(i+1))
		el.CreateElement("Valor").SetText(item.Amount.Decimal.StringFixed(2))
	}

	tot := root.CreateElement("Total")
	tot.CreateElement("ValorTotal").SetText(total.StringFixed(2))
	tot.CreateElement("ValorImpostos").SetText(doc.TaxAmount.StringFixed(2))

	if doc.Notes != "" {
		root.CreateElement("Observacoes").SetText(doc.Notes)
	}
	if digest != "" {
		root.CreateElement("Huella").SetText(digest)
	}

	x.Indent(r.indent)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmldoc: serializar: %w", err)
	}
	return out, nil
}

// Parsed es una nota leída desde su XML junto con los datos que no forman parte del documento.
type Parsed struct {
	Document   *entity.FiscalDocument
	TotalValue decimal.Decimal
	Digest     string
}

// Parse lee un XML generado por Render. Los ítems se reconstruyen en el orden del documento.
func Parse(data []byte) (*Parsed, error) {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmldoc: leer XML: %w", err)
	}
	root := x.SelectElement("NotaFiscal")
	if root == nil {
		return nil, fmt.Errorf("xmldoc: falta el elemento NotaFiscal")
	}

	issuedAt, err := time.Parse(time.RFC3339Nano, childText(root, "DataEmissao"))
	if err != nil {
		return nil, fmt.Errorf("xmldoc: DataEmissao: %w", err)
	}
	doc := entity.NewFiscalDocument(issuedAt)
	if emit := root.SelectElement("Emitente"); emit != nil {
		doc.TaxID = childText(emit, "CNPJ")
		doc.LegalName = childText(emit, "RazaoSocial")
	}
	doc.Notes = childText(root, "Observacoes")

	for _, el := range root.FindElements("./Itens/Item") {
		v, err := decimal.NewFromString(childText(el, "Valor"))
		if err != nil {
			return nil, fmt.Errorf("xmldoc: ítem %s: %w", el.SelectAttrValue("nItem", "?"), err)
		}
		doc.Items.Add(entity.NewLineItem(v))
	}

	p := &Parsed{Document: doc, Digest: childText(root, "Huella")}
	if tot := root.SelectElement("Total"); tot != nil {
		if p.TotalValue, err = parseDecimal(childText(tot, "ValorTotal")); err != nil {
			return nil, fmt.Errorf("xmldoc: ValorTotal: %w", err)
		}
		if doc.TaxAmount, err = parseDecimal(childText(tot, "ValorImpostos")); err != nil {
			return nil, fmt.Errorf("xmldoc: ValorImpostos: %w", err)
		}
	}
	return p, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
