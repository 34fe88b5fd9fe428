// Package money formatea montos decimales según el idioma del documento.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos con separadores de miles y decimales del idioma y
// el símbolo de la moneda correspondiente a la región.
//
// Los montos se formatean a partir de su representación decimal exacta; nunca
// pasan por float64.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	group   string
	decimal string
	symbol  string
}

// NewFormatter crea un formateador para el idioma BCP 47 dado (ej. "pt-BR").
// Un idioma inválido usa pt-BR.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		unit = currency.BRL
	}
	p := message.NewPrinter(tag)
	group, dec := separators(p)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		group:   group,
		decimal: dec,
		symbol:  symbolOf(p, unit),
	}
}

// Tag devuelve el idioma del formateador.
func (f *Formatter) Tag() language.Tag { return f.tag }

// Amount formatea con dos decimales, sin símbolo (ej. "3.000,00" en pt-BR).
func (f *Formatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.decimal)
	b.WriteString(frac)
	return b.String()
}

// Currency formatea con el símbolo de la moneda (ej. "R$ 3.000,00" en pt-BR).
func (f *Formatter) Currency(d decimal.Decimal) string {
	return f.symbol + " " + f.Amount(d)
}

// separators obtiene los separadores de miles y decimales del idioma formateando
// una muestra conocida. Si la muestra no tiene la forma esperada usa "," y ".".
func separators(p *message.Printer) (group, dec string) {
	sample := []rune(p.Sprintf("%.2f", 1234567.25))
	n := len(sample)
	if n < 4 || string(sample[n-2:]) != "25" || unicode.IsDigit(sample[n-3]) {
		return ",", "."
	}
	dec = string(sample[n-3])
	for _, r := range sample[:n-3] {
		if !unicode.IsDigit(r) {
			return string(r), dec
		}
	}
	return "", dec
}

// symbolOf devuelve el símbolo de la moneda en el idioma (ej. "R$"); si no se puede
// obtener usa el código ISO (ej. "BRL").
func symbolOf(p *message.Printer, unit currency.Unit) string {
	s := p.Sprint(currency.Symbol(unit.Amount(0)))
	if i := strings.IndexFunc(s, unicode.IsDigit); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return unit.String()
	}
	return s
}
