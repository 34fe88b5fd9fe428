package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nota-fiscal/internal/domain"
)

// LineItem representa un ítem de presupuesto que aporta un valor a la nota fiscal.
// El valor cero (LineItem{}) no tiene monto asignado: sumarlo falla con domain.ErrUnsetAmount.
type LineItem struct {
	Amount decimal.NullDecimal
}

// NewLineItem crea un ítem con el monto ya asignado.
func NewLineItem(amount decimal.Decimal) *LineItem {
	return &LineItem{Amount: decimal.NewNullDecimal(amount)}
}

// SetAmount asigna el monto del ítem. Rechaza montos negativos.
func (i *LineItem) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrNegativeAmount, amount.String())
	}
	i.Amount = decimal.NewNullDecimal(amount)
	return nil
}

// HasAmount indica si el monto fue asignado.
func (i *LineItem) HasAmount() bool {
	return i != nil && i.Amount.Valid
}

// Value devuelve el monto o domain.ErrUnsetAmount si nunca fue asignado.
func (i *LineItem) Value() (decimal.Decimal, error) {
	if !i.HasAmount() {
		return decimal.Zero, domain.ErrUnsetAmount
	}
	return i.Amount.Decimal, nil
}

// LineItems es la colección ordenada de ítems de una nota fiscal.
// Se maneja por puntero: una copia superficial del documento comparte la misma colección.
type LineItems struct {
	items []*LineItem
}

// NewLineItems crea una colección con los ítems dados, en ese orden.
func NewLineItems(items ...*LineItem) *LineItems {
	return &LineItems{items: append([]*LineItem(nil), items...)}
}

// Add agrega un ítem al final de la colección.
func (c *LineItems) Add(item *LineItem) {
	c.items = append(c.items, item)
}

// Len devuelve la cantidad de ítems.
func (c *LineItems) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// All devuelve una copia del slice de ítems en orden de inserción.
func (c *LineItems) All() []*LineItem {
	if c == nil {
		return nil
	}
	return append([]*LineItem(nil), c.items...)
}

// Total suma los montos de todos los ítems. Una colección vacía suma cero.
// Si algún ítem no tiene monto devuelve domain.ErrUnsetAmount indicando su posición.
func (c *LineItems) Total() (decimal.Decimal, error) {
	total := decimal.Zero
	if c == nil {
		return total, nil
	}
	for idx, item := range c.items {
		v, err := item.Value()
		if err != nil {
			return decimal.Zero, fmt.Errorf("ítem %d: %w", idx+1, err)
		}
		total = total.Add(v)
	}
	return total, nil
}
