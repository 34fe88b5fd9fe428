package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnsetAmount     = errors.New("ítem sin valor asignado")
	ErrNegativeAmount  = errors.New("el valor del ítem no puede ser negativo")
	ErrAlreadyBuilt    = errors.New("la nota fiscal ya fue construida")
	ErrInvalidDocument = errors.New("nota fiscal inválida")
)
