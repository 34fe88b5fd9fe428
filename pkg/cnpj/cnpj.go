// Package cnpj valida y completa los dígitos verificadores del CNPJ
// (Cadastro Nacional da Pessoa Jurídica), algoritmo módulo 11 de la Receita Federal.
package cnpj

import "fmt"

// Length es la cantidad de dígitos de un CNPJ completo (12 base + 2 verificadores).
const Length = 14

// pesos para el primer y segundo dígito verificador, de izquierda a derecha.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Validate verifica que el CNPJ (con o sin puntos, barra y guion) tenga 14 dígitos
// y dígitos verificadores correctos. Acepta "11.222.333/0001-81" o "11222333000181".
func Validate(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != Length {
		return fmt.Errorf("cnpj: debe tener %d dígitos, se encontraron %d", Length, len(digits))
	}
	if allEqual(digits) {
		return fmt.Errorf("cnpj: secuencia repetida %s no es válida", string(digits))
	}
	first, second := checkDigits(digits[:12])
	if digits[12] != first || digits[13] != second {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recibido %c%c",
			first, second, digits[12], digits[13])
	}
	return nil
}

// ComputeCheckDigits calcula los dos dígitos verificadores para los 12 primeros dígitos.
func ComputeCheckDigits(taxID string) (string, error) {
	digits := extractDigits(taxID)
	if len(digits) < 12 {
		return "", fmt.Errorf("cnpj: se requieren al menos 12 dígitos, se encontraron %d", len(digits))
	}
	first, second := checkDigits(digits[:12])
	return string([]byte{first, second}), nil
}

// Format devuelve el CNPJ con máscara 00.000.000/0000-00. Si no tiene 14 dígitos lo
// devuelve sin cambios.
func Format(taxID string) string {
	d := extractDigits(taxID)
	if len(d) != Length {
		return taxID
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

func checkDigits(base []byte) (byte, byte) {
	first := mod11(base, firstWeights[:])
	second := mod11(append(append([]byte(nil), base...), first), secondWeights[:])
	return first, second
}

func mod11(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
