package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// P + R opcional + separador opcional + 1 a 4 dígitos: "PR001", "pr-12", "P 0045".
	codigoConPrefijo = regexp.MustCompile(`PR?[\s\-_]?(\d{1,4})`)
	// Sin prefijo solo se acepta un grupo de 3 o 4 dígitos: "001", "cod 1234".
	codigoSinPrefijo = regexp.MustCompile(`(\d{3,4})`)
)

// CodigoResult es el resultado etiquetado de normalizar un código libre.
// Si Resuelto es false, Codigo está vacío y la fila debe descartarse.
type CodigoResult struct {
	Codigo   string
	Resuelto bool
}

// CodigoNoResuelto es el resultado para textos sin un código reconocible.
var CodigoNoResuelto = CodigoResult{}

// CodigoResuelto construye un resultado válido.
func CodigoResuelto(codigo string) CodigoResult {
	return CodigoResult{Codigo: codigo, Resuelto: true}
}

// ParseCodigo normaliza un código de producto libre al formato PR + dígitos
// (mínimo 3, rellenados con ceros a la izquierda).
func ParseCodigo(raw string) CodigoResult {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return CodigoNoResuelto
	}

	var digits string
	if m := codigoConPrefijo.FindStringSubmatch(s); m != nil {
		digits = m[1]
	} else if m := codigoSinPrefijo.FindStringSubmatch(s); m != nil {
		digits = m[1]
	} else {
		return CodigoNoResuelto
	}

	if _, err := strconv.Atoi(digits); err != nil {
		return CodigoNoResuelto
	}
	return CodigoResuelto(fmt.Sprintf("PR%s", zeroPad(digits, 3)))
}

func zeroPad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
