package warehouse

import (
	"fmt"
	"strings"
)

// NormalizeCode normaliza un código escaneado o tecleado: trim + mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// BuildLocationCode construye el código determinista de una ubicación a
// partir de zona y coordenadas: {ZONA}-X{xx}-Y{yy}[-Z{zz}], con dos dígitos
// y cero a la izquierda.
func BuildLocationCode(zone string, x, y int, z *int) string {
	code := fmt.Sprintf("%s-X%02d-Y%02d", NormalizeCode(zone), x, y)
	if z != nil {
		code += fmt.Sprintf("-Z%02d", *z)
	}
	return code
}
