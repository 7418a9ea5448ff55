package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// Razones tipadas de la validación de códigos.
const (
	ReasonInvalidFormat    = "INVALID_FORMAT"
	ReasonOutOfRange       = "OUT_OF_RANGE"
	ReasonUnknownStructure = "UNKNOWN_STRUCTURE"
)

// buildCode arma el código como prefix1+v1+sep+prefix2+v2+sep+prefix3+v3.
func buildCode(s *entity.LocationStructure, v1, v2, v3 int) string {
	return fmt.Sprintf("%s%d%s%s%d%s%s%d",
		s.Prefix1, v1, s.Separator,
		s.Prefix2, v2, s.Separator,
		s.Prefix3, v3)
}

// parseCode descompone un código crudo contra la estructura. Devuelve los
// tres valores de segmento, o una razón tipada (nunca un error: la
// validación también alimenta feedback de UI).
func parseCode(s *entity.LocationStructure, raw string) (v1, v2, v3 int, reason string) {
	parts := strings.Split(raw, s.Separator)
	if len(parts) != 3 {
		return 0, 0, 0, ReasonInvalidFormat
	}
	v1, ok := parseSegment(parts[0], s.Prefix1)
	if !ok {
		return 0, 0, 0, ReasonInvalidFormat
	}
	v2, ok = parseSegment(parts[1], s.Prefix2)
	if !ok {
		return 0, 0, 0, ReasonInvalidFormat
	}
	v3, ok = parseSegment(parts[2], s.Prefix3)
	if !ok {
		return 0, 0, 0, ReasonInvalidFormat
	}
	if v1 < 1 || v1 > s.MaxSegment1 ||
		v2 < 1 || v2 > s.MaxSegment2 ||
		v3 < 1 || v3 > s.MaxSegment3 {
		return 0, 0, 0, ReasonOutOfRange
	}
	return v1, v2, v3, ""
}

// parseSegment valida prefijo y parte numérica de un segmento.
func parseSegment(part, prefix string) (int, bool) {
	if !strings.HasPrefix(part, prefix) {
		return 0, false
	}
	num := strings.TrimPrefix(part, prefix)
	if num == "" {
		return 0, false
	}
	v, err := strconv.Atoi(num)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
