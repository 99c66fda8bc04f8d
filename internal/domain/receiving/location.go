package receiving

import (
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// ResolveLocation aplica la política de ubicación fija: la ubicación conocida del par
// (sede, repuesto) gana siempre; si no existe se usa la indicada, que entonces es obligatoria.
func ResolveLocation(known, supplied string) (string, error) {
	if known = strings.TrimSpace(known); known != "" {
		return known, nil
	}
	if supplied = strings.TrimSpace(supplied); supplied != "" {
		return supplied, nil
	}
	return "", domain.ErrLocationRequired
}
