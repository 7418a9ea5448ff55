package location

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de ubicaciones atado a esa tx. Garantiza que la generación y
// la eliminación masiva sean todo-o-nada.
type TxRunner interface {
	RunLocations(ctx context.Context, fn func(locRepo repository.LocationRepository) error) error
}
