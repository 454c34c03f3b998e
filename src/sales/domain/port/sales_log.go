package port

import (
	"context"
	"time"

	"shop/src/sales/domain/entity"
)

// SaleEntry es una venta del log junto con su id
type SaleEntry struct {
	ID     string
	Record *entity.SaleRecord
}

// SalesLog define el contrato del log de ventas: append-only,
// indexado por id. Este subsistema nunca muta ni borra entradas.
type SalesLog interface {
	// NextID reserva un id de venta. Los ids ordenan aproximadamente
	// por momento de creación.
	NextID() string

	// Append agrega una venta con id asignado por el log
	Append(ctx context.Context, record *entity.SaleRecord) (string, error)

	// AppendWithID agrega una venta bajo un id reservado con NextID.
	// Es idempotente: reintentar el mismo id tras una falla ambigua no
	// duplica la venta.
	AppendWithID(ctx context.Context, saleID string, record *entity.SaleRecord) error

	// Get obtiene una venta por id. Retorna ErrSaleNotFound si no existe.
	Get(ctx context.Context, saleID string) (*entity.SaleRecord, error)

	// Range retorna las ventas cuyo timestamp cae en la ventana
	// [from, to] si includeEnd, o [from, to) si no, ordenadas por
	// timestamp ascendente (id como desempate).
	Range(ctx context.Context, from, to time.Time, includeEnd bool) ([]SaleEntry, error)
}

// CartCleaner permite al coordinador de checkout vaciar el carrito
// que originó la venta, solo en el camino de éxito.
type CartCleaner interface {
	Delete(sessionID string)
}
