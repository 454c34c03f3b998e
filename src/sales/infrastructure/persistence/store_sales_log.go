package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"shop/src/sales/domain/entity"
	"shop/src/sales/domain/port"
	sharedport "shop/src/shared/domain/port"
	sharedpersistence "shop/src/shared/infrastructure/persistence"
)

const salesCollection = "sales"

// StoreSalesLog implementa SalesLog sobre el store clave-valor.
// Una venta escrita no se toca nunca más desde acá.
type StoreSalesLog struct {
	store sharedport.Store
}

// NewStoreSalesLog crea una nueva instancia del log
func NewStoreSalesLog(store sharedport.Store) *StoreSalesLog {
	return &StoreSalesLog{
		store: store,
	}
}

func salePath(saleID string) string {
	return salesCollection + "/" + saleID
}

// NextID reserva un id de venta con prefijo de timestamp
func (l *StoreSalesLog) NextID() string {
	return sharedpersistence.GenerateID()
}

// Append agrega una venta con id asignado por el store
func (l *StoreSalesLog) Append(ctx context.Context, record *entity.SaleRecord) (string, error) {
	id, err := l.store.Append(ctx, salesCollection, record)
	if err != nil {
		return "", fmt.Errorf("appending sale: %w", err)
	}
	return id, nil
}

// AppendWithID agrega una venta bajo un id reservado.
// Si la ruta ya existe (un reintento tras una escritura que sí llegó),
// se considera éxito: el registro de ese id es siempre el mismo.
func (l *StoreSalesLog) AppendWithID(ctx context.Context, saleID string, record *entity.SaleRecord) error {
	ok, err := l.store.WriteIfVersion(ctx, salePath(saleID), record, "")
	if err != nil {
		return fmt.Errorf("appending sale %s: %w", saleID, err)
	}
	if !ok {
		// Ya estaba escrita por un intento anterior del mismo id
		return nil
	}
	return nil
}

// Get obtiene una venta por id
func (l *StoreSalesLog) Get(ctx context.Context, saleID string) (*entity.SaleRecord, error) {
	data, _, err := l.store.Read(ctx, salePath(saleID))
	if err == sharedport.ErrAbsent {
		return nil, fmt.Errorf("sale %s: %w", saleID, entity.ErrSaleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading sale %s: %w", saleID, err)
	}

	var record entity.SaleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: corrupt sale %s: %v", sharedport.ErrStoreFailure, saleID, err)
	}
	record.ID = saleID
	return &record, nil
}

// Range retorna las ventas de la ventana ordenadas por timestamp
func (l *StoreSalesLog) Range(ctx context.Context, from, to time.Time, includeEnd bool) ([]port.SaleEntry, error) {
	raw, err := l.store.List(ctx, salesCollection)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	entries := make([]port.SaleEntry, 0, len(raw))
	for id, data := range raw {
		var record entity.SaleRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("%w: corrupt sale %s: %v", sharedport.ErrStoreFailure, id, err)
		}
		record.ID = id

		if record.Timestamp.Before(from) {
			continue
		}
		if includeEnd {
			if record.Timestamp.After(to) {
				continue
			}
		} else if !record.Timestamp.Before(to) {
			continue
		}

		entries = append(entries, port.SaleEntry{ID: id, Record: &record})
	}

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].Record.Timestamp, entries[j].Record.Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

var _ port.SalesLog = (*StoreSalesLog)(nil)
