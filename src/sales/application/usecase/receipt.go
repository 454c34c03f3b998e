package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	catalogentity "shop/src/catalog/domain/entity"
	catalogport "shop/src/catalog/domain/port"
	"shop/src/sales/application/response"
	"shop/src/sales/domain/port"

	"github.com/shopspring/decimal"
)

// GetReceiptUseCase caso de uso para reconstruir el recibo de una venta.
// Las líneas se resuelven contra el catálogo ACTUAL: si un producto fue
// dado de baja, la línea se conserva con un nombre placeholder y precio
// cero. El total cobrado es el que quedó registrado en la venta, no el
// recalculado.
type GetReceiptUseCase struct {
	sales  port.SalesLog
	ledger catalogport.StockLedger
}

// NewGetReceiptUseCase crea una nueva instancia del caso de uso
func NewGetReceiptUseCase(sales port.SalesLog, ledger catalogport.StockLedger) *GetReceiptUseCase {
	return &GetReceiptUseCase{
		sales:  sales,
		ledger: ledger,
	}
}

// Execute arma el recibo de la venta indicada
func (uc *GetReceiptUseCase) Execute(ctx context.Context, saleID string) (*response.ReceiptResponse, error) {
	record, err := uc.sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ReceiptLineResponse, 0, len(record.Items))
	calculated := decimal.Zero

	for pid, qty := range record.Items {
		name := fmt.Sprintf("[Deleted Product %s]", pid)
		unitPrice := decimal.Zero

		product, err := uc.ledger.Get(ctx, pid)
		if err != nil && !errors.Is(err, catalogentity.ErrProductNotFound) {
			return nil, fmt.Errorf("error resolving receipt line %s: %w", pid, err)
		}
		if err == nil {
			name = product.Name
			unitPrice = product.Price
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, response.ReceiptLineResponse{
			ProductID: pid,
			Name:      name,
			Quantity:  qty,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
		calculated = calculated.Add(lineTotal)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	resp := &response.ReceiptResponse{
		SaleID:          saleID,
		Timestamp:       record.Timestamp,
		Items:           items,
		StoredTotal:     record.Total,
		CalculatedTotal: calculated,
		PaymentMethod:   record.PaymentMethod,
		Cashier:         record.Cashier,
	}
	if record.Customer != nil {
		resp.CustomerName = record.Customer.Name
		resp.CustomerPhone = record.Customer.Phone
	}

	return resp, nil
}
