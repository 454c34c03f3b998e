package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	catalogport "shop/src/catalog/domain/port"
	"shop/src/report/domain/entity"
	salesport "shop/src/sales/domain/port"

	"github.com/shopspring/decimal"
)

// csvHeader orden de columnas del export. Hay consumidores externos que
// parsean por posición, no cambiar sin coordinar.
var csvHeader = []string{
	"Sale ID",
	"Date",
	"Time",
	"Product ID",
	"Product Name",
	"Quantity",
	"Unit Price",
	"Line Total",
	"Payment Method",
	"Customer Name",
	"Customer Phone",
}

// ExportCSVUseCase caso de uso para exportar las ventas de una ventana
// como CSV, una fila por línea de venta
type ExportCSVUseCase struct {
	sales  salesport.SalesLog
	ledger catalogport.StockLedger
}

// NewExportCSVUseCase crea una nueva instancia del caso de uso
func NewExportCSVUseCase(sales salesport.SalesLog, ledger catalogport.StockLedger) *ExportCSVUseCase {
	return &ExportCSVUseCase{
		sales:  sales,
		ledger: ledger,
	}
}

// Execute escribe el CSV de la ventana [startDate, endDate] en w.
// Las ventas salen ordenadas por timestamp; las líneas de cada venta
// por product id.
func (uc *ExportCSVUseCase) Execute(ctx context.Context, w io.Writer, startDate, endDate string) error {
	start, end, _, err := reportWindow(startDate, endDate)
	if err != nil {
		return err
	}

	entries, err := uc.sales.Range(ctx, start, end.Add(24*time.Hour), false)
	if err != nil {
		return fmt.Errorf("%w: reading sales: %v", entity.ErrExport, err)
	}

	resolver := newProductResolver(uc.ledger)
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrExport, err)
	}

	for _, e := range entries {
		record := e.Record

		customerName, customerPhone := "", ""
		if record.Customer != nil {
			customerName = record.Customer.Name
			customerPhone = record.Customer.Phone
		}

		pids := make([]string, 0, len(record.Items))
		for pid := range record.Items {
			pids = append(pids, pid)
		}
		sort.Strings(pids)

		for _, pid := range pids {
			qty := record.Items[pid]
			info, err := resolver.Resolve(ctx, pid)
			if err != nil {
				return fmt.Errorf("%w: %v", entity.ErrExport, err)
			}

			lineTotal := info.Price.Mul(decimal.NewFromInt(int64(qty)))
			row := []string{
				e.ID,
				record.Timestamp.Format(dateLayout),
				record.Timestamp.Format("15:04"),
				pid,
				info.Name,
				fmt.Sprintf("%d", qty),
				info.Price.String(),
				lineTotal.String(),
				record.PaymentMethod,
				customerName,
				customerPhone,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("%w: %v", entity.ErrExport, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrExport, err)
	}
	return nil
}
