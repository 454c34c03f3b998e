package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogentity "shop/src/catalog/domain/entity"
	catalogport "shop/src/catalog/domain/port"
	"shop/src/report/application/response"
	"shop/src/report/domain/entity"
	salesport "shop/src/sales/domain/port"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// reportWindow normaliza la ventana de fechas del reporte. Si start
// viene después de end, se intercambian y se marca la corrección; el
// reporte siempre se calcula sobre la ventana cronológica.
func reportWindow(startDate, endDate string) (time.Time, time.Time, bool, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %s", entity.ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %s", entity.ErrInvalidDate, endDate)
	}

	corrected := false
	if start.After(end) {
		start, end = end, start
		corrected = true
	}
	return start, end, corrected, nil
}

// productInfo vista mínima de un producto para reportes
type productInfo struct {
	Name  string
	Price decimal.Decimal
}

// productResolver resuelve productos contra el catálogo actual, con
// cache para no golpear el store por cada línea. Los productos dados
// de baja conservan sus unidades bajo un placeholder con precio cero.
type productResolver struct {
	ledger catalogport.StockLedger
	cache  map[string]productInfo
}

func newProductResolver(ledger catalogport.StockLedger) *productResolver {
	return &productResolver{
		ledger: ledger,
		cache:  make(map[string]productInfo),
	}
}

func (r *productResolver) Resolve(ctx context.Context, productID string) (productInfo, error) {
	if info, ok := r.cache[productID]; ok {
		return info, nil
	}

	info := productInfo{
		Name:  fmt.Sprintf("Deleted Product (%s)", productID),
		Price: decimal.Zero,
	}
	product, err := r.ledger.Get(ctx, productID)
	if err != nil && !errors.Is(err, catalogentity.ErrProductNotFound) {
		return productInfo{}, fmt.Errorf("error resolving product %s: %w", productID, err)
	}
	if err == nil {
		info.Name = product.Name
		info.Price = product.Price
	}

	r.cache[productID] = info
	return info, nil
}

// BuildReportUseCase caso de uso para el reporte agregado de ventas.
// Los totales por venta son los almacenados en el registro; nunca se
// recalculan con precios actuales.
type BuildReportUseCase struct {
	sales  salesport.SalesLog
	ledger catalogport.StockLedger
}

// NewBuildReportUseCase crea una nueva instancia del caso de uso
func NewBuildReportUseCase(sales salesport.SalesLog, ledger catalogport.StockLedger) *BuildReportUseCase {
	return &BuildReportUseCase{
		sales:  sales,
		ledger: ledger,
	}
}

// Execute genera el reporte para la ventana [startDate, endDate] en
// días calendario, ambos extremos incluidos
func (uc *BuildReportUseCase) Execute(ctx context.Context, startDate, endDate string) (*response.SalesReportResponse, error) {
	start, end, corrected, err := reportWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	entries, err := uc.sales.Range(ctx, start, end.Add(24*time.Hour), false)
	if err != nil {
		return nil, fmt.Errorf("error reading sales for report: %w", err)
	}

	resolver := newProductResolver(uc.ledger)
	report := &response.SalesReportResponse{
		StartDate:          start.Format(dateLayout),
		EndDate:            end.Format(dateLayout),
		DateOrderCorrected: corrected,
		TotalRevenue:       decimal.Zero,
		PaymentMethods:     make(map[string]int),
		HourlyRevenue:      make(map[string]decimal.Decimal),
		ProductsSold:       make(map[string]int),
		DailyProductsSold:  make(map[string]map[string]int),
	}

	for _, e := range entries {
		record := e.Record
		report.TotalSales++
		report.TotalRevenue = report.TotalRevenue.Add(record.Total)
		report.PaymentMethods[record.PaymentMethod]++

		hourKey := record.Timestamp.Format("2006-01-02_15")
		report.HourlyRevenue[hourKey] = report.HourlyRevenue[hourKey].Add(record.Total)

		dayKey := record.Timestamp.Format(dateLayout)
		for pid, qty := range record.Items {
			info, err := resolver.Resolve(ctx, pid)
			if err != nil {
				return nil, err
			}

			report.ProductsSold[info.Name] += qty
			if report.DailyProductsSold[dayKey] == nil {
				report.DailyProductsSold[dayKey] = make(map[string]int)
			}
			report.DailyProductsSold[dayKey][info.Name] += qty
		}
	}

	return report, nil
}
