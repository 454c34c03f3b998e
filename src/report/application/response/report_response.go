package response

import "github.com/shopspring/decimal"

// SalesReportResponse reporte agregado de ventas sobre una ventana de
// días calendario, ambos extremos incluidos
type SalesReportResponse struct {
	StartDate          string                     `json:"start_date"`
	EndDate            string                     `json:"end_date"`
	DateOrderCorrected bool                       `json:"date_order_corrected"`
	TotalSales         int                        `json:"total_sales"`
	TotalRevenue       decimal.Decimal            `json:"total_revenue"`
	PaymentMethods     map[string]int             `json:"payment_methods"`
	HourlyRevenue      map[string]decimal.Decimal `json:"hourly_revenue"`
	ProductsSold       map[string]int             `json:"products_sold"`
	DailyProductsSold  map[string]map[string]int  `json:"daily_products_sold"`
}
