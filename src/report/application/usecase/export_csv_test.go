package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"shop/src/report/domain/entity"
	salesentity "shop/src/sales/domain/entity"

	"github.com/stretchr/testify/require"
)

func TestExportCSVUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("ExactHeaderAndOneRowPerLineItem", func(t *testing.T) {
		f := newReportFixture(t)
		p1 := f.seed(t, "Yerba", "10.50", 20)
		p2 := f.seed(t, "Pan", "0.80", 20)

		customer, err := salesentity.NewCustomer("Ana López", "555-0101", "Av. Siempre Viva 742")
		require.NoError(t, err)

		s1 := f.recordSale(t, time.Date(2025, 9, 8, 10, 15, 0, 0, time.UTC), map[string]int{p1: 2, p2: 1}, "21.80", "card", customer)
		f.recordSale(t, time.Date(2025, 9, 8, 16, 40, 0, 0, time.UTC), map[string]int{p2: 3}, "2.40", "cash", nil)

		var buf bytes.Buffer
		require.NoError(t, f.export.Execute(ctx, &buf, "2025-09-08", "2025-09-08"))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)

		require.Equal(t, []string{
			"Sale ID", "Date", "Time", "Product ID", "Product Name", "Quantity",
			"Unit Price", "Line Total", "Payment Method", "Customer Name", "Customer Phone",
		}, rows[0])

		// Una fila por línea de venta: 2 + 1
		require.Len(t, rows, 4)

		// Primera venta ordenada por timestamp, líneas por product id
		require.Equal(t, s1, rows[1][0])
		require.Equal(t, "2025-09-08", rows[1][1])
		require.Equal(t, "10:15", rows[1][2])
		require.Equal(t, "card", rows[1][8])
		require.Equal(t, "Ana López", rows[1][9])
		require.Equal(t, "555-0101", rows[1][10])

		// Venta sin cliente deja los campos de cliente vacíos
		require.Equal(t, "16:40", rows[3][2])
		require.Equal(t, "", rows[3][9])
		require.Equal(t, "", rows[3][10])
	})

	t.Run("LineMathUsesCurrentCatalogPrices", func(t *testing.T) {
		f := newReportFixture(t)
		p1 := f.seed(t, "Yerba", "10.50", 20)

		f.recordSale(t, time.Date(2025, 9, 8, 11, 0, 0, 0, time.UTC), map[string]int{p1: 3}, "31.50", "cash", nil)

		var buf bytes.Buffer
		require.NoError(t, f.export.Execute(ctx, &buf, "2025-09-08", "2025-09-08"))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "Yerba", rows[1][4])
		require.Equal(t, "3", rows[1][5])
		require.Equal(t, "10.50", rows[1][6])
		require.Equal(t, "31.50", rows[1][7])
	})

	t.Run("DeletedProductRowHasPlaceholderAndZeroPrice", func(t *testing.T) {
		f := newReportFixture(t)
		f.recordSale(t, time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC), map[string]int{"ghost": 2}, "5.00", "cash", nil)

		var buf bytes.Buffer
		require.NoError(t, f.export.Execute(ctx, &buf, "2025-09-08", "2025-09-08"))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "ghost", rows[1][3])
		require.Equal(t, "Deleted Product (ghost)", rows[1][4])
		require.Equal(t, "2", rows[1][5])
		require.Equal(t, "0", rows[1][6])
		require.Equal(t, "0", rows[1][7])
	})

	t.Run("InvalidDateRejected", func(t *testing.T) {
		f := newReportFixture(t)

		var buf bytes.Buffer
		err := f.export.Execute(ctx, &buf, "bad", "2025-09-08")
		require.ErrorIs(t, err, entity.ErrInvalidDate)
	})
}
