package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"shop/src/catalog/domain/port"

	"github.com/tealeg/xlsx"
)

// ExportInventoryUseCase caso de uso para exportar el catálogo a planilla
type ExportInventoryUseCase struct {
	products port.ProductRepository
}

// NewExportInventoryUseCase crea una nueva instancia del caso de uso
func NewExportInventoryUseCase(products port.ProductRepository) *ExportInventoryUseCase {
	return &ExportInventoryUseCase{
		products: products,
	}
}

// Execute arma un archivo xlsx con una fila por producto
func (uc *ExportInventoryUseCase) Execute(ctx context.Context) (*xlsx.File, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Price", "Quantity", "Inventory Value", "Images"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	ids := make([]string, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := products[id]
		row := sheet.AddRow()
		row.AddCell().SetValue(id)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price.String())
		row.AddCell().SetValue(p.Quantity)
		row.AddCell().SetValue(p.Value().String())
		row.AddCell().SetValue(strings.Join(p.Images, ","))
	}

	return file, nil
}
