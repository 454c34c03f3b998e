package controller

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"shop/src/report/application/usecase"
	"shop/src/report/domain/entity"

	"github.com/gin-gonic/gin"
)

// ReportController maneja las peticiones HTTP de reportes de ventas
type ReportController struct {
	build  *usecase.BuildReportUseCase
	export *usecase.ExportCSVUseCase
}

// NewReportController crea una nueva instancia del controlador
func NewReportController(build *usecase.BuildReportUseCase, export *usecase.ExportCSVUseCase) *ReportController {
	return &ReportController{
		build:  build,
		export: export,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/sales", c.GetSalesReport)
		reports.GET("/sales/export", c.ExportSalesCSV)
	}

	log.Println("Rutas Report disponibles:")
	log.Println("  GET    /api/v1/reports/sales")
	log.Println("  GET    /api/v1/reports/sales/export")
}

// reportDates lee los query params de la ventana. Ambos son
// obligatorios; sin default implícito al día de hoy.
func reportDates(ctx *gin.Context) (string, string, bool) {
	start := ctx.Query("start_date")
	end := ctx.Query("end_date")
	if start == "" || end == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date query parameters are required (YYYY-MM-DD)"})
		return "", "", false
	}
	return start, end, true
}

// GetSalesReport retorna el reporte agregado de la ventana pedida
func (c *ReportController) GetSalesReport(ctx *gin.Context) {
	start, end, ok := reportDates(ctx)
	if !ok {
		return
	}

	report, err := c.build.Execute(ctx.Request.Context(), start, end)
	if err != nil {
		respondReportError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// ExportSalesCSV descarga las ventas de la ventana como CSV
func (c *ReportController) ExportSalesCSV(ctx *gin.Context) {
	start, end, ok := reportDates(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.export.Execute(ctx.Request.Context(), &buf, start, end); err != nil {
		respondReportError(ctx, err)
		return
	}

	filename := fmt.Sprintf("sales_%s.csv", time.Now().UTC().Format("20060102_150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func respondReportError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidDate):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Error generating report: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
