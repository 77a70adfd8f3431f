package ports

import (
	"context"
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// ReportPDFGenerator renderiza reportes a PDF.
type ReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, report entity.StockReport, generatedAt time.Time) ([]byte, error)
}
