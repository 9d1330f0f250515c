package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sba-recon-api/internal/models"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
	"github.com/noah-isme/sba-recon-api/pkg/export"
)

// ExportFormat enumerates supported download formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered batch report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders reconciliation batch reports for download. Only
// sealed batches can be exported; a running batch has no stable report.
type ExportService struct {
	store  batchStore
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(store batchStore, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{store: store, csv: csv, pdf: pdf, logger: logger}
}

// ExportBatch renders the full per-record report for a sealed batch.
func (s *ExportService) ExportBatch(ctx context.Context, batchID string, format ExportFormat) (*ExportFile, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBatchNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	if !batch.Sealed() {
		return nil, appErrors.Clone(appErrors.ErrBatchRunning, "batch report is not available until the run finishes")
	}

	dataset, err := s.buildDataset(ctx, batch)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Reconciliation Report %s", batch.TermCode)

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render batch report")
	}

	filename := fmt.Sprintf("recon_%s_%s.%s",
		sanitizeFilename(batch.TermCode), time.Now().UTC().Format("20060102_150405"), format)

	s.logger.Sugar().Infow("batch report exported",
		"batch_id", batchID, "format", format, "records", len(dataset.Rows))
	return &ExportFile{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, batch *models.ReconciliationBatch) (export.Dataset, error) {
	headers := []string{"Receipt", "Student", "Term", "Status", "Confidence", "Score", "Variance", "Pricing Method", "Discrepancies", "Error"}
	rows := make([]map[string]string, 0, batch.ProcessedPayments)

	filter := models.StatusFilter{BatchID: batch.ID, Page: 1, PageSize: 500}
	for {
		statuses, total, err := s.store.ListStatuses(ctx, filter)
		if err != nil {
			return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list record statuses")
		}
		for _, status := range statuses {
			rows = append(rows, map[string]string{
				"Receipt":        status.ReceiptNumber,
				"Student":        status.StudentIdentifier,
				"Term":           status.TermCode,
				"Status":         string(status.Status),
				"Confidence":     string(status.ConfidenceLevel),
				"Score":          fmt.Sprintf("%d", status.ConfidenceScore),
				"Variance":       fmt.Sprintf("%.2f", status.VarianceAmount),
				"Pricing Method": string(status.PricingMethod),
				"Discrepancies":  formatDiscrepancies(status.Discrepancies),
				"Error":          derefString(status.ErrorMessage),
			})
		}
		if len(rows) >= total || len(statuses) == 0 {
			break
		}
		filter.Page++
	}

	summary := [][2]string{
		{"Batch ID", batch.ID},
		{"Term", batch.TermCode},
		{"Status", string(batch.Status)},
		{"Total Payments", fmt.Sprintf("%d", batch.TotalPayments)},
		{"Successful Matches", fmt.Sprintf("%d", batch.SuccessfulMatches)},
		{"Failed Matches", fmt.Sprintf("%d", batch.FailedMatches)},
		{"Success Rate", fmt.Sprintf("%.2f%%", batch.ResultsSummary.SuccessRate*100)},
		{"Discrepancies", fmt.Sprintf("%d", batch.ResultsSummary.DiscrepancyCount)},
	}

	return export.Dataset{Summary: summary, Headers: headers, Rows: rows}, nil
}

func formatDiscrepancies(discrepancies models.DiscrepancyList) string {
	if len(discrepancies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(discrepancies))
	for _, d := range discrepancies {
		parts = append(parts, fmt.Sprintf("%s (%s)", d.Type, d.Severity))
	}
	return strings.Join(parts, "; ")
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(raw)
}
