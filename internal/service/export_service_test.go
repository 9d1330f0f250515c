package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sba-recon-api/internal/models"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
)

func sealedBatchStore(t *testing.T) *mockStore {
	t.Helper()
	store := newMockStore()
	completed := time.Now().UTC()
	require.NoError(t, store.CreateBatch(context.Background(), &models.ReconciliationBatch{
		ID: "b1", TermCode: "2024-FALL", Status: models.BatchComplete,
		TotalPayments: 1, ProcessedPayments: 1, SuccessfulMatches: 1,
		ResultsSummary: models.ResultsSummary{SuccessRate: 1},
		CompletedAt:    &completed,
	}))
	require.NoError(t, store.InsertStatus(context.Background(), &models.ReconciliationStatus{
		ID: "st1", BatchID: "b1", ReceiptNumber: "R-1", StudentIdentifier: "STU-1",
		TermCode: "2024-FALL", Status: models.MatchSuccess,
		ConfidenceLevel: models.ConfidenceHigh, ConfidenceScore: 95,
		PricingMethod: models.MethodDefaultLocal,
	}))
	return store
}

func TestExportBatchCSV(t *testing.T) {
	svc := NewExportService(sealedBatchStore(t), nil, nil, zap.NewNop())

	file, err := svc.ExportBatch(context.Background(), "b1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "recon_2024-FALL_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Payload)
	assert.Contains(t, body, "Batch ID,b1")
	assert.Contains(t, body, "Success Rate,100.00%")
	assert.Contains(t, body, "R-1")
	assert.Contains(t, body, "DEFAULT_LOCAL_PRICING")
}

func TestExportBatchPDF(t *testing.T) {
	svc := NewExportService(sealedBatchStore(t), nil, nil, zap.NewNop())

	file, err := svc.ExportBatch(context.Background(), "b1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestExportBatchUnsupportedFormat(t *testing.T) {
	svc := NewExportService(sealedBatchStore(t), nil, nil, zap.NewNop())

	_, err := svc.ExportBatch(context.Background(), "b1", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportBatchRunningConflict(t *testing.T) {
	store := newMockStore()
	require.NoError(t, store.CreateBatch(context.Background(), &models.ReconciliationBatch{
		ID: "b1", Status: models.BatchRunning,
	}))
	svc := NewExportService(store, nil, nil, zap.NewNop())

	_, err := svc.ExportBatch(context.Background(), "b1", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBatchRunning.Code, appErrors.FromError(err).Code)
}

func TestExportBatchNotFound(t *testing.T) {
	svc := NewExportService(newMockStore(), nil, nil, zap.NewNop())

	_, err := svc.ExportBatch(context.Background(), "nope", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBatchNotFound.Code, appErrors.FromError(err).Code)
}
