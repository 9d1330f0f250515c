package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sba-recon-api/internal/dto"
	"github.com/noah-isme/sba-recon-api/internal/models"
	"github.com/noah-isme/sba-recon-api/internal/service"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
	"github.com/noah-isme/sba-recon-api/pkg/response"
)

type reconServiceMock struct {
	startResp  *dto.BatchResponse
	startErr   error
	getResp    *dto.BatchResponse
	getErr     error
	records    []dto.RecordStatusResponse
	lastFilter models.StatusFilter
	cancelErr  error
}

func (m *reconServiceMock) StartBatch(ctx context.Context, req dto.StartBatchRequest) (*dto.BatchResponse, error) {
	return m.startResp, m.startErr
}

func (m *reconServiceMock) GetBatch(ctx context.Context, batchID string) (*dto.BatchResponse, error) {
	return m.getResp, m.getErr
}

func (m *reconServiceMock) ListRecords(ctx context.Context, filter models.StatusFilter) ([]dto.RecordStatusResponse, *models.Pagination, error) {
	m.lastFilter = filter
	return m.records, models.NewPagination(filter.Page, filter.PageSize, len(m.records)), nil
}

func (m *reconServiceMock) CancelBatch(ctx context.Context, batchID string) error {
	return m.cancelErr
}

type exporterMock struct {
	file *service.ExportFile
	err  error
}

func (m *exporterMock) ExportBatch(ctx context.Context, batchID string, format service.ExportFormat) (*service.ExportFile, error) {
	return m.file, m.err
}

func TestReconciliationHandlerStartAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reconServiceMock{startResp: &dto.BatchResponse{BatchID: "b1", Status: models.BatchRunning}}
	handler := NewReconciliationHandler(svc, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.StartBatchRequest{TermCode: "2024-FALL"})
	req, _ := http.NewRequest(http.MethodPost, "/reconciliation/batches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Start(c)
	require.Equal(t, http.StatusAccepted, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestReconciliationHandlerStartInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReconciliationHandler(&reconServiceMock{}, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/reconciliation/batches", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Start(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconciliationHandlerStartConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reconServiceMock{startErr: appErrors.ErrBatchRunning}
	handler := NewReconciliationHandler(svc, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.StartBatchRequest{BatchID: "b1", TermCode: "2024-FALL"})
	req, _ := http.NewRequest(http.MethodPost, "/reconciliation/batches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Start(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReconciliationHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reconServiceMock{getErr: appErrors.ErrBatchNotFound}
	handler := NewReconciliationHandler(svc, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reconciliation/batches/nope", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconciliationHandlerRecordsParsesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reconServiceMock{records: []dto.RecordStatusResponse{{ReceiptNumber: "R-1"}}}
	handler := NewReconciliationHandler(svc, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reconciliation/batches/b1/records?confidence=LOW&errorCategory=NO_ENROLLMENTS&page=2&limit=10", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "b1"}}

	handler.Records(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", svc.lastFilter.BatchID)
	assert.Equal(t, models.ConfidenceLow, svc.lastFilter.Confidence)
	assert.Equal(t, models.ErrorNoEnrollments, svc.lastFilter.ErrorCategory)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 10, svc.lastFilter.PageSize)
}

func TestReconciliationHandlerCancelNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReconciliationHandler(&reconServiceMock{}, &exporterMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/reconciliation/batches/b1/cancel", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "b1"}}

	handler.Cancel(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReconciliationHandlerExportStreamsFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &exporterMock{file: &service.ExportFile{
		Filename:    "recon_2024-FALL_20240901_000000.csv",
		ContentType: "text/csv",
		Payload:     []byte("Receipt,Student\nR-1,STU-1\n"),
	}}
	handler := NewReconciliationHandler(&reconServiceMock{}, exporter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reconciliation/batches/b1/export?format=csv", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "b1"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "recon_2024-FALL")
	assert.Contains(t, w.Body.String(), "R-1")
}

func TestReconciliationHandlerExportSealedConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &exporterMock{err: appErrors.ErrBatchRunning}
	handler := NewReconciliationHandler(&reconServiceMock{}, exporter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reconciliation/batches/b1/export", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "b1"}}

	handler.Export(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
