package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sba-recon-api/internal/dto"
	"github.com/noah-isme/sba-recon-api/internal/models"
	"github.com/noah-isme/sba-recon-api/internal/service"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
	"github.com/noah-isme/sba-recon-api/pkg/response"
)

type reconciliationService interface {
	StartBatch(ctx context.Context, req dto.StartBatchRequest) (*dto.BatchResponse, error)
	GetBatch(ctx context.Context, batchID string) (*dto.BatchResponse, error)
	ListRecords(ctx context.Context, filter models.StatusFilter) ([]dto.RecordStatusResponse, *models.Pagination, error)
	CancelBatch(ctx context.Context, batchID string) error
}

type batchExporter interface {
	ExportBatch(ctx context.Context, batchID string, format service.ExportFormat) (*service.ExportFile, error)
}

// ReconciliationHandler exposes reconciliation batch endpoints.
type ReconciliationHandler struct {
	service  reconciliationService
	exporter batchExporter
}

// NewReconciliationHandler constructs a reconciliation handler.
func NewReconciliationHandler(svc reconciliationService, exporter batchExporter) *ReconciliationHandler {
	return &ReconciliationHandler{service: svc, exporter: exporter}
}

// Start godoc
// @Summary Start reconciliation batch
// @Description Queue a reconciliation run over one term's payment records
// @Tags Reconciliation
// @Accept json
// @Produce json
// @Param payload body dto.StartBatchRequest true "Batch payload"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reconciliation/batches [post]
func (h *ReconciliationHandler) Start(c *gin.Context) {
	var req dto.StartBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid batch payload"))
		return
	}

	batch, err := h.service.StartBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	var meta map[string]interface{}
	if claims := claimsFromContext(c); claims != nil {
		meta = map[string]interface{}{"requested_by": claims.Email}
	}
	response.JSON(c, http.StatusAccepted, batch, nil, meta)
}

// Get godoc
// @Summary Get reconciliation batch
// @Description Fetch the batch report including progress and summary
// @Tags Reconciliation
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reconciliation/batches/{id} [get]
func (h *ReconciliationHandler) Get(c *gin.Context) {
	batch, err := h.service.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, batch, nil)
}

// Cancel godoc
// @Summary Cancel reconciliation batch
// @Description Stop a running batch, preserving already-computed results
// @Tags Reconciliation
// @Produce json
// @Param id path string true "Batch ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reconciliation/batches/{id}/cancel [post]
func (h *ReconciliationHandler) Cancel(c *gin.Context) {
	if err := h.service.CancelBatch(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Records godoc
// @Summary List batch record statuses
// @Description List per-record outcomes with optional confidence and error filters
// @Tags Reconciliation
// @Produce json
// @Param id path string true "Batch ID"
// @Param confidence query string false "Filter by confidence level"
// @Param errorCategory query string false "Filter by error category"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reconciliation/batches/{id}/records [get]
func (h *ReconciliationHandler) Records(c *gin.Context) {
	filter := models.StatusFilter{BatchID: c.Param("id")}
	if confidence := c.Query("confidence"); confidence != "" {
		filter.Confidence = models.ConfidenceLevel(confidence)
	}
	if category := c.Query("errorCategory"); category != "" {
		filter.ErrorCategory = models.ErrorCategory(category)
	}
	filter.Page, filter.PageSize = pageParams(c)

	records, pagination, err := h.service.ListRecords(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Export godoc
// @Summary Export batch report
// @Description Download the sealed batch report as CSV or PDF
// @Tags Reconciliation
// @Produce octet-stream
// @Param id path string true "Batch ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reconciliation/batches/{id}/export [get]
func (h *ReconciliationHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exporter.ExportBatch(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
