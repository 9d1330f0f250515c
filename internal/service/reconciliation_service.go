package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sba-recon-api/internal/dto"
	"github.com/noah-isme/sba-recon-api/internal/models"
	"github.com/noah-isme/sba-recon-api/pkg/config"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
	"github.com/noah-isme/sba-recon-api/pkg/jobs"
)

type studentDirectory interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.Student, error)
}

type termCatalog interface {
	FindByCode(ctx context.Context, code string) (*models.Term, error)
}

type enrollmentCatalog interface {
	ListActiveByStudentAndTerm(ctx context.Context, studentID, termID string) ([]models.Enrollment, error)
}

type paymentSource interface {
	ListByTerm(ctx context.Context, termCode string) ([]models.PaymentRecord, error)
}

type priceRuleSource interface {
	ListActive(ctx context.Context, asOf time.Time) ([]models.PriceRule, error)
}

type feeRuleSource interface {
	ListActive(ctx context.Context) ([]models.FeeRule, error)
}

type discountLister interface {
	ListActive(ctx context.Context) ([]models.DiscountSource, error)
}

type notePatternSource interface {
	ListActive(ctx context.Context) ([]models.NotePattern, error)
}

type batchStore interface {
	CreateBatch(ctx context.Context, batch *models.ReconciliationBatch) error
	GetBatch(ctx context.Context, id string) (*models.ReconciliationBatch, error)
	ResetBatch(ctx context.Context, id, termCode string, total int, startedAt time.Time) error
	UpdateProgress(ctx context.Context, id string, processed, successful, failed int) error
	SealBatch(ctx context.Context, batch *models.ReconciliationBatch) error
	InsertStatus(ctx context.Context, status *models.ReconciliationStatus) error
	ListStatuses(ctx context.Context, filter models.StatusFilter) ([]models.ReconciliationStatus, int, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type metricsRecorder interface {
	ObserveRecord(status string)
	ObserveDiscrepancy(discrepancyType string)
	ObserveBatch(status string, duration time.Duration)
	RecordCacheOperation(hit bool)
}

// ReconciliationService orchestrates batch reconciliation runs: it loads the
// per-run rule snapshot, drives the resolvers over every payment record with
// failure isolation, and maintains the persisted batch aggregate.
type ReconciliationService struct {
	students    studentDirectory
	terms       termCatalog
	enrollments enrollmentCatalog
	payments    paymentSource
	priceRules  priceRuleSource
	feeRules    feeRuleSource
	discounts   discountLister
	patterns    notePatternSource
	store       batchStore
	cache       reportCache
	queue       jobDispatcher

	pricing  *PricingService
	benefits *DiscountService
	parser   *NoteParser
	detector *DiscrepancyService
	metrics  metricsRecorder

	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.ReconConfig

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// ReconciliationDeps bundles the collaborators the orchestrator consumes.
type ReconciliationDeps struct {
	Students    studentDirectory
	Terms       termCatalog
	Enrollments enrollmentCatalog
	Payments    paymentSource
	PriceRules  priceRuleSource
	FeeRules    feeRuleSource
	Discounts   discountLister
	Patterns    notePatternSource
	Store       batchStore
	Cache       reportCache
	Queue       jobDispatcher
	Pricing     *PricingService
	Benefits    *DiscountService
	Parser      *NoteParser
	Detector    *DiscrepancyService
	Metrics     metricsRecorder
}

// NewReconciliationService constructs the orchestrator.
func NewReconciliationService(deps ReconciliationDeps, validate *validator.Validate, logger *zap.Logger, cfg config.ReconConfig) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 4
	}
	if cfg.RecordTimeout <= 0 {
		cfg.RecordTimeout = 10 * time.Second
	}
	if cfg.ReportCacheTTL <= 0 {
		cfg.ReportCacheTTL = 10 * time.Minute
	}
	return &ReconciliationService{
		students:    deps.Students,
		terms:       deps.Terms,
		enrollments: deps.Enrollments,
		payments:    deps.Payments,
		priceRules:  deps.PriceRules,
		feeRules:    deps.FeeRules,
		discounts:   deps.Discounts,
		patterns:    deps.Patterns,
		store:       deps.Store,
		cache:       deps.Cache,
		queue:       deps.Queue,
		pricing:     deps.Pricing,
		benefits:    deps.Benefits,
		parser:      deps.Parser,
		detector:    deps.Detector,
		metrics:     deps.Metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		cancels:     make(map[string]context.CancelFunc),
	}
}

// StartBatch validates the request, registers the batch and queues the run.
// Re-posting an existing batch identifier re-runs that batch once it is no
// longer running.
func (s *ReconciliationService) StartBatch(ctx context.Context, req dto.StartBatchRequest) (*dto.BatchResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch request")
	}

	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	now := time.Now().UTC()
	existing, err := s.store.GetBatch(ctx, batchID)
	switch {
	case err == nil:
		if existing.Status == models.BatchRunning {
			return nil, appErrors.Clone(appErrors.ErrBatchRunning, "batch is already running")
		}
		if err := s.store.ResetBatch(ctx, batchID, req.TermCode, 0, now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset batch")
		}
	case errors.Is(err, sql.ErrNoRows):
		batch := &models.ReconciliationBatch{
			ID:             batchID,
			TermCode:       req.TermCode,
			Status:         models.BatchRunning,
			ResultsSummary: models.ResultsSummary{DiscrepanciesByType: map[string]int{}},
			ErrorLog:       models.StringList{},
			CreatedAt:      now,
		}
		if err := s.store.CreateBatch(ctx, batch); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create batch")
		}
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	if err := s.cache.Delete(ctx, batchReportKey(batchID)); err != nil {
		s.logger.Sugar().Warnw("failed to invalidate batch report cache", "batch_id", batchID, "error", err)
	}

	if err := s.queue.Enqueue(jobs.Job{ID: batchID, Type: "reconciliation", Payload: req.TermCode}); err != nil {
		s.abortBatch(ctx, batchID, fmt.Sprintf("failed to queue batch run: %v", err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue batch run")
	}

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	return dto.NewBatchResponse(batch), nil
}

// Run executes one reconciliation batch. Per-record failures are isolated
// into PROCESSING_ERROR statuses; the only batch-fatal condition is rule
// table unavailability, which seals the batch ABORTED.
func (s *ReconciliationService) Run(ctx context.Context, batchID, termCode string) error {
	started := time.Now().UTC()
	runCtx, cancel := context.WithCancel(ctx)
	s.registerCancel(batchID, cancel)
	defer s.unregisterCancel(batchID)

	records, err := s.payments.ListByTerm(ctx, termCode)
	if err != nil {
		s.abortBatch(ctx, batchID, fmt.Sprintf("payment records unavailable: %v", err))
		return fmt.Errorf("load payment records: %w", err)
	}

	if err := s.store.ResetBatch(ctx, batchID, termCode, len(records), started); err != nil {
		return fmt.Errorf("reset batch %s: %w", batchID, err)
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		s.abortBatch(ctx, batchID, fmt.Sprintf("rule tables unavailable: %v", err))
		s.observeBatch(string(models.BatchAborted), started)
		return appErrors.Wrap(err, appErrors.ErrRulesUnavailable.Code, appErrors.ErrRulesUnavailable.Status, "failed to load rule snapshot")
	}

	results := s.processAll(runCtx, snapshot, batchID, records)

	batch := &models.ReconciliationBatch{
		ID:             batchID,
		TermCode:       termCode,
		Status:         models.BatchComplete,
		ResultsSummary: models.ResultsSummary{DiscrepanciesByType: map[string]int{}},
		ErrorLog:       models.StringList{},
	}

	skipped := 0
	for i, status := range results {
		if status == nil {
			skipped++
			continue
		}
		if err := s.store.InsertStatus(ctx, status); err != nil {
			s.logger.Sugar().Errorw("failed to persist record status",
				"batch_id", batchID, "receipt", records[i].ReceiptNumber, "error", err)
			batch.ErrorLog = append(batch.ErrorLog, fmt.Sprintf("receipt %s: status not persisted: %v", records[i].ReceiptNumber, err))
		}

		batch.ProcessedPayments++
		if status.Status == models.MatchProcessingError {
			batch.FailedMatches++
			if status.ErrorMessage != nil {
				batch.ErrorLog = append(batch.ErrorLog, fmt.Sprintf("receipt %s: %s", status.ReceiptNumber, *status.ErrorMessage))
			}
		} else {
			batch.SuccessfulMatches++
		}
		for _, d := range status.Discrepancies {
			batch.ResultsSummary.DiscrepancyCount++
			batch.ResultsSummary.DiscrepanciesByType[string(d.Type)]++
			if s.metrics != nil {
				s.metrics.ObserveDiscrepancy(string(d.Type))
			}
		}
		if s.metrics != nil {
			s.metrics.ObserveRecord(string(status.Status))
		}
	}

	// Every counted record is exactly one of successful or failed. Records
	// never reached because of cancellation are excluded from the totals and
	// noted in the error log instead.
	batch.TotalPayments = batch.ProcessedPayments
	if batch.ProcessedPayments > 0 {
		batch.ResultsSummary.SuccessRate = float64(batch.SuccessfulMatches) / float64(batch.ProcessedPayments)
	}

	if runCtx.Err() != nil {
		batch.Status = models.BatchCancelled
		if skipped > 0 {
			batch.ErrorLog = append(batch.ErrorLog, fmt.Sprintf("cancelled with %d records unprocessed", skipped))
		}
	}

	completed := time.Now().UTC()
	batch.CompletedAt = &completed
	if err := s.store.SealBatch(ctx, batch); err != nil {
		return fmt.Errorf("seal batch %s: %w", batchID, err)
	}

	s.observeBatch(string(batch.Status), started)
	s.logger.Sugar().Infow("batch sealed",
		"batch_id", batchID, "status", batch.Status,
		"total", batch.TotalPayments, "successful", batch.SuccessfulMatches,
		"failed", batch.FailedMatches, "discrepancies", batch.ResultsSummary.DiscrepancyCount,
		"duration", completed.Sub(started))
	return nil
}

// processAll fans records out over a bounded worker pool and collects
// results indexed by input position, so folding order is deterministic
// regardless of scheduling.
func (s *ReconciliationService) processAll(ctx context.Context, snapshot *models.RuleSnapshot, batchID string, records []models.PaymentRecord) []*models.ReconciliationStatus {
	results := make([]*models.ReconciliationStatus, len(records))
	indexes := make(chan int)

	var progressMu sync.Mutex
	processed, successful, failed := 0, 0, 0

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.WorkerConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				status := s.processRecord(ctx, snapshot, batchID, records[idx])
				results[idx] = status

				progressMu.Lock()
				processed++
				if status.Status == models.MatchProcessingError {
					failed++
				} else {
					successful++
				}
				p, ok, nok := processed, successful, failed
				progressMu.Unlock()

				if err := s.store.UpdateProgress(ctx, batchID, p, ok, nok); err != nil {
					s.logger.Sugar().Warnw("failed to persist batch progress", "batch_id", batchID, "error", err)
				}
			}
		}()
	}

feed:
	for i := range records {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return results
}

// processRecord reconciles one payment record. It never returns nil and
// never panics outward; any unexpected failure becomes a PROCESSING_ERROR
// status so the batch keeps moving.
func (s *ReconciliationService) processRecord(ctx context.Context, snapshot *models.RuleSnapshot, batchID string, record models.PaymentRecord) (status *models.ReconciliationStatus) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Sugar().Errorw("record processing panicked",
				"batch_id", batchID, "receipt", record.ReceiptNumber, "panic", r)
			status = s.errorStatus(batchID, record, models.ErrorProcessing, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	recCtx, cancel := context.WithTimeout(ctx, s.cfg.RecordTimeout)
	defer cancel()

	if record.StudentIdentifier == "" || record.TermCode == "" {
		return s.errorStatus(batchID, record, models.ErrorMissingStudentOrTerm, "record is missing student or term identifier")
	}

	student, err := s.students.FindByExternalID(recCtx, record.StudentIdentifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errorStatus(batchID, record, models.ErrorMissingStudentOrTerm, fmt.Sprintf("student %s not found", record.StudentIdentifier))
		}
		return s.lookupFailure(batchID, record, "student lookup", err)
	}

	term, err := s.terms.FindByCode(recCtx, record.TermCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errorStatus(batchID, record, models.ErrorMissingStudentOrTerm, fmt.Sprintf("term %s not found", record.TermCode))
		}
		return s.lookupFailure(batchID, record, "term lookup", err)
	}

	enrollments, err := s.enrollments.ListActiveByStudentAndTerm(recCtx, student.ID, term.ID)
	if err != nil {
		return s.lookupFailure(batchID, record, "enrollment lookup", err)
	}
	if len(enrollments) == 0 {
		return s.errorStatus(batchID, record, models.ErrorNoEnrollments, fmt.Sprintf("no enrollments for student %s in term %s", record.StudentIdentifier, record.TermCode))
	}

	var basePrice float64
	method := models.PricingMethod("")
	for _, enrollment := range enrollments {
		amount, tag := s.pricing.Resolve(snapshot, enrollment, student.Category, *term)
		basePrice += amount
		switch method {
		case "":
			method = tag
		case tag:
		default:
			method = models.MethodMixed
		}
	}

	benefit := s.benefits.Resolve(snapshot, student.ID, record.PaymentDate)
	parsed := s.parser.Parse(record.Notes, snapshot.NotePatterns)

	var scholarshipDiscount float64
	if benefit != nil {
		scholarshipDiscount = basePrice * benefit.Percentage / 100
	}

	// When the note names a recognised non-scholarship discount, the clerk's
	// recorded discount beyond the scholarship share is taken at face value
	// as "other discount"; its percentage is validated separately.
	var otherDiscount float64
	if parsed.DiscountType != nil {
		otherDiscount = record.NetDiscount - scholarshipDiscount
		if otherDiscount < 0 {
			otherDiscount = 0
		}
	}

	computed := models.ComputedPricing{
		BasePrice:           basePrice,
		ScholarshipDiscount: scholarshipDiscount,
		OtherDiscount:       otherDiscount,
		ExpectedNetAmount:   basePrice - scholarshipDiscount - otherDiscount,
		PricingMethod:       method,
	}

	if recCtx.Err() != nil {
		return s.errorStatus(batchID, record, models.ErrorProcessing, "record processing timed out")
	}

	discrepancies, level, score := s.detector.Detect(computed, parsed, record, benefit)

	matchStatus := models.MatchSuccess
	if len(discrepancies) > 0 {
		matchStatus = models.MatchDiscrepancy
	}

	return &models.ReconciliationStatus{
		ID:                uuid.NewString(),
		BatchID:           batchID,
		ReceiptNumber:     record.ReceiptNumber,
		StudentIdentifier: record.StudentIdentifier,
		TermCode:          record.TermCode,
		Status:            matchStatus,
		ConfidenceLevel:   level,
		ConfidenceScore:   score,
		VarianceAmount:    computed.ExpectedNetAmount - record.NetAmount,
		PricingMethod:     method,
		Discrepancies:     discrepancies,
		ProcessedAt:       time.Now().UTC(),
	}
}

// GetBatch returns the serializable batch report, preferring the cache for
// sealed batches.
func (s *ReconciliationService) GetBatch(ctx context.Context, batchID string) (*dto.BatchResponse, error) {
	key := batchReportKey(batchID)

	var cached dto.BatchResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(true)
		}
		return &cached, nil
	} else if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Sugar().Warnw("batch report cache read failed", "batch_id", batchID, "error", err)
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(false)
	}

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBatchNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	resp := dto.NewBatchResponse(batch)
	if batch.Sealed() {
		if err := s.cache.Set(ctx, key, resp, s.cfg.ReportCacheTTL); err != nil {
			s.logger.Sugar().Warnw("batch report cache write failed", "batch_id", batchID, "error", err)
		}
	}
	return resp, nil
}

// ListRecords returns per-record statuses for review tooling.
func (s *ReconciliationService) ListRecords(ctx context.Context, filter models.StatusFilter) ([]dto.RecordStatusResponse, *models.Pagination, error) {
	if _, err := s.store.GetBatch(ctx, filter.BatchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.ErrBatchNotFound
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	statuses, total, err := s.store.ListStatuses(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list record statuses")
	}

	responses := make([]dto.RecordStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		responses = append(responses, dto.NewRecordStatusResponse(status))
	}
	return responses, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// CancelBatch signals a running batch to stop launching new records. The
// already-computed statuses are preserved and the batch seals CANCELLED.
func (s *ReconciliationService) CancelBatch(ctx context.Context, batchID string) error {
	s.mu.Lock()
	cancel, ok := s.cancels[batchID]
	s.mu.Unlock()
	if ok {
		cancel()
		return nil
	}

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrBatchNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	if batch.Sealed() {
		return appErrors.ErrBatchSealed
	}
	return appErrors.Clone(appErrors.ErrConflict, "batch is not running on this instance")
}

// loadSnapshot builds the immutable per-run view of the rule tables.
func (s *ReconciliationService) loadSnapshot(ctx context.Context) (*models.RuleSnapshot, error) {
	asOf := time.Now().UTC()

	priceRules, err := s.priceRules.ListActive(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("load price rules: %w", err)
	}
	feeRules, err := s.feeRules.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fee rules: %w", err)
	}
	discounts, err := s.discounts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load discount sources: %w", err)
	}
	patterns, err := s.patterns.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load note patterns: %w", err)
	}

	byStudent := make(map[string][]models.DiscountSource)
	for _, source := range discounts {
		byStudent[source.StudentID] = append(byStudent[source.StudentID], source)
	}

	return &models.RuleSnapshot{
		AsOf:               asOf,
		PriceRules:         priceRules,
		FeeRules:           feeRules,
		DiscountsByStudent: byStudent,
		NotePatterns:       patterns,
	}, nil
}

func (s *ReconciliationService) errorStatus(batchID string, record models.PaymentRecord, category models.ErrorCategory, message string) *models.ReconciliationStatus {
	return &models.ReconciliationStatus{
		ID:                uuid.NewString(),
		BatchID:           batchID,
		ReceiptNumber:     record.ReceiptNumber,
		StudentIdentifier: record.StudentIdentifier,
		TermCode:          record.TermCode,
		Status:            models.MatchProcessingError,
		ConfidenceLevel:   models.ConfidenceNone,
		ConfidenceScore:   0,
		Discrepancies:     models.DiscrepancyList{},
		ErrorCategory:     &category,
		ErrorMessage:      &message,
		ProcessedAt:       time.Now().UTC(),
	}
}

func (s *ReconciliationService) lookupFailure(batchID string, record models.PaymentRecord, stage string, err error) *models.ReconciliationStatus {
	s.logger.Sugar().Warnw("record lookup failed",
		"batch_id", batchID, "receipt", record.ReceiptNumber, "stage", stage, "error", err)
	return s.errorStatus(batchID, record, models.ErrorProcessing, fmt.Sprintf("%s failed: %v", stage, err))
}

func (s *ReconciliationService) abortBatch(ctx context.Context, batchID, diagnostic string) {
	completed := time.Now().UTC()
	batch := &models.ReconciliationBatch{
		ID:             batchID,
		Status:         models.BatchAborted,
		ResultsSummary: models.ResultsSummary{DiscrepanciesByType: map[string]int{}},
		ErrorLog:       models.StringList{diagnostic},
		CompletedAt:    &completed,
	}
	if err := s.store.SealBatch(ctx, batch); err != nil {
		s.logger.Sugar().Errorw("failed to seal aborted batch", "batch_id", batchID, "error", err)
	}
	s.logger.Sugar().Errorw("batch aborted", "batch_id", batchID, "diagnostic", diagnostic)
}

func (s *ReconciliationService) registerCancel(batchID string, cancel context.CancelFunc) {
	s.mu.Lock()
	s.cancels[batchID] = cancel
	s.mu.Unlock()
}

func (s *ReconciliationService) unregisterCancel(batchID string) {
	s.mu.Lock()
	delete(s.cancels, batchID)
	s.mu.Unlock()
}

func (s *ReconciliationService) observeBatch(status string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveBatch(status, time.Since(started))
	}
}

func batchReportKey(batchID string) string {
	return "recon:batch:" + batchID
}

// BatchWorker bridges queue jobs to the reconciliation service.
type BatchWorker struct {
	recon  *ReconciliationService
	logger *zap.Logger
}

// NewBatchWorker constructs a worker.
func NewBatchWorker(recon *ReconciliationService, logger *zap.Logger) *BatchWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchWorker{recon: recon, logger: logger}
}

// Handle processes a queued batch run.
func (w *BatchWorker) Handle(ctx context.Context, job jobs.Job) error {
	termCode, _ := job.Payload.(string)
	return w.recon.Run(ctx, job.ID, termCode)
}
