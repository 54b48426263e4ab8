package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/guard"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/notify"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/provider/zcredit"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/refgen"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/repository"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/validation"

	"go.uber.org/zap"
)

// ValidationFailedError carries every field violation found in one pass, so
// the caller can report all problems at once. The record never leaves draft
// and nothing touches the network.
type ValidationFailedError struct {
	Violations []validation.FieldError
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

type TransactionUsecase struct {
	repo      repository.TransactionRepository
	gateway   domain.Gateway
	validator *validation.Validator
	locker    guard.Locker
	refs      refgen.Generator
	sink      notify.Sink
	logger    *zap.Logger
}

func NewTransactionUsecase(
	repo repository.TransactionRepository,
	gateway domain.Gateway,
	validator *validation.Validator,
	locker guard.Locker,
	refs refgen.Generator,
	sink notify.Sink,
	logger *zap.Logger,
) *TransactionUsecase {
	return &TransactionUsecase{
		repo:      repo,
		gateway:   gateway,
		validator: validator,
		locker:    locker,
		refs:      refs,
		sink:      sink,
		logger:    logger,
	}
}

// CreateDraft allocates a fresh reference and persists the record in draft.
// Input is validated up front so a malformed request never becomes a record.
func (uc *TransactionUsecase) CreateDraft(ctx context.Context, req domain.TransactionRequest) (*domain.Transaction, error) {
	if violations := uc.validator.Validate(req); len(violations) > 0 {
		return nil, &ValidationFailedError{Violations: violations}
	}

	tx := &domain.Transaction{
		Reference: uc.refs.Next(),
		Request:   req,
		Status:    domain.StatusDraft,
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	uc.logger.Info("transaction draft created",
		zap.String("reference", tx.Reference),
		zap.Float64("amount", tx.Request.Amount),
		zap.String("kind", string(tx.Request.Kind)))
	return tx, nil
}

// Submit runs the full pipeline for one draft transaction:
// lock → duplicate guard → validate → processing → send → interpret → persist.
// Gateway and processor failures come back as a persisted terminal status on
// the returned record, not as an error; only validation, duplicate, lock and
// storage problems surface as errors.
func (uc *TransactionUsecase) Submit(ctx context.Context, reference string) (*domain.Transaction, error) {
	tx, err := uc.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	acquired, err := uc.locker.Acquire(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submission lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmissionInFlight
	}
	// release must survive caller cancellation
	defer uc.locker.Release(context.WithoutCancel(ctx), reference)

	// duplicate guard: an already-resolved record is never resubmitted
	if tx.Status.Resolved() {
		return nil, domain.ErrDuplicateTransaction
	}
	dup, err := uc.repo.FindResolvedByReference(ctx, reference, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup != nil {
		uc.logger.Warn("duplicate submission rejected",
			zap.String("reference", reference),
			zap.String("existing_status", string(dup.Status)))
		return nil, domain.ErrDuplicateTransaction
	}

	// re-validate at submission time: the card may have expired since the
	// draft was created
	if violations := uc.validator.Validate(tx.Request); len(violations) > 0 {
		uc.sink.Notify("Validation Error: "+(&ValidationFailedError{violations}).Error(), notify.SeverityDanger)
		return tx, &ValidationFailedError{Violations: violations}
	}

	ok, err := uc.repo.MarkProcessing(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark transaction processing: %w", err)
	}
	if !ok {
		// lost the race against another submitter
		return nil, domain.ErrDuplicateTransaction
	}
	tx.Status = domain.StatusProcessing

	uc.logger.Info("submitting transaction",
		zap.String("reference", tx.Reference),
		zap.String("gateway", uc.gateway.Name()),
		zap.Float64("amount", tx.Request.Amount),
		zap.String("kind", string(tx.Request.Kind)))

	outcome := uc.gateway.Send(ctx, zcredit.BuildPayload(tx.Request))

	status, rawResponse, message := uc.resolve(tx.Reference, outcome)

	// the outcome must land even if the caller went away mid-call
	persistCtx := context.WithoutCancel(ctx)
	if err := uc.repo.RecordOutcome(persistCtx, tx.ID, status, rawResponse, message); err != nil {
		uc.logger.Error("failed to persist transaction outcome",
			zap.String("reference", tx.Reference),
			zap.String("status", string(status)),
			zap.String("raw_response", rawResponse),
			zap.Error(err))
		return nil, fmt.Errorf("failed to persist outcome: %w", err)
	}

	tx.Status = status
	tx.RawResponse = &rawResponse
	tx.OutcomeMessage = &message

	uc.notifyOutcome(tx)
	return tx, nil
}

// resolve classifies a gateway outcome into the terminal status triple.
// A panic during interpretation is converted into a failed status with a
// generic message; internals never leak past the submission boundary.
func (uc *TransactionUsecase) resolve(reference string, outcome domain.GatewayOutcome) (status domain.Status, rawResponse, message string) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("panic while interpreting gateway outcome",
				zap.String("reference", reference),
				zap.Any("panic", r),
				zap.String("body", outcome.Body))
			status = domain.StatusFailed
			rawResponse = fmt.Sprintf("Unexpected Error: %v", r)
			message = "internal processing error"
		}
	}()

	status, rawResponse, message = interpret(outcome)

	if status != domain.StatusSuccess {
		uc.logger.Error("transaction did not succeed",
			zap.String("reference", reference),
			zap.String("status", string(status)),
			zap.String("outcome_kind", string(outcome.Kind)),
			zap.Int("http_status", outcome.StatusCode),
			zap.String("raw_response", rawResponse),
			zap.String("message", message))
	}
	return status, rawResponse, message
}

func (uc *TransactionUsecase) notifyOutcome(tx *domain.Transaction) {
	msg := ""
	if tx.OutcomeMessage != nil {
		msg = *tx.OutcomeMessage
	}
	switch tx.Status {
	case domain.StatusSuccess:
		uc.sink.Notify(msg, notify.SeveritySuccess)
	case domain.StatusPending:
		uc.sink.Notify(fmt.Sprintf("Transaction %s: %s", tx.Reference, msg), notify.SeverityWarning)
	default:
		uc.sink.Notify(fmt.Sprintf("Transaction Failed: %s", msg), notify.SeverityDanger)
	}
}

// Get fetches one record by reference.
func (uc *TransactionUsecase) Get(ctx context.Context, reference string) (*domain.Transaction, error) {
	return uc.repo.GetByReference(ctx, reference)
}

// List returns recent records, newest first.
func (uc *TransactionUsecase) List(ctx context.Context, limit, offset int) ([]domain.Transaction, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}
