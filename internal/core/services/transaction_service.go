package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/dto"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	// dispatchTimeout bounds the out-of-band classification publish so a slow
	// broker cannot hold the goroutine forever.
	dispatchTimeout = 5 * time.Second
)

// transactionService covers the ledger write shapes this core owns. The
// classifier and dispatcher are optional: both may be nil and everything on
// the authoritative write path stays correct without them.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountRepository
	categoryRepo    portsrepo.CategoryRepository
	classifier      portssvc.ClassifierSvc
	dispatcher      portssvc.ClassificationDispatcher
	minConfidence   float64
}

// NewTransactionService creates a new TransactionService. classifier and
// dispatcher may be nil when no oracle is deployed.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountRepository,
	categoryRepo portsrepo.CategoryRepository,
	classifier portssvc.ClassifierSvc,
	dispatcher portssvc.ClassificationDispatcher,
	minConfidence float64,
) portssvc.TransactionSvc {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		classifier:      classifier,
		dispatcher:      dispatcher,
		minConfidence:   minConfidence,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, fmt.Errorf("failed to find account for transaction: %w", err)
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		found, err := s.categoryRepo.FindCategoriesByIDs(ctx, []string{*req.CategoryID})
		if err != nil {
			return nil, fmt.Errorf("failed to validate transaction category: %w", err)
		}
		cat, ok := found[*req.CategoryID]
		if !ok || cat.AccountID != req.AccountID {
			return nil, apperrors.NewAppError(400, "category does not belong to the account", apperrors.ErrValidation)
		}
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid date", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Date:          date,
		Reconciled:    req.Reconciled,
		Description:   req.Description,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if txn.IsUncategorized() {
		s.dispatchClassification(ctx, txn)
	}

	return &txn, nil
}

// dispatchClassification hands the transaction to the out-of-band classifier
// pipeline. Runs detached from the request: the write already succeeded and
// dispatch failures are only logged.
func (s *transactionService) dispatchClassification(ctx context.Context, txn domain.Transaction) {
	if s.dispatcher == nil {
		return
	}
	features := classifierFeatures(txn)
	logger := s.GetLogger(ctx)
	go func() {
		dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()
		if err := s.dispatcher.DispatchClassification(dispatchCtx, features); err != nil {
			logger.Warn("classification dispatch failed",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("error", err.Error()))
		}
	}()
}

func classifierFeatures(txn domain.Transaction) domain.ClassifierFeatures {
	return domain.ClassifierFeatures{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Description:   txn.Description,
		Amount:        txn.Amount.String(),
		PaymentMethod: txn.PaymentMethod,
		Date:          dto.FormatDate(txn.Date),
	}
}

// CreateTransferPair creates the two linked legs of a transfer. The request
// amount must be positive; the outflow leg is negated and both legs share a
// transfer ID.
func (s *transactionService) CreateTransferPair(ctx context.Context, req dto.CreateTransferRequest, userID string) ([]domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "transfer amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID); err != nil {
		return nil, fmt.Errorf("failed to find source account for transfer: %w", err)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID); err != nil {
		return nil, fmt.Errorf("failed to find destination account for transfer: %w", err)
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid date", apperrors.ErrValidation)
	}

	now := time.Now()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	outflow := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.FromAccountID,
		Amount:        req.Amount.Neg(),
		Date:          date,
		Description:   req.Description,
		TransferID:    &transferID,
		AuditFields:   audit,
	}
	inflow := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.ToAccountID,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		TransferID:    &transferID,
		AuditFields:   audit,
	}

	if err := s.transactionRepo.SaveTransferPair(ctx, outflow, inflow); err != nil {
		return nil, fmt.Errorf("failed to create transfer pair: %w", err)
	}

	return []domain.Transaction{outflow, inflow}, nil
}

func (s *transactionService) SetReconciled(ctx context.Context, transactionID string, reconciled bool, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction to reconcile: %w", err)
	}

	now := time.Now()
	if err := s.transactionRepo.SetReconciled(ctx, transactionID, reconciled, userID, now); err != nil {
		return nil, fmt.Errorf("failed to set reconciled flag: %w", err)
	}

	txn.Reconciled = reconciled
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) ([]domain.Transaction, *string, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var from, to *time.Time
	if req.From != nil {
		parsed, err := dto.ParseDate(*req.From)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid from date", apperrors.ErrValidation)
		}
		from = &parsed
	}
	if req.To != nil {
		parsed, err := dto.ParseDate(*req.To)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid to date", apperrors.ErrValidation)
		}
		to = &parsed
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccount(ctx, req.AccountID, from, to, limit, req.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nextToken, nil
}

// SuggestCategory consults the classifier oracle synchronously. The prediction
// is written back only when the transaction is still uncategorized and the
// confidence clears the configured floor; a lost write race simply leaves the
// user's own choice in place.
func (s *transactionService) SuggestCategory(ctx context.Context, transactionID string, userID string) (*domain.CategoryPrediction, bool, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find transaction for suggestion: %w", err)
	}
	if !txn.IsUncategorized() {
		return nil, false, nil
	}
	if s.classifier == nil {
		return nil, false, nil
	}

	prediction, err := s.classifier.Predict(ctx, classifierFeatures(*txn))
	if err != nil {
		s.LogWarn(ctx, "classifier prediction failed",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return nil, false, nil
	}
	if prediction == nil {
		return nil, false, nil
	}

	if prediction.Confidence < s.minConfidence {
		return prediction, false, nil
	}

	// Re-check category ownership before writing someone else's category.
	found, err := s.categoryRepo.FindCategoriesByIDs(ctx, []string{prediction.CategoryID})
	if err != nil {
		return nil, false, fmt.Errorf("failed to validate predicted category: %w", err)
	}
	cat, ok := found[prediction.CategoryID]
	if !ok || cat.AccountID != txn.AccountID {
		s.LogWarn(ctx, "classifier predicted a foreign category, suggestion dropped",
			slog.String("transaction_id", transactionID),
			slog.String("category_id", prediction.CategoryID))
		return nil, false, nil
	}

	applied, err := s.transactionRepo.SetCategoryIfUncategorized(ctx, transactionID, prediction.CategoryID, userID, time.Now())
	if err != nil {
		return nil, false, fmt.Errorf("failed to apply category suggestion: %w", err)
	}
	return prediction, applied, nil
}
