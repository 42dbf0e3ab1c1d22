package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
	"github.com/openretailbank/corebank/internal/middleware"
)

// TransferBounds are the global per-operation amount bounds.
type TransferBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// transferService orchestrates deposits, withdrawals and internal transfers
// as atomic operations against the ledger store.
type transferService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	limitSvc    portssvc.LimitSvcFacade
	fraudSvc    portssvc.FraudSvcFacade
	auditSvc    portssvc.AuditSvcFacade
	bounds      TransferBounds
	clock       domain.Clock
}

// NewTransferService creates the transfer engine.
func NewTransferService(
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	limitSvc portssvc.LimitSvcFacade,
	fraudSvc portssvc.FraudSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	bounds TransferBounds,
	clock domain.Clock,
) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		limitSvc:    limitSvc,
		fraudSvc:    fraudSvc,
		auditSvc:    auditSvc,
		bounds:      bounds,
		clock:       clock,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// validateAmount enforces the global bounds and the two-fraction-digit scale.
func (s *transferService) validateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount %s has more than two fraction digits", apperrors.ErrInvalidAmount, amount.String())
	}
	if amount.LessThan(s.bounds.Min) || amount.GreaterThan(s.bounds.Max) {
		return fmt.Errorf("%w: amount %s outside bounds [%s, %s]",
			apperrors.ErrInvalidAmount, amount.StringFixed(2), s.bounds.Min.StringFixed(2), s.bounds.Max.StringFixed(2))
	}
	return nil
}

// debitChecks runs the shared pre-commit gate for debits: balance, day and
// month limits, fraud screen. The ledger store repeats the balance and limit
// checks under the row lock; this pass exists to fail fast and to emit the
// fraud verdict before any write.
func (s *transferService) debitChecks(ctx context.Context, account domain.Account, amount decimal.Decimal, txnType domain.TransactionType, actorID string) error {
	if account.Balance.LessThan(amount) {
		return fmt.Errorf("%w: account %s balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, account.AccountID, account.Balance.StringFixed(2), amount.StringFixed(2))
	}

	if err := s.limitSvc.CheckLimit(ctx, account, amount, domain.WindowDay); err != nil {
		return err
	}
	if err := s.limitSvc.CheckLimit(ctx, account, amount, domain.WindowMonth); err != nil {
		return err
	}

	verdict, err := s.fraudSvc.Screen(ctx, actorID, account.AccountID, amount, txnType)
	if err != nil {
		return err
	}
	if verdict.Blocked {
		return fmt.Errorf("%w: account %s", apperrors.ErrVelocityExceeded, account.AccountID)
	}
	return nil
}

func (s *transferService) resolveActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, account.AccountID, account.Status)
	}
	return account, nil
}

// Deposit credits an account.
func (s *transferService) Deposit(ctx context.Context, req dto.DepositRequest, actorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	account, err := s.resolveActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.Deposit,
		Amount:        req.Amount,
		CurrencyCode:  account.CurrencyCode,
		Status:        domain.TxnCompleted,
		Reference:     orGeneratedReference(req.Reference),
		Metadata:      req.Metadata,
		CreatedAt:     now,
		ProcessedAt:   &now,
	}

	changes := map[string]decimal.Decimal{account.AccountID: req.Amount}
	if err := s.ledgerRepo.CommitTransactions(ctx, []domain.Transaction{txn}, changes, nil); err != nil {
		logger.Error("Failed to commit deposit", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    actorID,
		Action:     "DEPOSIT",
		EntityType: "transaction",
		EntityID:   txn.TransactionID,
		Severity:   domain.SeverityInfo,
		Details:    map[string]string{"account_id": account.AccountID, "amount": req.Amount.StringFixed(2)},
		CreatedAt:  now,
	})

	logger.Info("Deposit committed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", account.AccountID))
	return &txn, nil
}

// Withdraw debits an account after balance, limit and fraud checks.
func (s *transferService) Withdraw(ctx context.Context, req dto.WithdrawRequest, actorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	account, err := s.resolveActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	if err := s.debitChecks(ctx, *account, req.Amount, domain.Withdrawal, actorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.Withdrawal,
		Amount:        req.Amount.Neg(),
		CurrencyCode:  account.CurrencyCode,
		Status:        domain.TxnCompleted,
		Reference:     orGeneratedReference(req.Reference),
		Metadata:      req.Metadata,
		CreatedAt:     now,
		ProcessedAt:   &now,
	}

	changes := map[string]decimal.Decimal{account.AccountID: req.Amount.Neg()}
	guards := s.limitSvc.Guards(*account, req.Amount, now)
	if err := s.ledgerRepo.CommitTransactions(ctx, []domain.Transaction{txn}, changes, guards); err != nil {
		logger.Error("Failed to commit withdrawal", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    actorID,
		Action:     "WITHDRAWAL",
		EntityType: "transaction",
		EntityID:   txn.TransactionID,
		Severity:   domain.SeverityInfo,
		Details:    map[string]string{"account_id": account.AccountID, "amount": req.Amount.StringFixed(2)},
		CreatedAt:  now,
	})

	logger.Info("Withdrawal committed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", account.AccountID))
	return &txn, nil
}

// Transfer moves money between two internal accounts as two linked rows
// sharing one reference, created in the same atomic unit.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: source and destination are the same account %s", apperrors.ErrInvalidTransfer, req.SourceAccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.SourceAccountID, req.DestinationAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transfer accounts: %w", err)
	}

	source, ok := accounts[req.SourceAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, req.SourceAccountID)
	}
	if !source.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, source.AccountID, source.Status)
	}

	dest, ok := accounts[req.DestinationAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrDestinationInvalid, req.DestinationAccountID)
	}
	if !dest.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrDestinationInvalid, dest.AccountID, dest.Status)
	}
	if source.CurrencyCode != dest.CurrencyCode {
		return nil, fmt.Errorf("%w: currency mismatch %s vs %s", apperrors.ErrValidation, source.CurrencyCode, dest.CurrencyCode)
	}

	if err := s.debitChecks(ctx, source, req.Amount, domain.Transfer, actorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reference := orGeneratedReference(req.Reference)

	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     source.AccountID,
		Type:          domain.Transfer,
		Amount:        req.Amount.Neg(),
		CurrencyCode:  source.CurrencyCode,
		Status:        domain.TxnCompleted,
		Reference:     reference,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		ProcessedAt:   &now,
	}
	credit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     dest.AccountID,
		Type:          domain.Transfer,
		Amount:        req.Amount,
		CurrencyCode:  dest.CurrencyCode,
		Status:        domain.TxnCompleted,
		Reference:     reference,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		ProcessedAt:   &now,
	}

	changes := map[string]decimal.Decimal{
		source.AccountID: req.Amount.Neg(),
		dest.AccountID:   req.Amount,
	}
	guards := s.limitSvc.Guards(source, req.Amount, now)
	if err := s.ledgerRepo.CommitTransactions(ctx, []domain.Transaction{debit, credit}, changes, guards); err != nil {
		logger.Error("Failed to commit transfer",
			slog.String("source_account_id", source.AccountID),
			slog.String("destination_account_id", dest.AccountID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    actorID,
		Action:     "TRANSFER",
		EntityType: "transaction",
		EntityID:   debit.TransactionID,
		Severity:   domain.SeverityInfo,
		Details: map[string]string{
			"source_account_id":      source.AccountID,
			"destination_account_id": dest.AccountID,
			"amount":                 req.Amount.StringFixed(2),
			"reference":              reference,
		},
		CreatedAt: now,
	})

	logger.Info("Transfer committed",
		slog.String("reference", reference),
		slog.String("source_account_id", source.AccountID),
		slog.String("destination_account_id", dest.AccountID),
	)
	return []domain.Transaction{debit, credit}, nil
}

// orGeneratedReference returns the caller-supplied reference, or a fresh one.
func orGeneratedReference(ref string) string {
	if ref != "" {
		return ref
	}
	return uuid.NewString()
}
