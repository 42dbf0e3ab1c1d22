package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
	"github.com/openretailbank/corebank/internal/middleware"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type accountService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	auditSvc    portssvc.AuditSvcFacade
	clock       domain.Clock
}

// NewAccountService creates the account read/status service.
func NewAccountService(
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	auditSvc portssvc.AuditSvcFacade,
	clock domain.Clock,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		auditSvc:    auditSvc,
		clock:       clock,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// UpdateStatus transitions an account between lifecycle states. CLOSED is
// terminal; any transition away from it is rejected.
func (s *accountService) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrConflict, accountID)
	}
	if account.Status == status {
		return account, nil
	}

	now := s.clock.Now()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, status, actorID, now); err != nil {
		logger.Error("Failed to update account status", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    actorID,
		Action:     "ACCOUNT_STATUS_UPDATED",
		EntityType: "account",
		EntityID:   accountID,
		Severity:   domain.SeverityInfo,
		Details: map[string]string{
			"from": string(account.Status),
			"to":   string(status),
		},
		CreatedAt: now,
	})

	account.Status = status
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	logger.Info("Account status updated", slog.String("account_id", accountID), slog.String("status", string(status)))
	return account, nil
}
