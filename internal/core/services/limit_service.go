package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/middleware"
)

// LimitDefaults holds the class-default limits per account type, used when an
// account carries no per-account override.
type LimitDefaults struct {
	Daily   map[domain.AccountType]decimal.Decimal
	Monthly map[domain.AccountType]decimal.Decimal
}

type limitService struct {
	ledgerRepo portsrepo.LedgerRepository
	defaults   LimitDefaults
	clock      domain.Clock
}

// NewLimitService creates the rolling-window limit evaluator.
func NewLimitService(ledgerRepo portsrepo.LedgerRepository, defaults LimitDefaults, clock domain.Clock) portssvc.LimitSvcFacade {
	return &limitService{
		ledgerRepo: ledgerRepo,
		defaults:   defaults,
		clock:      clock,
	}
}

var _ portssvc.LimitSvcFacade = (*limitService)(nil)

func (s *limitService) effectiveLimit(account domain.Account, window domain.LimitWindow) decimal.Decimal {
	if window == domain.WindowDay {
		if account.DailyLimit != nil {
			return *account.DailyLimit
		}
		return s.defaults.Daily[account.AccountType]
	}
	if account.MonthlyLimit != nil {
		return *account.MonthlyLimit
	}
	return s.defaults.Monthly[account.AccountType]
}

// CheckLimit is the fast pre-check; exceeding strictly (> limit, not >=)
// rejects. Landing exactly on the limit is allowed. The ledger store repeats
// the same comparison inside the commit transaction via Guards.
func (s *limitService) CheckLimit(ctx context.Context, account domain.Account, amount decimal.Decimal, window domain.LimitWindow) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.clock.Now()
	from := window.Start(now)

	spent, err := s.ledgerRepo.SumDebits(ctx, account.AccountID, from, now)
	if err != nil {
		logger.Error("Failed to aggregate window debits",
			slog.String("account_id", account.AccountID),
			slog.String("window", string(window)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to aggregate %s window for account %s: %w", window, account.AccountID, err)
	}

	limit := s.effectiveLimit(account, window)
	total := spent.Add(amount)
	if total.GreaterThan(limit) {
		return fmt.Errorf("%w: %s window total %s would exceed limit %s for account %s",
			apperrors.ErrLimitExceeded, window, total.StringFixed(2), limit.StringFixed(2), account.AccountID)
	}
	return nil
}

// Guards restates the day and month checks against the same effective limits
// so CommitTransactions can re-validate them under the account row lock.
func (s *limitService) Guards(account domain.Account, amount decimal.Decimal, now time.Time) []domain.LimitGuard {
	windows := []domain.LimitWindow{domain.WindowDay, domain.WindowMonth}
	guards := make([]domain.LimitGuard, 0, len(windows))
	for _, w := range windows {
		guards = append(guards, domain.LimitGuard{
			AccountID: account.AccountID,
			Window:    w,
			From:      w.Start(now),
			Candidate: amount,
			Limit:     s.effectiveLimit(account, w),
		})
	}
	return guards
}
