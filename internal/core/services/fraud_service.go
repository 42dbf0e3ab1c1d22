package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/middleware"
)

// FraudThresholds configures the fraud screen heuristics.
type FraudThresholds struct {
	HighValue       decimal.Decimal
	VelocityCeiling int
	VelocityWindow  time.Duration
}

type fraudService struct {
	ledgerRepo portsrepo.LedgerRepository
	auditSvc   portssvc.AuditSvcFacade
	thresholds FraudThresholds
	clock      domain.Clock
}

// NewFraudService creates the velocity/magnitude fraud screen.
func NewFraudService(ledgerRepo portsrepo.LedgerRepository, auditSvc portssvc.AuditSvcFacade, thresholds FraudThresholds, clock domain.Clock) portssvc.FraudSvcFacade {
	return &fraudService{
		ledgerRepo: ledgerRepo,
		auditSvc:   auditSvc,
		thresholds: thresholds,
		clock:      clock,
	}
}

var _ portssvc.FraudSvcFacade = (*fraudService)(nil)

// Screen applies the velocity ceiling (hard failure) and the magnitude flag
// (advisory). Magnitude flags never block; the caller proceeds and the flag
// is audited with severity WARNING.
func (s *fraudService) Screen(ctx context.Context, userID, accountID string, amount decimal.Decimal, txnType domain.TransactionType) (domain.FraudVerdict, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	verdict := domain.FraudVerdict{}

	count, err := s.ledgerRepo.CountDebitsSince(ctx, accountID, now.Add(-s.thresholds.VelocityWindow))
	if err != nil {
		logger.Error("Failed to count recent debits for velocity check",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return verdict, fmt.Errorf("failed to evaluate velocity for account %s: %w", accountID, err)
	}

	if count >= s.thresholds.VelocityCeiling {
		verdict.Blocked = true
		s.auditSvc.Record(ctx, domain.AuditEntry{
			ActorID:    userID,
			Action:     "VELOCITY_BLOCKED",
			EntityType: "account",
			EntityID:   accountID,
			Severity:   domain.SeverityCritical,
			Details: map[string]string{
				"count":   fmt.Sprintf("%d", count),
				"ceiling": fmt.Sprintf("%d", s.thresholds.VelocityCeiling),
				"type":    string(txnType),
			},
			CreatedAt: now,
		})
		return verdict, nil
	}

	if amount.GreaterThanOrEqual(s.thresholds.HighValue) {
		verdict.Flagged = true
		logger.Warn("High-value transaction flagged",
			slog.String("account_id", accountID),
			slog.String("amount", amount.StringFixed(2)),
		)
		s.auditSvc.Record(ctx, domain.AuditEntry{
			ActorID:    userID,
			Action:     "HIGH_VALUE_FLAGGED",
			EntityType: "account",
			EntityID:   accountID,
			Severity:   domain.SeverityWarning,
			Details: map[string]string{
				"amount":    amount.StringFixed(2),
				"threshold": s.thresholds.HighValue.StringFixed(2),
				"type":      string(txnType),
			},
			CreatedAt: now,
		})
	}

	return verdict, nil
}
