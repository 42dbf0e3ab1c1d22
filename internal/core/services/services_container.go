package services

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/platform/config"
)

// NewServiceContainer wires the service facades from configuration and the
// repository provider. The audit recorder starts its worker here; callers own
// the returned container and must Close the audit service on shutdown.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	clock := domain.UTCClock{}
	container := &portssvc.ServiceContainer{}

	container.Audit = NewAuditService(repos.AuditRepo, logger, cfg.AuditBuffer)

	container.Limit = NewLimitService(repos.LedgerRepo, LimitDefaults{
		Daily: map[domain.AccountType]decimal.Decimal{
			domain.Checking: cfg.DailyLimitChecking,
			domain.Savings:  cfg.DailyLimitSavings,
			domain.Business: cfg.DailyLimitBusiness,
		},
		Monthly: map[domain.AccountType]decimal.Decimal{
			domain.Checking: cfg.MonthlyLimitChecking,
			domain.Savings:  cfg.MonthlyLimitSavings,
			domain.Business: cfg.MonthlyLimitBusiness,
		},
	}, clock)

	container.Fraud = NewFraudService(repos.LedgerRepo, container.Audit, FraudThresholds{
		HighValue:       cfg.HighValueThreshold,
		VelocityCeiling: cfg.VelocityCeiling,
		VelocityWindow:  cfg.VelocityWindow,
	}, clock)

	bounds := TransferBounds{Min: cfg.MinAmount, Max: cfg.MaxAmount}

	container.Transfer = NewTransferService(
		repos.AccountRepo,
		repos.LedgerRepo,
		container.Limit,
		container.Fraud,
		container.Audit,
		bounds,
		clock,
	)

	container.Wire = NewWireService(
		repos.AccountRepo,
		repos.WireRepo,
		container.Limit,
		container.Fraud,
		container.Audit,
		bounds,
		WirePolicy{Fee: cfg.WireFee},
		clock,
	)

	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo, container.Audit, clock)
	container.Bulk = NewBulkService(container.Account, container.Wire, cfg.MaxBulkSize)

	return container
}
