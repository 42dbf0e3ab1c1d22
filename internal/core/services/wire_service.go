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

// WirePolicy holds the flat fee charged on every outbound wire.
type WirePolicy struct {
	Fee decimal.Decimal
}

type wireService struct {
	accountRepo portsrepo.AccountRepository
	wireRepo    portsrepo.WireRepository
	limitSvc    portssvc.LimitSvcFacade
	fraudSvc    portssvc.FraudSvcFacade
	auditSvc    portssvc.AuditSvcFacade
	bounds      TransferBounds
	policy      WirePolicy
	clock       domain.Clock
}

// NewWireService creates the wire compliance workflow service.
func NewWireService(
	accountRepo portsrepo.AccountRepository,
	wireRepo portsrepo.WireRepository,
	limitSvc portssvc.LimitSvcFacade,
	fraudSvc portssvc.FraudSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	bounds TransferBounds,
	policy WirePolicy,
	clock domain.Clock,
) portssvc.WireSvcFacade {
	return &wireService{
		accountRepo: accountRepo,
		wireRepo:    wireRepo,
		limitSvc:    limitSvc,
		fraudSvc:    fraudSvc,
		auditSvc:    auditSvc,
		bounds:      bounds,
		policy:      policy,
		clock:       clock,
	}
}

var _ portssvc.WireSvcFacade = (*wireService)(nil)

// CreateWireTransfer debits the sender by amount plus fee and opens the wire
// in PENDING compliance review. Nothing leaves the bank until approval.
func (s *wireService) CreateWireTransfer(ctx context.Context, req dto.CreateWireRequest, actorID string) (*domain.WireTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, fmt.Errorf("%w: amount %s has more than two fraction digits", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	if req.Amount.LessThan(s.bounds.Min) || req.Amount.GreaterThan(s.bounds.Max) {
		return nil, fmt.Errorf("%w: amount %s outside bounds [%s, %s]",
			apperrors.ErrInvalidAmount, req.Amount.StringFixed(2), s.bounds.Min.StringFixed(2), s.bounds.Max.StringFixed(2))
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.SenderAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, account.AccountID, account.Status)
	}

	total := req.Amount.Add(s.policy.Fee)
	if account.Balance.LessThan(total) {
		return nil, fmt.Errorf("%w: account %s balance %s cannot cover %s including fee",
			apperrors.ErrInsufficientFunds, account.AccountID, account.Balance.StringFixed(2), total.StringFixed(2))
	}

	// Limits apply to the wire amount itself; the fee is not customer spend.
	if err := s.limitSvc.CheckLimit(ctx, *account, req.Amount, domain.WindowDay); err != nil {
		return nil, err
	}
	if err := s.limitSvc.CheckLimit(ctx, *account, req.Amount, domain.WindowMonth); err != nil {
		return nil, err
	}

	verdict, err := s.fraudSvc.Screen(ctx, actorID, account.AccountID, req.Amount, domain.Wire)
	if err != nil {
		return nil, err
	}
	if verdict.Blocked {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrVelocityExceeded, account.AccountID)
	}

	now := s.clock.Now()
	wireID := uuid.NewString()
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.Wire,
		Amount:        total.Neg(),
		CurrencyCode:  account.CurrencyCode,
		Status:        domain.TxnPending,
		Reference:     orGeneratedReference(req.Reference),
		Metadata:      map[string]string{"wire_id": wireID},
		CreatedAt:     now,
	}
	wire := domain.WireTransfer{
		WireID:           wireID,
		TransactionID:    debit.TransactionID,
		SenderAccountID:  account.AccountID,
		RecipientName:    req.RecipientName,
		RecipientBank:    req.RecipientBank,
		RecipientAccount: req.RecipientAccount,
		RecipientSWIFT:   req.RecipientSWIFT,
		Amount:           req.Amount,
		Fee:              s.policy.Fee,
		ComplianceStatus: domain.CompliancePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.wireRepo.CreateWire(ctx, wire, debit); err != nil {
		logger.Error("Failed to create wire", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    actorID,
		Action:     "WIRE_INITIATED",
		EntityType: "wire_transfer",
		EntityID:   wire.WireID,
		Severity:   domain.SeverityInfo,
		Details: map[string]string{
			"sender_account_id": account.AccountID,
			"amount":            req.Amount.StringFixed(2),
			"fee":               s.policy.Fee.StringFixed(2),
			"recipient_bank":    req.RecipientBank,
		},
		CreatedAt: now,
	})

	logger.Info("Wire created pending review", slog.String("wire_id", wire.WireID), slog.String("sender_account_id", account.AccountID))
	return &wire, nil
}

// ApproveWire finalizes a pending wire. Funds were already held at creation,
// so approval only flips the compliance and transaction statuses.
func (s *wireService) ApproveWire(ctx context.Context, wireID, approverID string) (*domain.WireTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.clock.Now()
	wire, err := s.wireRepo.ApproveWire(ctx, wireID, approverID, now)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    approverID,
		Action:     "WIRE_APPROVED",
		EntityType: "wire_transfer",
		EntityID:   wire.WireID,
		Severity:   domain.SeverityInfo,
		Details: map[string]string{
			"sender_account_id": wire.SenderAccountID,
			"amount":            wire.Amount.StringFixed(2),
		},
		CreatedAt: now,
	})

	logger.Info("Wire approved", slog.String("wire_id", wire.WireID), slog.String("approver_id", approverID))
	return wire, nil
}

// RejectWire finalizes a pending wire with a refund. The sender gets back
// exactly amount plus fee in the same atomic unit as the status change.
func (s *wireService) RejectWire(ctx context.Context, wireID, approverID, reason string) (*domain.WireTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	wire, err := s.wireRepo.FindWireByID(ctx, wireID)
	if err != nil {
		return nil, err
	}
	if wire.IsFinal() {
		return nil, fmt.Errorf("%w: wire %s is %s", apperrors.ErrAlreadyFinalized, wire.WireID, wire.ComplianceStatus)
	}

	now := s.clock.Now()
	refund := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     wire.SenderAccountID,
		Type:          domain.Wire,
		Amount:        wire.Total(),
		Status:        domain.TxnCompleted,
		Reference:     "refund-" + wire.WireID,
		Metadata:      map[string]string{"wire_id": wire.WireID, "reason": reason},
		CreatedAt:     now,
		ProcessedAt:   &now,
	}

	wire, err = s.wireRepo.RejectWire(ctx, wireID, approverID, reason, refund, now)
	if err != nil {
		logger.Error("Failed to reject wire", slog.String("wire_id", wireID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEntry{
		ActorID:    approverID,
		Action:     "WIRE_REJECTED",
		EntityType: "wire_transfer",
		EntityID:   wire.WireID,
		Severity:   domain.SeverityWarning,
		Details: map[string]string{
			"sender_account_id": wire.SenderAccountID,
			"refund":            wire.Total().StringFixed(2),
			"reason":            reason,
		},
		CreatedAt: now,
	})

	logger.Info("Wire rejected and refunded", slog.String("wire_id", wire.WireID), slog.String("approver_id", approverID))
	return wire, nil
}

func (s *wireService) GetWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error) {
	return s.wireRepo.FindWireByID(ctx, wireID)
}
