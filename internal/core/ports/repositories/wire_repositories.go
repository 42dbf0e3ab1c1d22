package repositories

import (
	"context"
	"time"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// WireRepository persists wire transfers and adjudicates their compliance
// transitions. Every method that moves money runs in a single database
// transaction.
type WireRepository interface {
	// CreateWire inserts the PENDING wire record and its linked PENDING debit
	// transaction, and debits the sender by amount+fee, atomically. The sender
	// row is locked; it must be ACTIVE and cover the debit.
	CreateWire(ctx context.Context, wire domain.WireTransfer, debit domain.Transaction) error

	FindWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error)

	// ApproveWire transitions PENDING->APPROVED and marks the linked
	// transaction COMPLETED. A wire that is already terminal yields
	// apperrors.ErrAlreadyFinalized.
	ApproveWire(ctx context.Context, wireID, approverID string, now time.Time) (*domain.WireTransfer, error)

	// RejectWire transitions PENDING->REJECTED, marks the linked transaction
	// FAILED and credits the refund back to the sender, all in one atomic
	// unit. The refund applies even if the sender is no longer ACTIVE.
	RejectWire(ctx context.Context, wireID, approverID, reason string, refund domain.Transaction, now time.Time) (*domain.WireTransfer, error)
}
