package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	"github.com/openretailbank/corebank/internal/models"
	"github.com/openretailbank/corebank/internal/utils/mapping"
)

type PgxWireRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxWireRepository creates a new repository for wire transfer data.
func newPgxWireRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) *PgxWireRepository {
	return &PgxWireRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.WireRepository = (*PgxWireRepository)(nil)

const wireColumns = `wire_id, transaction_id, sender_account_id, recipient_name, recipient_bank, recipient_account, recipient_swift, amount, fee, compliance_status, approver_id, decided_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanWireRow(row pgx.Row) (models.WireTransfer, error) {
	var m models.WireTransfer
	err := row.Scan(
		&m.WireID,
		&m.TransactionID,
		&m.SenderAccountID,
		&m.RecipientName,
		&m.RecipientBank,
		&m.RecipientAccount,
		&m.RecipientSWIFT,
		&m.Amount,
		&m.Fee,
		&m.ComplianceStatus,
		&m.ApproverID,
		&m.DecidedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateWire inserts the PENDING wire record and its linked PENDING debit
// transaction, and debits the sender by amount+fee, atomically. The sender row
// is locked; it must be ACTIVE and cover the full debit.
func (r *PgxWireRepository) CreateWire(ctx context.Context, wire domain.WireTransfer, debit domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{wire.SenderAccountID})
	if err != nil {
		return err
	}
	sender := locked[wire.SenderAccountID]
	if !sender.IsActive() {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, sender.AccountID, sender.Status)
	}
	// debit.Amount is the negative of amount+fee.
	if sender.Balance.Add(debit.Amount).IsNegative() {
		return fmt.Errorf("%w: account %s balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, sender.AccountID, sender.Balance.StringFixed(2), debit.Amount.Abs().StringFixed(2))
	}

	modelTxn := mapping.ToModelTransaction(debit)
	if _, err := tx.Exec(ctx, insertTransactionQuery,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.CurrencyCode,
		modelTxn.Status,
		modelTxn.Reference,
		modelTxn.Metadata,
		modelTxn.CreatedAt,
		modelTxn.ProcessedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate reference %s", apperrors.ErrDuplicate, debit.Reference)
		}
		return apperrors.NewAppError(500, "failed to insert wire debit transaction "+debit.TransactionID, err)
	}

	modelWire := mapping.ToModelWire(wire)
	wireQuery := `
		INSERT INTO wire_transfers (` + wireColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	if _, err := tx.Exec(ctx, wireQuery,
		modelWire.WireID,
		modelWire.TransactionID,
		modelWire.SenderAccountID,
		modelWire.RecipientName,
		modelWire.RecipientBank,
		modelWire.RecipientAccount,
		modelWire.RecipientSWIFT,
		modelWire.Amount,
		modelWire.Fee,
		modelWire.ComplianceStatus,
		modelWire.ApproverID,
		modelWire.DecidedAt,
		modelWire.RejectionReason,
		modelWire.CreatedAt,
		modelWire.CreatedBy,
		modelWire.LastUpdatedAt,
		modelWire.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert wire "+wire.WireID, err)
	}

	changes := map[string]decimal.Decimal{wire.SenderAccountID: debit.Amount}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, wire.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to debit sender for wire "+wire.WireID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxWireRepository) FindWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error) {
	query := `
		SELECT ` + wireColumns + `
		FROM wire_transfers
		WHERE wire_id = $1;
	`
	m, err := scanWireRow(r.Pool.QueryRow(ctx, query, wireID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wire %s", apperrors.ErrNotFound, wireID)
		}
		return nil, fmt.Errorf("failed to find wire by ID %s: %w", wireID, err)
	}
	w := mapping.ToDomainWire(m)
	return &w, nil
}

// findWireInTx reads a wire row inside an open transaction.
func (r *PgxWireRepository) findWireInTx(ctx context.Context, tx pgx.Tx, wireID string) (*domain.WireTransfer, error) {
	query := `
		SELECT ` + wireColumns + `
		FROM wire_transfers
		WHERE wire_id = $1;
	`
	m, err := scanWireRow(tx.QueryRow(ctx, query, wireID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wire %s", apperrors.ErrNotFound, wireID)
		}
		return nil, fmt.Errorf("failed to find wire by ID %s: %w", wireID, err)
	}
	w := mapping.ToDomainWire(m)
	return &w, nil
}

// classifyNoTransition distinguishes a missing wire from one already decided.
// Called when the conditional PENDING-only update touched zero rows.
func (r *PgxWireRepository) classifyNoTransition(ctx context.Context, tx pgx.Tx, wireID string) error {
	wire, err := r.findWireInTx(ctx, tx, wireID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: wire %s is %s", apperrors.ErrAlreadyFinalized, wireID, wire.ComplianceStatus)
}

// ApproveWire transitions PENDING->APPROVED and marks the linked transaction
// COMPLETED. Funds were already held at creation, so no balance changes.
func (r *PgxWireRepository) ApproveWire(ctx context.Context, wireID, approverID string, now time.Time) (*domain.WireTransfer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE wire_transfers
		SET compliance_status = $2, approver_id = $3, decided_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE wire_id = $1 AND compliance_status = $5;
	`
	ct, err := tx.Exec(ctx, updateQuery, wireID, string(domain.ComplianceApproved), approverID, now, string(domain.CompliancePending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to approve wire "+wireID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, r.classifyNoTransition(ctx, tx, wireID)
	}

	txnQuery := `
		UPDATE transactions
		SET status = $2, processed_at = $3
		WHERE transaction_id = (SELECT transaction_id FROM wire_transfers WHERE wire_id = $1);
	`
	if _, err := tx.Exec(ctx, txnQuery, wireID, string(domain.TxnCompleted), now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to complete wire transaction for "+wireID, err)
	}

	wire, err := r.findWireInTx(ctx, tx, wireID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return wire, nil
}

// RejectWire transitions PENDING->REJECTED, marks the linked transaction FAILED
// and credits the refund back to the sender, all in one atomic unit. The
// refund applies even when the sender is no longer ACTIVE.
func (r *PgxWireRepository) RejectWire(ctx context.Context, wireID, approverID, reason string, refund domain.Transaction, now time.Time) (*domain.WireTransfer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE wire_transfers
		SET compliance_status = $2, approver_id = $3, decided_at = $4, rejection_reason = $5, last_updated_at = $4, last_updated_by = $3
		WHERE wire_id = $1 AND compliance_status = $6;
	`
	ct, err := tx.Exec(ctx, updateQuery, wireID, string(domain.ComplianceRejected), approverID, now, reason, string(domain.CompliancePending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to reject wire "+wireID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, r.classifyNoTransition(ctx, tx, wireID)
	}

	txnQuery := `
		UPDATE transactions
		SET status = $2, processed_at = $3
		WHERE transaction_id = (SELECT transaction_id FROM wire_transfers WHERE wire_id = $1)
		RETURNING currency_code;
	`
	var currencyCode string
	if err := tx.QueryRow(ctx, txnQuery, wireID, string(domain.TxnFailed), now).Scan(&currencyCode); err != nil {
		return nil, apperrors.NewAppError(500, "failed to fail wire transaction for "+wireID, err)
	}

	// Lock the sender row so the refund credit serializes with concurrent
	// commits. No status or balance preconditions apply to refunds.
	wire, err := r.findWireInTx(ctx, tx, wireID)
	if err != nil {
		return nil, err
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{wire.SenderAccountID}); err != nil {
		return nil, err
	}

	refund.CurrencyCode = currencyCode
	modelRefund := mapping.ToModelTransaction(refund)
	if _, err := tx.Exec(ctx, insertTransactionQuery,
		modelRefund.TransactionID,
		modelRefund.AccountID,
		modelRefund.Type,
		modelRefund.Amount,
		modelRefund.CurrencyCode,
		modelRefund.Status,
		modelRefund.Reference,
		modelRefund.Metadata,
		modelRefund.CreatedAt,
		modelRefund.ProcessedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: refund for wire %s already recorded", apperrors.ErrDuplicate, wireID)
		}
		return nil, apperrors.NewAppError(500, "failed to insert refund transaction for wire "+wireID, err)
	}

	changes := map[string]decimal.Decimal{wire.SenderAccountID: refund.Amount}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to credit refund for wire "+wireID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return wire, nil
}
