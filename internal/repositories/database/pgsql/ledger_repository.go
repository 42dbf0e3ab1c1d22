package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	"github.com/openretailbank/corebank/internal/models"
	"github.com/openretailbank/corebank/internal/utils/mapping"
	"github.com/openretailbank/corebank/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxLedgerRepository creates a new repository for transaction data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, account_id, txn_type, amount, currency_code, status, reference, metadata, created_at, processed_at`

// debitSumFilter selects the COMPLETED customer-spend debits that count
// toward rolling-window limits. Wire holds and refunds are excluded.
const debitSumFilter = `status = 'COMPLETED' AND txn_type IN ('WITHDRAWAL', 'TRANSFER') AND amount < 0`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.Status,
		&m.Reference,
		&m.Metadata,
		&m.CreatedAt,
		&m.ProcessedAt,
	)
	return m, err
}

// CommitTransactions persists the transaction rows, applies the balance deltas
// and re-validates the limit guards, all inside one database transaction with
// the touched account rows locked. Either everything commits or nothing does.
func (r *PgxLedgerRepository) CommitTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, guards []domain.LimitGuard) error {
	if len(txns) == 0 {
		return fmt.Errorf("%w: no transactions to commit", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := txns[0].CreatedAt

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	// Re-check state under the lock: concurrent commits may have changed
	// status or balance since the service performed its fast pass.
	for accID, delta := range balanceChanges {
		if err := validateLockedDelta(accID, lockedAccounts[accID], delta); err != nil {
			return err
		}
	}

	for _, g := range guards {
		if err := r.checkGuardInTx(ctx, tx, g); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}
	for _, txn := range txns {
		modelTxn := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
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
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate reference", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute transaction insert batch", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// validateLockedDelta rejects a balance delta the freshly locked account row
// cannot absorb. The account state read here cannot change until the
// transaction ends, so a concurrent debit can no longer invalidate it.
func validateLockedDelta(accountID string, acc domain.Account, delta decimal.Decimal) error {
	if !acc.IsActive() {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, accountID, acc.Status)
	}
	if delta.IsNegative() && acc.Balance.Add(delta).IsNegative() {
		return fmt.Errorf("%w: account %s balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, accountID, acc.Balance.StringFixed(2), delta.Abs().StringFixed(2))
	}
	return nil
}

// checkGuardTotal compares a freshly re-summed window total plus the candidate
// debit against the guard's limit. Exceeding strictly rejects; landing exactly
// on the limit passes.
func checkGuardTotal(g domain.LimitGuard, spent decimal.Decimal) error {
	if spent.Add(g.Candidate).GreaterThan(g.Limit) {
		return fmt.Errorf("%w: account %s would spend %s of %s %s limit",
			apperrors.ErrLimitExceeded, g.AccountID, spent.Add(g.Candidate).StringFixed(2), g.Limit.StringFixed(2), g.Window)
	}
	return nil
}

// checkGuardInTx re-runs a rolling-window sum under the account row lock and
// rejects the commit when the candidate debit would push it past the limit.
func (r *PgxLedgerRepository) checkGuardInTx(ctx context.Context, tx pgx.Tx, g domain.LimitGuard) error {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE account_id = $1 AND ` + debitSumFilter + ` AND created_at >= $2;
	`
	var spent decimal.Decimal
	if err := tx.QueryRow(ctx, query, g.AccountID, g.From).Scan(&spent); err != nil {
		return apperrors.NewAppError(500, "failed to re-check limit for account "+g.AccountID, err)
	}
	return checkGuardTotal(g, spent)
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1
		ORDER BY amount ASC
		LIMIT 1;
	`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, reference)
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", reference, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// SumDebits returns the sum of absolute values of COMPLETED customer-spend
// debits for the account in [from, to).
func (r *PgxLedgerRepository) SumDebits(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE account_id = $1 AND ` + debitSumFilter + ` AND created_at >= $2 AND created_at < $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, from, to).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum debits for account "+accountID, err)
	}
	return total, nil
}

// CountDebitsSince counts COMPLETED customer-spend debits created at or after since.
func (r *PgxLedgerRepository) CountDebitsSince(ctx context.Context, accountID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1 AND ` + debitSumFilter + ` AND created_at >= $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID, since).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count debits for account "+accountID, err)
	}
	return count, nil
}

// ListTransactionsByAccountID retrieves a paginated list of transactions for an
// account using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	var rows pgx.Rows
	var err error
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}

		cursorClause := `AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions for account "+accountID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainTransactionSlice(modelTxns), token, nil
}
