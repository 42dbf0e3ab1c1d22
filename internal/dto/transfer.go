package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// DepositRequest credits an account.
type DepositRequest struct {
	AccountID string            `json:"accountID" binding:"required"`
	Amount    decimal.Decimal   `json:"amount" binding:"required"`
	Reference string            `json:"reference"` // caller-supplied idempotency key; generated when empty
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// WithdrawRequest debits an account.
type WithdrawRequest struct {
	AccountID string            `json:"accountID" binding:"required"`
	Amount    decimal.Decimal   `json:"amount" binding:"required"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// TransferRequest moves money between two internal accounts.
type TransferRequest struct {
	SourceAccountID      string            `json:"sourceAccountID" binding:"required"`
	DestinationAccountID string            `json:"destinationAccountID" binding:"required"`
	Amount               decimal.Decimal   `json:"amount" binding:"required"`
	Reference            string            `json:"reference"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// TransactionResponse is the caller-facing view of a transaction.
type TransactionResponse struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Type          string            `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	CurrencyCode  string            `json:"currencyCode"`
	Status        string            `json:"status"`
	Reference     string            `json:"reference"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ProcessedAt   *time.Time        `json:"processedAt,omitempty"`
}

// ToTransactionResponse maps a domain transaction to its response form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		Status:        string(t.Status),
		Reference:     t.Reference,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
		ProcessedAt:   t.ProcessedAt,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// TransferResponse carries both legs of a committed transfer.
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// ListTransactionsParams holds pagination parameters for transaction listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
