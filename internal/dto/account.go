package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// UpdateAccountStatusRequest changes the lifecycle state of an account.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE SUSPENDED CLOSED"`
}

// AccountResponse is the caller-facing view of an account.
type AccountResponse struct {
	AccountID         string           `json:"accountID"`
	OwnerID           string           `json:"ownerID"`
	Balance           decimal.Decimal  `json:"balance"`
	CurrencyCode      string           `json:"currencyCode"`
	Status            string           `json:"status"`
	AccountType       string           `json:"accountType"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"`
	LastTransactionAt *time.Time       `json:"lastTransactionAt,omitempty"`
}

// ToAccountResponse maps a domain account to its response form.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         a.AccountID,
		OwnerID:           a.OwnerID,
		Balance:           a.Balance,
		CurrencyCode:      a.CurrencyCode,
		Status:            string(a.Status),
		AccountType:       string(a.AccountType),
		DailyLimit:        a.DailyLimit,
		MonthlyLimit:      a.MonthlyLimit,
		LastTransactionAt: a.LastTransactionAt,
	}
}
