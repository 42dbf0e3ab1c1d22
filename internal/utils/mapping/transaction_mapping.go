package mapping

import (
	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/models"
)

// ToModelTransaction converts a domain transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		Status:        string(d.Status),
		Reference:     d.Reference,
		Metadata:      d.Metadata,
		CreatedAt:     d.CreatedAt,
		ProcessedAt:   d.ProcessedAt,
	}
}

// ToDomainTransaction converts a DB transaction row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		Status:        domain.TransactionStatus(m.Status),
		Reference:     m.Reference,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		ProcessedAt:   m.ProcessedAt,
	}
}

// ToDomainTransactionSlice converts a slice of DB rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
