package mapping

import (
	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/models"
)

// ToDomainAccount converts a DB account row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		OwnerID:           m.OwnerID,
		Balance:           m.Balance,
		CurrencyCode:      m.CurrencyCode,
		Status:            domain.AccountStatus(m.Status),
		AccountType:       domain.AccountType(m.AccountType),
		DailyLimit:        m.DailyLimit,
		MonthlyLimit:      m.MonthlyLimit,
		LastTransactionAt: m.LastTransactionAt,
		AuditFields:       toDomainAuditFields(m.AuditFields),
	}
}

func toDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func toModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}
