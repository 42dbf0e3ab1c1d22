package mapping

import (
	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/models"
)

// ToModelWire converts a domain wire transfer for DB storage.
func ToModelWire(d domain.WireTransfer) models.WireTransfer {
	m := models.WireTransfer{
		WireID:           d.WireID,
		TransactionID:    d.TransactionID,
		SenderAccountID:  d.SenderAccountID,
		RecipientName:    d.RecipientName,
		RecipientBank:    d.RecipientBank,
		RecipientAccount: d.RecipientAccount,
		RecipientSWIFT:   d.RecipientSWIFT,
		Amount:           d.Amount,
		Fee:              d.Fee,
		ComplianceStatus: string(d.ComplianceStatus),
		DecidedAt:        d.DecidedAt,
		AuditFields:      toModelAuditFields(d.AuditFields),
	}
	if d.ApproverID != "" {
		m.ApproverID = &d.ApproverID
	}
	if d.RejectionReason != "" {
		m.RejectionReason = &d.RejectionReason
	}
	return m
}

// ToDomainWire converts a DB wire row to the domain representation.
func ToDomainWire(m models.WireTransfer) domain.WireTransfer {
	d := domain.WireTransfer{
		WireID:           m.WireID,
		TransactionID:    m.TransactionID,
		SenderAccountID:  m.SenderAccountID,
		RecipientName:    m.RecipientName,
		RecipientBank:    m.RecipientBank,
		RecipientAccount: m.RecipientAccount,
		RecipientSWIFT:   m.RecipientSWIFT,
		Amount:           m.Amount,
		Fee:              m.Fee,
		ComplianceStatus: domain.ComplianceStatus(m.ComplianceStatus),
		DecidedAt:        m.DecidedAt,
		AuditFields:      toDomainAuditFields(m.AuditFields),
	}
	if m.ApproverID != nil {
		d.ApproverID = *m.ApproverID
	}
	if m.RejectionReason != nil {
		d.RejectionReason = *m.RejectionReason
	}
	return d
}
