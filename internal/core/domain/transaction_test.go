package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openretailbank/corebank/internal/core/domain"
)

func TestTransactionIsDebit(t *testing.T) {
	debit := domain.Transaction{Amount: decimal.RequireFromString("-25.00")}
	credit := domain.Transaction{Amount: decimal.RequireFromString("25.00")}
	zero := domain.Transaction{Amount: decimal.Zero}

	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
	assert.False(t, zero.IsDebit())
}

func TestLimitWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 59, 999999999, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), domain.WindowDay.Start(now))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), domain.WindowMonth.Start(now))
}

func TestLimitWindowStartOnFirstOfMonth(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now, domain.WindowDay.Start(now))
	assert.Equal(t, now, domain.WindowMonth.Start(now))
}

func TestWireTransferTotal(t *testing.T) {
	wire := domain.WireTransfer{
		Amount: decimal.RequireFromString("500.00"),
		Fee:    decimal.RequireFromString("25.00"),
	}

	assert.True(t, wire.Total().Equal(decimal.RequireFromString("525.00")))
}

func TestWireTransferIsFinal(t *testing.T) {
	cases := map[domain.ComplianceStatus]bool{
		domain.CompliancePending:   false,
		domain.ComplianceApproved:  true,
		domain.ComplianceRejected:  true,
		domain.ComplianceCancelled: true,
	}
	for status, want := range cases {
		wire := domain.WireTransfer{ComplianceStatus: status}
		assert.Equal(t, want, wire.IsFinal(), "status %s", status)
	}
}
