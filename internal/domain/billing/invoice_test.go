package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), uuid.New(), "EUR")
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := newTestInvoice(t)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Empty(t, inv.Number)

	_, err := NewInvoice(uuid.New(), uuid.Nil, "EUR")
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), uuid.New(), "EURO")
	assert.Error(t, err)
}

func TestInvoiceAddLineAndTotal(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.AddLine("Consulting", decimal.NewFromInt(10), decimal.NewFromFloat(150.50))
	require.NoError(t, err)
	err = inv.AddLine("Travel", decimal.NewFromInt(1), decimal.NewFromFloat(89.90))
	require.NoError(t, err)

	assert.Len(t, inv.Lines, 2)
	assert.True(t, inv.Total().Equal(decimal.NewFromFloat(1594.90)), "got %s", inv.Total())
}

func TestInvoiceAddLineValidation(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.AddLine("", decimal.NewFromInt(1), decimal.NewFromInt(10))
	assert.Error(t, err)

	err = inv.AddLine("Consulting", decimal.Zero, decimal.NewFromInt(10))
	assert.Error(t, err)

	err = inv.AddLine("Consulting", decimal.NewFromInt(1), decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestInvoiceIssue(t *testing.T) {
	inv := newTestInvoice(t)

	// No lines yet.
	err := inv.Issue("ACM_00001", nil)
	assert.Error(t, err)

	require.NoError(t, inv.AddLine("Consulting", decimal.NewFromInt(1), decimal.NewFromInt(100)))

	err = inv.Issue("ACM_00001", nil)
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusIssued, inv.Status)
	assert.Equal(t, "ACM_00001", inv.Number)
	assert.NotNil(t, inv.IssuedAt)

	// Issuing twice is rejected.
	err = inv.Issue("ACM_00002", nil)
	assert.Error(t, err)
	assert.Equal(t, "ACM_00001", inv.Number)

	// Lines are frozen once issued.
	err = inv.AddLine("Extra", decimal.NewFromInt(1), decimal.NewFromInt(5))
	assert.Error(t, err)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.AddLine("Consulting", decimal.NewFromInt(1), decimal.NewFromInt(100)))
	require.NoError(t, inv.Issue("ACM_00001", nil))

	err := inv.MarkPaid()
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	// Paid invoices cannot be cancelled.
	err = inv.Cancel()
	assert.Error(t, err)

	draft := newTestInvoice(t)
	require.NoError(t, draft.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, draft.Status)
	assert.Error(t, draft.Cancel())

	// Only issued invoices can be paid.
	assert.Error(t, newTestInvoice(t).MarkPaid())
}

func TestInvoiceRemoveLine(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.AddLine("Consulting", decimal.NewFromInt(1), decimal.NewFromInt(100)))
	lineID := inv.Lines[0].ID

	require.NoError(t, inv.RemoveLine(lineID))
	assert.Empty(t, inv.Lines)

	err := inv.RemoveLine(uuid.New())
	assert.Error(t, err)
}
