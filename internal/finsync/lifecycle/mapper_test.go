package lifecycle

import (
	"testing"
	"time"

	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapper() *Mapper {
	return NewMapper(config.NewStaticSyncHolder(config.DefaultSyncConfig()))
}

func testInvoice(status recorddomain.InvoiceStatus) recorddomain.Invoice {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return recorddomain.Invoice{
		Number:    "NF-1001",
		Value:     decimal.NewFromFloat(1500),
		IssueDate: due.AddDate(0, -1, 0),
		DueDate:   due,
		Status:    status,
	}
}

func TestIssuedRequiresDueArtifact(t *testing.T) {
	m := newTestMapper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	intents, err := m.DescribeRequiredArtifacts(testInvoice(recorddomain.InvoiceStatusIssued), nil, now)
	require.NoError(t, err)
	require.Len(t, intents, 1)

	due := intents[0]
	assert.Equal(t, domain.OpCreate, due.Op)
	assert.Equal(t, domain.KindDue, due.Kind)
	assert.Equal(t, "💰 Vencimento NF: NF-1001", due.NaturalKey)
	assert.Equal(t, testInvoice(recorddomain.InvoiceStatusIssued).DueDate, due.StartDate)
	assert.True(t, due.AllDay)
	assert.Equal(t, 1440, due.ReminderMinutes)
	assert.Equal(t, "Financeiro", due.CategoryName)
}

func TestPaidReconciliationViewRequiresBothArtifacts(t *testing.T) {
	m := newTestMapper()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

	inv := testInvoice(recorddomain.InvoiceStatusPaid)
	inv.PaidAt = &paidAt

	intents, err := m.DescribeRequiredArtifacts(inv, nil, now)
	require.NoError(t, err)
	require.Len(t, intents, 2)

	assert.Equal(t, domain.KindDue, intents[0].Kind)
	assert.Equal(t, domain.KindPaid, intents[1].Kind)
	assert.Equal(t, "✅ Pagamento NF: NF-1001", intents[1].NaturalKey)
	assert.Equal(t, paidAt, intents[1].StartDate)
	assert.Equal(t, "Pagamentos", intents[1].CategoryName)
}

func TestIssuedToPaidTransitionKeepsDueArtifact(t *testing.T) {
	m := newTestMapper()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	prev := recorddomain.InvoiceStatusIssued
	intents, err := m.DescribeRequiredArtifacts(testInvoice(recorddomain.InvoiceStatusPaid), &prev, now)
	require.NoError(t, err)

	// Only the paid artifact is demanded; no removal of the due artifact.
	require.Len(t, intents, 1)
	assert.Equal(t, domain.KindPaid, intents[0].Kind)
	assert.Equal(t, domain.OpCreate, intents[0].Op)
	assert.Equal(t, now, intents[0].StartDate)
}

func TestPaidToIssuedReversalLeavesStalePaidArtifact(t *testing.T) {
	m := newTestMapper()
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	prev := recorddomain.InvoiceStatusPaid
	intents, err := m.DescribeRequiredArtifacts(testInvoice(recorddomain.InvoiceStatusIssued), &prev, now)
	require.NoError(t, err)

	require.Len(t, intents, 1)
	assert.Equal(t, domain.KindDue, intents[0].Kind)
	for _, intent := range intents {
		assert.NotEqual(t, domain.OpRemove, intent.Op)
	}
}

func TestCancelledRemovesBothArtifacts(t *testing.T) {
	m := newTestMapper()
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	for _, prev := range []*recorddomain.InvoiceStatus{nil, statusPtr(recorddomain.InvoiceStatusIssued), statusPtr(recorddomain.InvoiceStatusPaid)} {
		intents, err := m.DescribeRequiredArtifacts(testInvoice(recorddomain.InvoiceStatusCancelled), prev, now)
		require.NoError(t, err)
		require.Len(t, intents, 2)
		assert.Equal(t, domain.OpRemove, intents[0].Op)
		assert.Equal(t, domain.OpRemove, intents[1].Op)
		assert.Equal(t, "💰 Vencimento NF: NF-1001", intents[0].NaturalKey)
		assert.Equal(t, "✅ Pagamento NF: NF-1001", intents[1].NaturalKey)
	}
}

func TestEmptyInvoiceNumberIsMappingError(t *testing.T) {
	m := newTestMapper()
	inv := testInvoice(recorddomain.InvoiceStatusIssued)
	inv.Number = "   "

	_, err := m.DescribeRequiredArtifacts(inv, nil, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrInvoiceNumberEmpty)
}

func TestDescribeFactArtifact(t *testing.T) {
	m := newTestMapper()
	paidAt := time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC)

	fact := domain.PaymentFact{
		ID:          "receivable:1",
		Source:      domain.FactSourceReceivable,
		Amount:      decimal.NewFromFloat(320.5),
		PaidAt:      paidAt,
		Method:      "pix",
		Description: "Locação bomba P-03",
		ClientName:  "João",
		CompanyName: "Construtora Alfa",
	}

	intent := m.DescribeFactArtifact(fact)
	assert.Equal(t, domain.OpCreate, intent.Op)
	assert.Equal(t, domain.KindPayment, intent.Kind)
	assert.Equal(t, "⚡ Pagamento: R$ 320,50", intent.NaturalKey)
	assert.Equal(t, paidAt, intent.StartDate)
	assert.False(t, intent.AllDay)
	assert.Contains(t, intent.Description, "Locação bomba P-03")
	assert.Contains(t, intent.Description, "Cliente: João")
	assert.Contains(t, intent.Description, "Empresa: Construtora Alfa")
}

func statusPtr(s recorddomain.InvoiceStatus) *recorddomain.InvoiceStatus { return &s }
