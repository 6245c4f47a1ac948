// Package lifecycle derives calendar intent from financial state. It only
// computes what must exist or be gone; the projector and oracle decide
// whether the intent is already satisfied.
package lifecycle

import (
	"strings"
	"time"

	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"github.com/felixmixwr/gestao-sync/internal/finsync/title"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
)

type Mapper struct {
	holder *config.SyncConfigHolder
}

func NewMapper(holder *config.SyncConfigHolder) *Mapper {
	return &Mapper{holder: holder}
}

// DescribeRequiredArtifacts maps an invoice status (and optionally the status
// it transitioned from) onto artifact intents.
//
// With prev == nil the result is the reconciliation view: everything that
// must exist for the current status. With prev set it is the transition
// view: only what the move itself demands. In both views an Issued→Paid move
// keeps the due artifact as history, and a Paid→Issued reversal leaves the
// stale paid artifact in place (current business rule, unconfirmed).
func (m *Mapper) DescribeRequiredArtifacts(inv recorddomain.Invoice, prev *recorddomain.InvoiceStatus, now time.Time) ([]domain.ArtifactIntent, error) {
	number := strings.TrimSpace(inv.Number)
	if number == "" {
		return nil, domain.ErrInvoiceNumberEmpty
	}
	cfg := m.holder.Get()

	switch inv.Status {
	case recorddomain.InvoiceStatusCancelled:
		// Cancellation tears down both artifacts regardless of which existed.
		return []domain.ArtifactIntent{
			{Op: domain.OpRemove, Kind: domain.KindDue, NaturalKey: title.Due(number)},
			{Op: domain.OpRemove, Kind: domain.KindPaid, NaturalKey: title.Paid(number)},
		}, nil

	case recorddomain.InvoiceStatusIssued:
		return []domain.ArtifactIntent{m.dueIntent(inv, number, cfg)}, nil

	case recorddomain.InvoiceStatusPaid:
		paid := m.paidIntent(inv, number, cfg, now)
		if prev == nil {
			// Full reconciliation: the due artifact is history that must
			// also exist.
			return []domain.ArtifactIntent{m.dueIntent(inv, number, cfg), paid}, nil
		}
		if *prev == recorddomain.InvoiceStatusIssued {
			return []domain.ArtifactIntent{paid}, nil
		}
		return nil, nil

	default:
		return nil, nil
	}
}

// DescribeFactArtifact maps a generic payment fact onto its single create
// intent.
func (m *Mapper) DescribeFactArtifact(fact domain.PaymentFact) domain.ArtifactIntent {
	cfg := m.holder.Get()
	return domain.ArtifactIntent{
		Op:           domain.OpCreate,
		Kind:         domain.KindPayment,
		NaturalKey:   title.PaymentFact(fact.Method, fact.Amount),
		Description:  factDescription(fact),
		StartDate:    fact.PaidAt,
		AllDay:       false,
		CategoryName: cfg.PaymentsCategory,
	}
}

func (m *Mapper) dueIntent(inv recorddomain.Invoice, number string, cfg config.SyncConfig) domain.ArtifactIntent {
	return domain.ArtifactIntent{
		Op:              domain.OpCreate,
		Kind:            domain.KindDue,
		NaturalKey:      title.Due(number),
		Description:     "Vencimento da NF " + number + " no valor de " + title.FormatBRL(inv.Value),
		StartDate:       inv.DueDate,
		AllDay:          true,
		CategoryName:    cfg.FinanceCategory,
		ReminderMinutes: cfg.DueReminderMinutes,
	}
}

func (m *Mapper) paidIntent(inv recorddomain.Invoice, number string, cfg config.SyncConfig, now time.Time) domain.ArtifactIntent {
	at := now
	if inv.PaidAt != nil {
		at = *inv.PaidAt
	}
	return domain.ArtifactIntent{
		Op:           domain.OpCreate,
		Kind:         domain.KindPaid,
		NaturalKey:   title.Paid(number),
		Description:  "Pagamento confirmado da NF " + number + " no valor de " + title.FormatBRL(inv.Value),
		StartDate:    at,
		AllDay:       false,
		CategoryName: cfg.PaymentsCategory,
	}
}

func factDescription(fact domain.PaymentFact) string {
	parts := make([]string, 0, 4)
	if desc := strings.TrimSpace(fact.Description); desc != "" {
		parts = append(parts, desc)
	}
	if fact.ClientName != "" {
		parts = append(parts, "Cliente: "+fact.ClientName)
	}
	if fact.CompanyName != "" {
		parts = append(parts, "Empresa: "+fact.CompanyName)
	}
	if fact.InvoiceNumber != "" {
		parts = append(parts, "NF: "+fact.InvoiceNumber)
	}
	return strings.Join(parts, " | ")
}
