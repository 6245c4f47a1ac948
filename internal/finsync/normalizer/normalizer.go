// Package normalizer adapts the three payment sources into the canonical
// PaymentFact shape. Expenses are outflows and must never enter this
// projection; nothing here reads the expenses table, and a regression test
// pins that invariant.
package normalizer

import (
	"context"
	"sort"

	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo recorddomain.Repository
}

type Normalizer struct {
	db   *gorm.DB
	log  *zap.Logger
	repo recorddomain.Repository
}

func New(p Params) *Normalizer {
	return &Normalizer{
		db:   p.DB,
		log:  p.Log.Named("finsync.normalizer"),
		repo: p.Repo,
	}
}

// ListPaymentFacts merges confirmed receivables, paid reports and paid
// invoices, most recent first. A failing source is logged and contributes
// zero facts; the call errors only when every source failed.
func (n *Normalizer) ListPaymentFacts(ctx context.Context) ([]domain.PaymentFact, error) {
	facts := make([]domain.PaymentFact, 0, 32)
	failures := 0

	payments, err := n.repo.ListReceivablePayments(ctx, n.db, recorddomain.PaymentStatusPaid)
	if err != nil {
		failures++
		n.log.Warn("receivable payments unavailable", zap.Error(err))
	} else {
		for _, p := range payments {
			facts = append(facts, FactFromReceivable(p))
		}
	}

	reports, err := n.repo.ListPaidReports(ctx, n.db)
	if err != nil {
		failures++
		n.log.Warn("paid reports unavailable", zap.Error(err))
	} else {
		for _, r := range reports {
			facts = append(facts, FactFromReport(r))
		}
	}

	invoices, err := n.repo.ListPaidInvoices(ctx, n.db)
	if err != nil {
		failures++
		n.log.Warn("paid invoices unavailable", zap.Error(err))
	} else {
		for _, inv := range invoices {
			facts = append(facts, FactFromPaidInvoice(inv))
		}
	}

	if failures == 3 {
		return nil, domain.ErrAllSourcesFailed
	}

	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].PaidAt.After(facts[j].PaidAt)
	})
	return facts, nil
}

// FactFromReceivable maps one confirmed receivable. The listener reuses it
// for the incremental path.
func FactFromReceivable(p recorddomain.ReceivablePayment) domain.PaymentFact {
	fact := domain.PaymentFact{
		ID:          "receivable:" + p.ID.String(),
		Source:      domain.FactSourceReceivable,
		Amount:      p.Amount,
		Method:      p.Method,
		Description: p.Description,
		ClientName:  p.ClientName,
		CompanyName: p.CompanyName,
	}
	if p.PaidAt != nil {
		fact.PaidAt = *p.PaidAt
	}
	if p.InvoiceNumber != nil {
		fact.InvoiceNumber = *p.InvoiceNumber
	}
	return fact
}

func FactFromReport(r recorddomain.ServiceReport) domain.PaymentFact {
	fact := domain.PaymentFact{
		ID:          "report:" + r.ID.String(),
		Source:      domain.FactSourcePaidReport,
		Amount:      r.Total,
		Method:      r.Method,
		Description: "Relatório " + r.Number,
		ClientName:  r.ClientName,
		CompanyName: r.CompanyName,
	}
	if r.PaidAt != nil {
		fact.PaidAt = *r.PaidAt
	}
	return fact
}

func FactFromPaidInvoice(inv recorddomain.Invoice) domain.PaymentFact {
	fact := domain.PaymentFact{
		ID:            "invoice:" + inv.ID.String(),
		Source:        domain.FactSourcePaidInvoice,
		Amount:        inv.Value,
		Method:        inv.Method,
		Description:   "NF " + inv.Number,
		InvoiceNumber: inv.Number,
	}
	if inv.PaidAt != nil {
		fact.PaidAt = *inv.PaidAt
	}
	return fact
}
