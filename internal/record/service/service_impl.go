package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/clock"
	"github.com/felixmixwr/gestao-sync/internal/record/domain"
	"github.com/felixmixwr/gestao-sync/internal/record/feed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Feed  *feed.Hub
	Clock clock.Clock
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	feed  *feed.Hub
	clock clock.Clock
}

func NewService(p Params) domain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("record.service"),
		repo:  p.Repo,
		feed:  p.Feed,
		clock: p.Clock,
	}
}

func (s *service) ConfirmReceivablePayment(ctx context.Context, id snowflake.ID) (*domain.ReceivablePayment, error) {
	payment, err := s.repo.FindReceivablePayment(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find receivable payment: %w", err)
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if payment.Status == domain.PaymentStatusPaid {
		return nil, domain.ErrPaymentAlreadyPaid
	}

	now := s.clock.Now()
	if err := s.repo.MarkReceivablePaymentPaid(ctx, s.db, id, now); err != nil {
		return nil, fmt.Errorf("mark payment paid: %w", err)
	}

	payment.Status = domain.PaymentStatusPaid
	payment.PaidAt = &now

	s.feed.Publish(feed.PaymentChange{
		PaymentID: payment.ID,
		Status:    domain.PaymentStatusPaid,
		ChangedAt: now,
	})
	s.log.Info("receivable payment confirmed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return payment, nil
}

func (s *service) TransitionInvoice(ctx context.Context, number string, to domain.InvoiceStatus) (*domain.Invoice, domain.InvoiceStatus, error) {
	invoice, err := s.repo.FindInvoiceByNumber(ctx, s.db, number)
	if err != nil {
		return nil, "", fmt.Errorf("find invoice: %w", err)
	}
	if invoice == nil {
		return nil, "", domain.ErrInvoiceNotFound
	}

	from := invoice.Status
	if !domain.CanTransition(from, to) {
		return nil, from, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, from, to)
	}

	var paidAt *time.Time
	switch to {
	case domain.InvoiceStatusPaid:
		now := s.clock.Now()
		paidAt = &now
	case domain.InvoiceStatusIssued:
		// re-issue clears the payment stamp
		paidAt = nil
	default:
		paidAt = invoice.PaidAt
	}

	if err := s.repo.UpdateInvoiceStatus(ctx, s.db, invoice.ID, to, paidAt); err != nil {
		return nil, from, fmt.Errorf("update invoice status: %w", err)
	}

	invoice.Status = to
	invoice.PaidAt = paidAt
	s.log.Info("invoice status transitioned",
		zap.String("number", invoice.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return invoice, from, nil
}
