package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service applies status transitions to financial records. The surrounding
// application's payment and cancellation workflows call it; the sync engine
// only observes the results.
type Service interface {
	// ConfirmReceivablePayment marks a receivable as paid and emits a change
	// event on the payment feed.
	ConfirmReceivablePayment(ctx context.Context, id snowflake.ID) (*ReceivablePayment, error)

	// TransitionInvoice validates and applies a lifecycle move, returning the
	// updated invoice and the status it moved from.
	TransitionInvoice(ctx context.Context, number string, to InvoiceStatus) (*Invoice, InvoiceStatus, error)
}

var (
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrPaymentNotFound    = errors.New("payment_not_found")
	ErrIllegalTransition  = errors.New("illegal_status_transition")
	ErrPaymentAlreadyPaid = errors.New("payment_already_paid")
)
