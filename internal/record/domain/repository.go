package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the read/write surface over the record store.
type Repository interface {
	ListInvoices(ctx context.Context, db *gorm.DB) ([]Invoice, error)
	FindInvoiceByNumber(ctx context.Context, db *gorm.DB, number string) (*Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status InvoiceStatus, paidAt *time.Time) error

	ListReceivablePayments(ctx context.Context, db *gorm.DB, status string) ([]ReceivablePayment, error)
	FindReceivablePayment(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ReceivablePayment, error)
	MarkReceivablePaymentPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) error

	ListPaidReports(ctx context.Context, db *gorm.DB) ([]ServiceReport, error)
	ListPaidInvoices(ctx context.Context, db *gorm.DB) ([]Invoice, error)
}
