package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/record/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListInvoices(ctx context.Context, db *gorm.DB) ([]domain.Invoice, error) {
	var items []domain.Invoice
	err := db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindInvoiceByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Invoice, error) {
	var item domain.Invoice
	err := db.WithContext(ctx).
		Where("number = ?", number).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) UpdateInvoiceStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.InvoiceStatus, paidAt *time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"paid_at":    paidAt,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repo) ListReceivablePayments(ctx context.Context, db *gorm.DB, status string) ([]domain.ReceivablePayment, error) {
	var items []domain.ReceivablePayment
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindReceivablePayment(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ReceivablePayment, error) {
	var item domain.ReceivablePayment
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) MarkReceivablePaymentPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.ReceivablePayment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     domain.PaymentStatusPaid,
			"paid_at":    paidAt,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repo) ListPaidReports(ctx context.Context, db *gorm.DB) ([]domain.ServiceReport, error) {
	var items []domain.ServiceReport
	err := db.WithContext(ctx).
		Where("paid = ?", true).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPaidInvoices(ctx context.Context, db *gorm.DB) ([]domain.Invoice, error) {
	var items []domain.Invoice
	err := db.WithContext(ctx).
		Where("status = ?", domain.InvoiceStatusPaid).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
