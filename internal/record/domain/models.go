// Package domain contains persistence models for the financial record store.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// CanTransition reports whether an invoice may move between two statuses.
// Issued→Paid, Issued→Cancelled and Paid→Cancelled are the forward moves;
// Paid→Issued and Issued→Issued re-entry restore a re-issued invoice.
func CanTransition(from, to InvoiceStatus) bool {
	switch from {
	case InvoiceStatusIssued:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled || to == InvoiceStatusIssued
	case InvoiceStatusPaid:
		return to == InvoiceStatusCancelled || to == InvoiceStatusIssued
	default:
		return false
	}
}

// Invoice represents a fiscal document (nota fiscal) tied to a service report.
type Invoice struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	Number    string            `gorm:"type:text;not null;uniqueIndex"`
	Value     decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	IssueDate time.Time         `gorm:"not null"`
	DueDate   time.Time         `gorm:"not null"`
	Status    InvoiceStatus     `gorm:"type:text;not null;default:'ISSUED'"`
	ReportID  *snowflake.ID     `gorm:"index"`
	PaidAt    *time.Time        `gorm:""`
	Method    string            `gorm:"type:text"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Receivable payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// ReceivablePayment is an expected inflow confirmed by a payment workflow.
type ReceivablePayment struct {
	ID            snowflake.ID    `gorm:"primaryKey"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method        string          `gorm:"type:text"`
	Status        string          `gorm:"type:text;not null;default:'pending';index"`
	PaidAt        *time.Time      `gorm:""`
	ClientName    string          `gorm:"type:text"`
	CompanyName   string          `gorm:"type:text"`
	InvoiceNumber *string         `gorm:"type:text;index"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ReceivablePayment) TableName() string { return "receivable_payments" }

// ServiceReport is a completed service order; a paid report is a payment fact.
type ServiceReport struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	Number      string          `gorm:"type:text;not null;uniqueIndex"`
	CompanyName string          `gorm:"type:text"`
	ClientName  string          `gorm:"type:text"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method      string          `gorm:"type:text"`
	Paid        bool            `gorm:"not null;default:false;index"`
	PaidAt      *time.Time      `gorm:""`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ServiceReport) TableName() string { return "service_reports" }

// Expense is an outflow. It lives in the same store but must never surface in
// the payment projection; the normalizer asserts the exclusion.
type Expense struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method      string          `gorm:"type:text"`
	PaidAt      *time.Time      `gorm:""`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Expense) TableName() string { return "expenses" }
