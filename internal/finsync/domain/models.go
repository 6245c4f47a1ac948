// Package domain holds the canonical types of the financial calendar
// synchronization engine.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// FactSource identifies which record shape a PaymentFact was normalized from.
type FactSource string

const (
	FactSourceReceivable  FactSource = "receivable_payment"
	FactSourcePaidReport  FactSource = "paid_report"
	FactSourcePaidInvoice FactSource = "paid_invoice"
)

// PaymentFact is the source-agnostic representation of money received. It is
// recomputed on demand and never persisted.
type PaymentFact struct {
	ID            string
	Source        FactSource
	Amount        decimal.Decimal
	PaidAt        time.Time
	Method        string
	Description   string
	ClientName    string
	CompanyName   string
	InvoiceNumber string
}

// ArtifactKind distinguishes the three projection shapes.
type ArtifactKind string

const (
	KindDue     ArtifactKind = "due"     // invoice due date
	KindPaid    ArtifactKind = "paid"    // invoice payment confirmation
	KindPayment ArtifactKind = "payment" // generic payment fact
)

// IntentOp says whether an artifact must exist or must be gone.
type IntentOp string

const (
	OpCreate IntentOp = "create"
	OpRemove IntentOp = "remove"
)

// ArtifactIntent is a computed requirement against the planner store. The
// NaturalKey is the artifact title and the sole dedup identifier.
type ArtifactIntent struct {
	Op              IntentOp
	Kind            ArtifactKind
	NaturalKey      string
	Description     string
	StartDate       time.Time
	AllDay          bool
	CategoryName    string
	Location        string
	ReminderMinutes int
}

// CalendarArtifact is the projection unit written to the planner store.
type CalendarArtifact struct {
	ID              snowflake.ID
	Title           string
	Description     string
	StartDate       time.Time
	AllDay          bool
	CategoryID      *snowflake.ID
	Location        string
	ReminderMinutes int
}

// SyncRun aggregates one reconciliation pass. It is returned to the caller
// and discarded; it is never persisted.
type SyncRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
	Removed    int       `json:"removed"`
	Failed     int       `json:"failed"`
	Lines      []string  `json:"lines"`
}

func NewSyncRun(id string, startedAt time.Time) *SyncRun {
	return &SyncRun{ID: id, StartedAt: startedAt}
}

// Logf appends a human-readable line to the run log.
func (r *SyncRun) Logf(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}
