package domain

import (
	"context"
	"errors"
)

// Normalizer adapts the heterogeneous payment sources into PaymentFacts.
type Normalizer interface {
	// ListPaymentFacts merges all sources, most recent PaidAt first. A failing
	// source contributes zero facts; the error is non-nil only when every
	// source failed.
	ListPaymentFacts(ctx context.Context) ([]PaymentFact, error)
}

// Oracle answers whether a projection for a natural key already exists.
type Oracle interface {
	Exists(ctx context.Context, naturalKey string) (bool, error)
}

// Projector performs creates and removals against the planner store.
type Projector interface {
	Create(ctx context.Context, intent ArtifactIntent) (CalendarArtifact, error)
	// Remove deletes every event matching the key and reports how many.
	Remove(ctx context.Context, naturalKey string) (int, error)
}

// Service is the reconciliation entry point exposed to the host application.
type Service interface {
	RunFullSync(ctx context.Context) (*SyncRun, error)
	LastRun() *SyncRun
}

var (
	ErrAllSourcesFailed   = errors.New("all_payment_sources_failed")
	ErrInvoiceNumberEmpty = errors.New("invoice_number_empty")
	ErrIntentNotCreate    = errors.New("intent_is_not_a_create")
)
