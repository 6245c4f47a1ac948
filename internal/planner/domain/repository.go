package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the minimal surface the sync engine drives against the
// planner store.
type Repository interface {
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
	CreateEvent(ctx context.Context, db *gorm.DB, event *Event) error
	DeleteEvent(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindEventsByTitle(ctx context.Context, db *gorm.DB, title string) ([]Event, error)
}
