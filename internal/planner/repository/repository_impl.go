package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/planner/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CreateEvent(ctx context.Context, db *gorm.DB, event *domain.Event) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) DeleteEvent(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Event{}).Error
}

func (r *repo) FindEventsByTitle(ctx context.Context, db *gorm.DB, title string) ([]domain.Event, error) {
	var items []domain.Event
	err := db.WithContext(ctx).
		Where("title = ?", title).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
