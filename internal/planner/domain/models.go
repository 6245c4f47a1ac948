// Package domain contains persistence models for the planner calendar store.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category is a planner event category, looked up by human-readable name.
type Category struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;uniqueIndex"`
	Color     string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "planner_categories" }

// Event is a calendar entry. The title doubles as the projection's natural
// dedup key, so it is indexed for exact-match lookups.
type Event struct {
	ID              snowflake.ID  `gorm:"primaryKey"`
	Title           string        `gorm:"type:text;not null;index"`
	Description     string        `gorm:"type:text"`
	StartDate       time.Time     `gorm:"not null"`
	AllDay          bool          `gorm:"not null;default:false"`
	CategoryID      *snowflake.ID `gorm:"index"`
	Location        string        `gorm:"type:text"`
	ReminderMinutes int           `gorm:"not null;default:0"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "planner_events" }
