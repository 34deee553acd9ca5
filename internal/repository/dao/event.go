package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventExists   = errors.New("event with this name or slug already exists")
	ErrEventNotFound = errors.New("event not found")
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:idx_events_name"`
	Slug        string    `gorm:"not null;uniqueIndex:idx_events_slug"`
	Description string    `gorm:"not null"`
	Date        string    `gorm:"not null"`
	MinTeamSize int       `gorm:"not null;check:chk_events_min_team_size,min_team_size >= 1"`
	MaxTeamSize int       `gorm:"not null;check:chk_events_max_team_size,max_team_size >= 1"`
	IsActive    bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	return nil
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok &&
			(constraint == "idx_events_name" || constraint == "idx_events_slug") {
			return Event{}, ErrEventExists
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindAll returns every event, newest first.
func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindActive(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByName(ctx context.Context, name string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}
