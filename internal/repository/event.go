package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
)

var (
	ErrEventExists   = dao.ErrEventExists
	ErrEventNotFound = dao.ErrEventNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindActive(ctx context.Context) ([]dao.Event, error)
	FindByName(ctx context.Context, name string) (dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Name:        event.Name,
		Slug:        string(event.Slug),
		Description: event.Description,
		Date:        event.Date,
		MinTeamSize: event.MinTeamSize,
		MaxTeamSize: event.MaxTeamSize,
		IsActive:    event.IsActive,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindActive(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (domain.Event, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID.String(),
		Name:        e.Name,
		Slug:        domain.Slug(e.Slug),
		Description: e.Description,
		Date:        e.Date,
		MinTeamSize: e.MinTeamSize,
		MaxTeamSize: e.MaxTeamSize,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, r.daoToDomain(e))
	}

	return out
}
