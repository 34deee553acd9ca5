package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/repository"
)

var ErrEventExists = repository.ErrEventExists

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindActive(ctx context.Context) ([]domain.Event, error)
}

type StatsRegistrationRepository interface {
	FindByEventName(ctx context.Context, eventName string) ([]domain.Registration, error)
	FindByEventNames(ctx context.Context, eventNames []string) ([]domain.Registration, error)
	ParticipantsOfMany(ctx context.Context, registrationIDs []string) ([]domain.Participant, error)
}

// AdminService serves the admin dashboard. Every statistic is recomputed
// from the stored registrations on each call.
type AdminService struct {
	events        EventRepository
	registrations StatsRegistrationRepository
}

func NewAdminService(events EventRepository, registrations StatsRegistrationRepository) *AdminService {
	return &AdminService{
		events:        events,
		registrations: registrations,
	}
}

func (s *AdminService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindAll -> %w", err)
	}

	return events, nil
}

func (s *AdminService) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindActive -> %w", err)
	}

	return events, nil
}

// ComputeStats returns one EventStat per active event, in event order.
func (s *AdminService) ComputeStats(ctx context.Context) ([]domain.EventStat, error) {
	events, err := s.events.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindActive -> %w", err)
	}

	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}

	registrations, err := s.registrations.FindByEventNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.FindByEventNames -> %w", err)
	}

	byEvent := make(map[string][]domain.Registration, len(events))
	for _, r := range registrations {
		byEvent[r.EventName] = append(byEvent[r.EventName], r)
	}

	stats := make([]domain.EventStat, 0, len(events))
	for _, e := range events {
		stats = append(stats, domain.Tally(e.Name, byEvent[e.Name]))
	}

	return stats, nil
}

// EventDetail expands every registration of an event with its participants.
// Participants are fetched with one batched query and grouped in memory.
func (s *AdminService) EventDetail(ctx context.Context, eventName string) (domain.EventDetail, error) {
	registrations, err := s.registrations.FindByEventName(ctx, eventName)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.registrations.FindByEventName -> %w", err)
	}

	if len(registrations) > 0 {
		ids := make([]string, 0, len(registrations))
		for _, r := range registrations {
			ids = append(ids, r.ID)
		}

		participants, err := s.registrations.ParticipantsOfMany(ctx, ids)
		if err != nil {
			return domain.EventDetail{}, fmt.Errorf("s.registrations.ParticipantsOfMany -> %w", err)
		}

		groupParticipants(registrations, participants)
	}

	return domain.EventDetail{
		Stats:         domain.Tally(eventName, registrations),
		Registrations: registrations,
	}, nil
}

func groupParticipants(registrations []domain.Registration, participants []domain.Participant) {
	byRegistration := make(map[string][]domain.Participant, len(registrations))
	for _, p := range participants {
		byRegistration[p.RegistrationID] = append(byRegistration[p.RegistrationID], p)
	}

	for i := range registrations {
		registrations[i].Participants = byRegistration[registrations[i].ID]
	}
}

// NewEvent holds the admin's event form. Zero team sizes fall back to the
// defaults.
type NewEvent struct {
	Name        string
	Slug        string
	Description string
	Date        string
	MinTeamSize int
	MaxTeamSize int
}

func (s *AdminService) CreateEvent(ctx context.Context, input NewEvent) (domain.Event, error) {
	slug, err := domain.NewSlug(input.Slug)
	if err != nil {
		return domain.Event{}, &domain.ValidationError{Field: "slug", Message: err.Error()}
	}

	event := domain.Event{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Date:        strings.TrimSpace(input.Date),
		MinTeamSize: input.MinTeamSize,
		MaxTeamSize: input.MaxTeamSize,
		IsActive:    true,
	}

	for _, f := range []struct{ name, value string }{
		{"name", event.Name},
		{"description", event.Description},
		{"date", event.Date},
	} {
		if f.value == "" {
			return domain.Event{}, &domain.ValidationError{Field: f.name, Message: f.name + " is required"}
		}
	}

	if event.MinTeamSize == 0 {
		event.MinTeamSize = domain.DefaultMinTeamSize
	}
	if event.MaxTeamSize == 0 {
		event.MaxTeamSize = domain.DefaultMaxTeamSize
	}

	if event.MinTeamSize < 1 || event.MaxTeamSize < 1 {
		return domain.Event{}, &domain.ValidationError{Field: "teamSize", Message: "team sizes must be at least 1"}
	}
	if event.MinTeamSize > event.MaxTeamSize {
		return domain.Event{}, &domain.ValidationError{Field: "minTeamSize", Message: "minimum team size cannot exceed maximum team size"}
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Create -> %w", err)
	}

	zap.L().Info("event created", zap.String("id", created.ID), zap.String("slug", string(created.Slug)))

	return created, nil
}
