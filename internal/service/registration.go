package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vietanh2810/event-registration-api/internal/config"
	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/repository"
)

var (
	ErrRegistrationExists        = repository.ErrRegistrationExists
	ErrParticipantEmailExists    = repository.ErrParticipantEmailExists
	ErrDuplicateParticipantEmail = domain.ErrDuplicateParticipantEmail
	ErrEventNotFound             = repository.ErrEventNotFound
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindByEventName(ctx context.Context, eventName string) ([]domain.Registration, error)
}

type EventFinder interface {
	FindByName(ctx context.Context, name string) (domain.Event, error)
}

type RegistrationService struct {
	repo   RegistrationRepository
	events EventFinder
	conf   *config.RegistrationConfig
}

func NewRegistrationService(repo RegistrationRepository, events EventFinder, conf *config.RegistrationConfig) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		events: events,
		conf:   conf,
	}
}

// Submit validates the submission and stores the registration with all of
// its participants. Nothing is written when validation fails.
func (s *RegistrationService) Submit(ctx context.Context, submission domain.Submission) (domain.Registration, error) {
	if strings.TrimSpace(submission.EventName) == "" {
		return domain.Registration{}, &domain.ValidationError{Field: "eventName", Message: "Event name is required."}
	}

	registration, err := submission.Build()
	if err != nil {
		return domain.Registration{}, err
	}

	if s.conf != nil && s.conf.RequireKnownEvent {
		if err = s.ensureOpen(ctx, registration.EventName); err != nil {
			return domain.Registration{}, err
		}
	}

	created, err := s.repo.Create(ctx, registration)
	if err != nil {
		if !errors.Is(err, ErrRegistrationExists) && !errors.Is(err, ErrParticipantEmailExists) {
			zap.L().Error("failed to store registration",
				zap.String("event", registration.EventName), zap.Error(err))
		}
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("registration created",
		zap.String("id", created.ID),
		zap.String("event", created.EventName),
		zap.Bool("team", created.IsTeam),
		zap.Int("participants", created.TotalParticipants),
	)

	return created, nil
}

func (s *RegistrationService) ensureOpen(ctx context.Context, eventName string) error {
	event, err := s.events.FindByName(ctx, eventName)
	if err != nil {
		return fmt.Errorf("s.events.FindByName -> %w", err)
	}
	if !event.IsActive {
		return fmt.Errorf("event %q is not active -> %w", eventName, ErrEventNotFound)
	}

	return nil
}

// ListByEvent returns the registrations of an event, newest first.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventName string) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByEventName(ctx, eventName)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventName -> %w", err)
	}

	return registrations, nil
}
