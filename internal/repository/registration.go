package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
)

var (
	ErrRegistrationExists     = dao.ErrRegistrationExists
	ErrParticipantEmailExists = dao.ErrParticipantEmailExists
)

type RegistrationDAO interface {
	InsertWithParticipants(ctx context.Context, registration dao.Registration, participants []dao.Participant) (dao.Registration, []dao.Participant, error)
	FindByEventName(ctx context.Context, eventName string) ([]dao.Registration, error)
	FindByEventNames(ctx context.Context, eventNames []string) ([]dao.Registration, error)
	FindParticipantsByRegistrationIDs(ctx context.Context, ids []uuid.UUID) ([]dao.Participant, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

// Create stores the registration together with registration.Participants
// as a single unit.
func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	participants := make([]dao.Participant, 0, len(registration.Participants))
	for _, p := range registration.Participants {
		participants = append(participants, r.participantDomainToDao(p))
	}

	created, createdParticipants, err := r.dao.InsertWithParticipants(ctx, r.domainToDao(registration), participants)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertWithParticipants -> %w", err)
	}

	result := r.daoToDomain(created)
	result.Participants = r.participantsDaoToDomain(createdParticipants)

	return result, nil
}

func (r *RegistrationRepository) FindByEventName(ctx context.Context, eventName string) ([]domain.Registration, error) {
	found, err := r.dao.FindByEventName(ctx, eventName)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventName -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RegistrationRepository) FindByEventNames(ctx context.Context, eventNames []string) ([]domain.Registration, error) {
	found, err := r.dao.FindByEventNames(ctx, eventNames)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventNames -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// ParticipantsOf returns the participants of one registration, leader first.
func (r *RegistrationRepository) ParticipantsOf(ctx context.Context, registrationID string) ([]domain.Participant, error) {
	return r.ParticipantsOfMany(ctx, []string{registrationID})
}

// ParticipantsOfMany loads the participants of all given registrations in
// one query.
func (r *RegistrationRepository) ParticipantsOfMany(ctx context.Context, registrationIDs []string) ([]domain.Participant, error) {
	ids := make([]uuid.UUID, 0, len(registrationIDs))
	for _, raw := range registrationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("uuid.Parse(%q) -> %w", raw, err)
		}
		ids = append(ids, id)
	}

	found, err := r.dao.FindParticipantsByRegistrationIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipantsByRegistrationIDs -> %w", err)
	}

	return r.participantsDaoToDomain(found), nil
}

func (r *RegistrationRepository) domainToDao(reg domain.Registration) dao.Registration {
	d := dao.Registration{
		EventName:         reg.EventName,
		IsTeam:            reg.IsTeam,
		LeaderEmail:       string(reg.LeaderEmail),
		TotalParticipants: reg.TotalParticipants,
	}
	if reg.IsTeam {
		teamName := string(reg.TeamName)
		d.TeamName = &teamName
	}

	return d
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	d := domain.Registration{
		ID:                reg.ID.String(),
		EventName:         reg.EventName,
		IsTeam:            reg.IsTeam,
		LeaderEmail:       domain.Email(reg.LeaderEmail),
		TotalParticipants: reg.TotalParticipants,
		CreatedAt:         reg.CreatedAt,
		UpdatedAt:         reg.UpdatedAt,
	}
	if reg.TeamName != nil {
		d.TeamName = domain.TeamName(*reg.TeamName)
	}

	return d
}

func (r *RegistrationRepository) daosToDomain(regs []dao.Registration) []domain.Registration {
	out := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		out = append(out, r.daoToDomain(reg))
	}

	return out
}

func (r *RegistrationRepository) participantDomainToDao(p domain.Participant) dao.Participant {
	return dao.Participant{
		Name:          string(p.Name),
		Gender:        string(p.Gender),
		RollNumber:    string(p.RollNumber),
		ContactNumber: string(p.ContactNumber),
		Email:         string(p.Email),
		IsLeader:      p.IsLeader,
	}
}

func (r *RegistrationRepository) participantsDaoToDomain(participants []dao.Participant) []domain.Participant {
	out := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, domain.Participant{
			ID:             p.ID.String(),
			RegistrationID: p.RegistrationID.String(),
			Name:           domain.PersonName(p.Name),
			Gender:         domain.Gender(p.Gender),
			RollNumber:     domain.RollNumber(p.RollNumber),
			ContactNumber:  domain.ContactNumber(p.ContactNumber),
			Email:          domain.Email(p.Email),
			IsLeader:       p.IsLeader,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
	}

	return out
}
