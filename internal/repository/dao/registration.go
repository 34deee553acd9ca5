package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationExists     = errors.New("you have already registered for this event")
	ErrParticipantEmailExists = errors.New("participant email already used in this registration")
)

type Registration struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName         string    `gorm:"not null;index;uniqueIndex:idx_registrations_event_leader,priority:1"`
	IsTeam            bool      `gorm:"not null"`
	TeamName          *string   `gorm:"size:100"`
	LeaderEmail       string    `gorm:"not null;index;uniqueIndex:idx_registrations_event_leader,priority:2"`
	TotalParticipants int       `gorm:"not null;check:chk_registrations_total_participants,total_participants BETWEEN 1 AND 4"`
	// Participants is never preloaded; it only declares the foreign key so
	// that deleting a registration removes its participants.
	Participants []Participant `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"not null;index"`
	UpdatedAt    time.Time     `gorm:"not null"`
}

func (r *Registration) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	return nil
}

type Participant struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegistrationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_registration_email,priority:1"`
	// Position keeps submission order; the leader is always 0.
	Position      int       `gorm:"not null"`
	Name          string    `gorm:"size:100;not null"`
	Gender        string    `gorm:"not null;check:chk_participants_gender,gender IN ('Male','Female','Other')"`
	RollNumber    string    `gorm:"not null;index"`
	ContactNumber string    `gorm:"size:10;not null"`
	Email         string    `gorm:"not null;uniqueIndex:idx_participants_registration_email,priority:2"`
	IsLeader      bool      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (p *Participant) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	return nil
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// InsertWithParticipants writes the registration and all of its participants
// in one transaction. Either every row is committed or none is.
func (d *RegistrationDAO) InsertWithParticipants(ctx context.Context, registration Registration, participants []Participant) (Registration, []Participant, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&registration).Error; err != nil {
			return translateRegistrationErr(err)
		}

		for i := range participants {
			participants[i].RegistrationID = registration.ID
			participants[i].Position = i
		}

		if err := tx.Create(&participants).Error; err != nil {
			return translateRegistrationErr(err)
		}

		return nil
	})
	if err != nil {
		return Registration{}, nil, err
	}

	return registration, participants, nil
}

// FindByEventName returns the registrations of one event, newest first.
func (d *RegistrationDAO) FindByEventName(ctx context.Context, eventName string) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("event_name = ?", eventName).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByEventNames(ctx context.Context, eventNames []string) ([]Registration, error) {
	if len(eventNames) == 0 {
		return nil, nil
	}

	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("event_name IN ?", eventNames).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// FindParticipantsByRegistrationIDs loads the participants of many
// registrations with a single query.
func (d *RegistrationDAO) FindParticipantsByRegistrationIDs(ctx context.Context, ids []uuid.UUID) ([]Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("registration_id IN ?", ids).
		Order("registration_id, position").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func translateRegistrationErr(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case "idx_registrations_event_leader":
		return ErrRegistrationExists
	case "idx_participants_registration_email":
		return ErrParticipantEmailExists
	}

	return err
}
