package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ParticipationSolo = "solo"
	ParticipationTeam = "team"

	MinTeamMembers = 1
	MaxTeamMembers = 3
)

const (
	msgInvalidParticipation = `Invalid participation type. Must be "solo" or "team".`
	msgLeaderFieldsRequired = "All leader fields are required."
	msgTeamNameRequired     = "Team name is required for team participation."
	msgTeamSize             = "Team participation requires 1 to 3 additional members (2-4 total including leader)."
	msgMemberFieldsRequired = "All fields are required for each team member."
	msgSoloWithMembers      = "Solo participation cannot have team members."
)

var ErrDuplicateParticipantEmail = errors.New("participants of a registration must have distinct emails")

// ValidationError reports the first rule a submission violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

type Registration struct {
	ID                string        `json:"id"`
	EventName         string        `json:"eventName"`
	IsTeam            bool          `json:"isTeam"`
	TeamName          TeamName      `json:"teamName,omitempty"`
	LeaderEmail       Email         `json:"leaderEmail"`
	TotalParticipants int           `json:"totalParticipants"`
	Participants      []Participant `json:"participants,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Leader returns the participant flagged as leader, if loaded.
func (r Registration) Leader() (Participant, bool) {
	for _, p := range r.Participants {
		if p.IsLeader {
			return p, true
		}
	}

	return Participant{}, false
}

type Participant struct {
	ID             string        `json:"id"`
	RegistrationID string        `json:"registrationId"`
	Name           PersonName    `json:"name"`
	Gender         Gender        `json:"gender"`
	RollNumber     RollNumber    `json:"rollNumber"`
	ContactNumber  ContactNumber `json:"contactNumber"`
	Email          Email         `json:"email"`
	IsLeader       bool          `json:"isLeader"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// MemberInput is one person as typed into the registration form.
type MemberInput struct {
	Name          string
	Gender        string
	RollNumber    string
	ContactNumber string
	Email         string
}

func (m MemberInput) complete() bool {
	for _, v := range []string{m.Name, m.Gender, m.RollNumber, m.ContactNumber, m.Email} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}

	return true
}

// Submission is an unvalidated registration form. IsTeam is consulted only
// when ParticipationType is empty.
type Submission struct {
	EventName         string
	ParticipationType string
	IsTeam            *bool
	TeamName          string
	Leader            MemberInput
	TeamMembers       []MemberInput
}

func (s Submission) isTeam() (isTeam bool, ok bool) {
	switch s.ParticipationType {
	case ParticipationSolo:
		isTeam = false
	case ParticipationTeam:
		isTeam = true
	case "":
		if s.IsTeam == nil {
			return false, false
		}
		return *s.IsTeam, true
	default:
		return false, false
	}

	if s.IsTeam != nil && *s.IsTeam != isTeam {
		return false, false
	}

	return isTeam, true
}

// Build checks the submission rule by rule and stops at the first failure.
// The returned registration holds the leader first, then the members in
// submission order. IDs are left for the store to assign.
func (s Submission) Build() (Registration, error) {
	isTeam, ok := s.isTeam()
	if !ok {
		return Registration{}, &ValidationError{Message: msgInvalidParticipation}
	}

	if !s.Leader.complete() {
		return Registration{}, &ValidationError{Message: msgLeaderFieldsRequired}
	}

	if isTeam {
		if strings.TrimSpace(s.TeamName) == "" {
			return Registration{}, &ValidationError{Field: "teamName", Message: msgTeamNameRequired}
		}
		if len(s.TeamMembers) < MinTeamMembers || len(s.TeamMembers) > MaxTeamMembers {
			return Registration{}, &ValidationError{Field: "teamMembers", Message: msgTeamSize}
		}
		for _, m := range s.TeamMembers {
			if !m.complete() {
				return Registration{}, &ValidationError{Field: "teamMembers", Message: msgMemberFieldsRequired}
			}
		}
	} else if len(s.TeamMembers) > 0 {
		return Registration{}, &ValidationError{Field: "teamMembers", Message: msgSoloWithMembers}
	}

	reg := Registration{
		EventName:         strings.TrimSpace(s.EventName),
		IsTeam:            isTeam,
		TotalParticipants: 1 + len(s.TeamMembers),
	}

	if isTeam {
		teamName, err := NewTeamName(s.TeamName)
		if err != nil {
			return Registration{}, &ValidationError{Field: "teamName", Message: err.Error()}
		}
		reg.TeamName = teamName
	}

	leader, err := newParticipant(s.Leader, "leader", true)
	if err != nil {
		return Registration{}, err
	}
	reg.LeaderEmail = leader.Email
	reg.Participants = append(reg.Participants, leader)

	for i, m := range s.TeamMembers {
		p, err := newParticipant(m, fmt.Sprintf("teamMembers[%d].", i), false)
		if err != nil {
			return Registration{}, err
		}
		reg.Participants = append(reg.Participants, p)
	}

	seen := make(map[Email]struct{}, len(reg.Participants))
	for _, p := range reg.Participants {
		if _, dup := seen[p.Email]; dup {
			return Registration{}, fmt.Errorf("%w: %s", ErrDuplicateParticipantEmail, p.Email)
		}
		seen[p.Email] = struct{}{}
	}

	return reg, nil
}

// newParticipant builds one participant; prefix names the form fields in
// errors ("leader" yields leaderName, "teamMembers[0]." yields teamMembers[0].name).
func newParticipant(in MemberInput, prefix string, isLeader bool) (Participant, error) {
	field := func(name string) string {
		if isLeader {
			return prefix + strings.ToUpper(name[:1]) + name[1:]
		}
		return prefix + name
	}

	name, err := NewPersonName(in.Name)
	if err != nil {
		return Participant{}, &ValidationError{Field: field("name"), Message: err.Error()}
	}
	gender, err := ParseGender(in.Gender)
	if err != nil {
		return Participant{}, &ValidationError{Field: field("gender"), Message: err.Error()}
	}
	roll, err := NewRollNumber(in.RollNumber)
	if err != nil {
		return Participant{}, &ValidationError{Field: field("rollNumber"), Message: err.Error()}
	}
	contact, err := NewContactNumber(in.ContactNumber)
	if err != nil {
		return Participant{}, &ValidationError{Field: field("contactNumber"), Message: err.Error()}
	}
	email, err := NewEmail(in.Email)
	if err != nil {
		return Participant{}, &ValidationError{Field: field("email"), Message: err.Error()}
	}

	return Participant{
		Name:          name,
		Gender:        gender,
		RollNumber:    roll,
		ContactNumber: contact,
		Email:         email,
		IsLeader:      isLeader,
	}, nil
}
