package response

import "github.com/vietanh2810/event-registration-api/internal/domain"

type RegistrationCreated struct {
	RegistrationID      string `json:"registrationId"`
	EventName           string `json:"eventName"`
	IsTeam              bool   `json:"isTeam"`
	ParticipationType   string `json:"participationType"`
	TeamName            string `json:"teamName,omitempty"`
	LeaderName          string `json:"leaderName"`
	TotalParticipants   int    `json:"totalParticipants"`
	ParticipantsCreated int    `json:"participantsCreated"`
}

func NewRegistrationCreated(r domain.Registration) RegistrationCreated {
	out := RegistrationCreated{
		RegistrationID:      r.ID,
		EventName:           r.EventName,
		IsTeam:              r.IsTeam,
		ParticipationType:   domain.ParticipationSolo,
		TeamName:            string(r.TeamName),
		TotalParticipants:   r.TotalParticipants,
		ParticipantsCreated: len(r.Participants),
	}
	if r.IsTeam {
		out.ParticipationType = domain.ParticipationTeam
	}
	if leader, ok := r.Leader(); ok {
		out.LeaderName = string(leader.Name)
	}

	return out
}
