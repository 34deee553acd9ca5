package domain

import "time"

const (
	DefaultMinTeamSize = 1
	DefaultMaxTeamSize = 4
)

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        Slug      `json:"slug"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	MinTeamSize int       `json:"minTeamSize"`
	MaxTeamSize int       `json:"maxTeamSize"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventStat aggregates the registrations of one event.
type EventStat struct {
	EventName          string `json:"eventName,omitempty"`
	TotalRegistrations int    `json:"totalRegistrations"`
	IndividualCount    int    `json:"individualCount"`
	TeamCount          int    `json:"teamCount"`
	TotalParticipants  int    `json:"totalParticipants"`
}

// Tally partitions registrations on IsTeam and sums their participants.
func Tally(eventName string, registrations []Registration) EventStat {
	stat := EventStat{
		EventName:          eventName,
		TotalRegistrations: len(registrations),
	}
	for _, r := range registrations {
		if r.IsTeam {
			stat.TeamCount++
		} else {
			stat.IndividualCount++
		}
		stat.TotalParticipants += r.TotalParticipants
	}

	return stat
}

type EventDetail struct {
	Stats         EventStat      `json:"stats"`
	Registrations []Registration `json:"registrations"`
}
