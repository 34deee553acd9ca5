package request

import (
	"github.com/vietanh2810/event-registration-api/internal/domain"
)

type TeamMemberRequest struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	RollNumber    string `json:"rollNumber"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
}

// SubmitRegistrationRequest is the public registration form. Either
// participationType or isTeam selects the mode. Field rules are checked in
// order by the domain layer, so there is no Validate method here.
type SubmitRegistrationRequest struct {
	ParticipationType   string              `json:"participationType" enums:"solo,team"`
	IsTeam              *bool               `json:"isTeam,omitempty"`
	TeamName            string              `json:"teamName,omitempty"`
	LeaderName          string              `json:"leaderName"`
	LeaderGender        string              `json:"leaderGender" enums:"Male,Female,Other"`
	LeaderRollNumber    string              `json:"leaderRollNumber"`
	LeaderContactNumber string              `json:"leaderContactNumber"`
	LeaderEmail         string              `json:"leaderEmail"`
	TeamMembers         []TeamMemberRequest `json:"teamMembers,omitempty"`
}

func (req *SubmitRegistrationRequest) ToSubmission(eventName string) domain.Submission {
	members := make([]domain.MemberInput, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		members = append(members, domain.MemberInput{
			Name:          m.Name,
			Gender:        m.Gender,
			RollNumber:    m.RollNumber,
			ContactNumber: m.ContactNumber,
			Email:         m.Email,
		})
	}

	return domain.Submission{
		EventName:         eventName,
		ParticipationType: req.ParticipationType,
		IsTeam:            req.IsTeam,
		TeamName:          req.TeamName,
		Leader: domain.MemberInput{
			Name:          req.LeaderName,
			Gender:        req.LeaderGender,
			RollNumber:    req.LeaderRollNumber,
			ContactNumber: req.LeaderContactNumber,
			Email:         req.LeaderEmail,
		},
		TeamMembers: members,
	}
}
