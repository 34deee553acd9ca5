package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Date        string `json:"date" example:"January 15-17, 2025"`
	MinTeamSize int    `json:"minTeamSize,omitempty"`
	MaxTeamSize int    `json:"maxTeamSize,omitempty"`
}

// Validate trims the text fields in place, so whitespace-only values count as missing.
func (req *CreateEventRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Description = strings.TrimSpace(req.Description)
	req.Date = strings.TrimSpace(req.Date)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&req.Slug, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.MinTeamSize, validation.Min(0)),
		validation.Field(&req.MaxTeamSize, validation.Min(0)),
	)
}

type LoginRequest struct {
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Password, validation.Required),
	)
}
