package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)
	slugPattern          = regexp.MustCompile(`^[a-z0-9-]+$`)
)

var (
	errInvalidEmail         = errors.New("must be a valid email address")
	errInvalidContactNumber = errors.New("contact number must be exactly 10 digits")
	errInvalidPersonName    = errors.New("name must be between 2 and 100 characters long")
	errInvalidTeamName      = errors.New("team name must be between 3 and 100 characters long")
	errInvalidRollNumber    = errors.New("roll number is required")
	errInvalidGender        = errors.New("gender must be Male, Female, or Other")
	errInvalidSlug          = errors.New("slug can only contain lowercase letters, numbers, and hyphens")
	errControlCharacters    = errors.New("must not contain control characters")
)

// printable rejects NUL and other control characters, which postgres text
// columns refuse or store as garbage.
var printable = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return errControlCharacters
	}
	return nil
})

// Email is a trimmed, lower-cased address with a plausible syntax.
type Email string

func NewEmail(s string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if err := validation.Validate(v, validation.Required, validation.Match(emailPattern)); err != nil {
		return "", errInvalidEmail
	}

	return Email(v), nil
}

func (e Email) String() string { return string(e) }

// ContactNumber holds exactly ten ASCII digits.
type ContactNumber string

func NewContactNumber(s string) (ContactNumber, error) {
	v := strings.TrimSpace(s)
	if err := validation.Validate(v, validation.Required, validation.Match(contactNumberPattern)); err != nil {
		return "", errInvalidContactNumber
	}

	return ContactNumber(v), nil
}

// RollNumber is stored upper-cased.
type RollNumber string

func NewRollNumber(s string) (RollNumber, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", errInvalidRollNumber
	}
	if err := validation.Validate(v, printable); err != nil {
		return "", fmt.Errorf("roll number %w", errControlCharacters)
	}

	return RollNumber(v), nil
}

type PersonName string

func NewPersonName(s string) (PersonName, error) {
	v := strings.TrimSpace(s)
	if err := validation.Validate(v, validation.Required, validation.RuneLength(2, 100)); err != nil {
		return "", errInvalidPersonName
	}
	if err := validation.Validate(v, printable); err != nil {
		return "", fmt.Errorf("name %w", errControlCharacters)
	}

	return PersonName(v), nil
}

type TeamName string

func NewTeamName(s string) (TeamName, error) {
	v := strings.TrimSpace(s)
	if err := validation.Validate(v, validation.Required, validation.RuneLength(3, 100)); err != nil {
		return "", errInvalidTeamName
	}
	if err := validation.Validate(v, printable); err != nil {
		return "", fmt.Errorf("team name %w", errControlCharacters)
	}

	return TeamName(v), nil
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender accepts the three known values regardless of case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	}

	return "", errInvalidGender
}

// Slug is the URL-safe, lower-case identifier of an event.
type Slug string

func NewSlug(s string) (Slug, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if err := validation.Validate(v, validation.Required, validation.Match(slugPattern)); err != nil {
		return "", errInvalidSlug
	}

	return Slug(v), nil
}
