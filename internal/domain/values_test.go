package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    Email
		wantErr bool
	}{
		{in: "  Bob@Example.COM ", want: "bob@example.com"},
		{in: "a@b.c", want: "a@b.c"},
		{in: "", wantErr: true},
		{in: "bob@example", wantErr: true},
		{in: "bob example@x.com", wantErr: true},
		{in: "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NewEmail(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewContactNumber(t *testing.T) {
	got, err := NewContactNumber(" 0123456789 ")
	assert.NoError(t, err)
	assert.Equal(t, ContactNumber("0123456789"), got)

	for _, in := range []string{"", "123456789", "12345678901", "12345abcde", "+911234567"} {
		_, err := NewContactNumber(in)
		assert.Error(t, err, in)
	}
}

func TestNewRollNumber(t *testing.T) {
	got, err := NewRollNumber(" 21bcs042 ")
	assert.NoError(t, err)
	assert.Equal(t, RollNumber("21BCS042"), got)

	_, err = NewRollNumber("  ")
	assert.Error(t, err)
}

func TestNewPersonName(t *testing.T) {
	_, err := NewPersonName("A")
	assert.Error(t, err)

	got, err := NewPersonName("  Zoë ")
	assert.NoError(t, err)
	assert.Equal(t, PersonName("Zoë"), got)

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewPersonName(string(long))
	assert.Error(t, err)
}

func TestControlCharactersRejected(t *testing.T) {
	for _, in := range []string{"Ali\x00ce", "Bob\tSmith", "Eve\u0085x"} {
		_, err := NewPersonName(in)
		assert.ErrorIs(t, err, errControlCharacters, "%q", in)

		_, err = NewTeamName(in)
		assert.ErrorIs(t, err, errControlCharacters, "%q", in)

		_, err = NewRollNumber(in)
		assert.ErrorIs(t, err, errControlCharacters, "%q", in)
	}

	_, err := NewTeamName("Team Zoë")
	assert.NoError(t, err)
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]Gender{"Male": GenderMale, "female": GenderFemale, " OTHER ": GenderOther} {
		got, err := ParseGender(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseGender("unknown")
	assert.Error(t, err)
}

func TestNewSlug(t *testing.T) {
	got, err := NewSlug(" Hackathon-2025 ")
	assert.NoError(t, err)
	assert.Equal(t, Slug("hackathon-2025"), got)

	for _, in := range []string{"", "hack athon", "hack_athon", "ünï"} {
		_, err := NewSlug(in)
		assert.Error(t, err, in)
	}
}

func TestTally(t *testing.T) {
	stat := Tally("Tussle 3.0", []Registration{
		{IsTeam: false, TotalParticipants: 1},
		{IsTeam: true, TotalParticipants: 3},
		{IsTeam: true, TotalParticipants: 4},
	})

	assert.Equal(t, EventStat{
		EventName:          "Tussle 3.0",
		TotalRegistrations: 3,
		IndividualCount:    1,
		TeamCount:          2,
		TotalParticipants:  8,
	}, stat)
	assert.Equal(t, stat.TotalRegistrations, stat.IndividualCount+stat.TeamCount)
}
