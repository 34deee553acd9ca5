package dao_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
	"github.com/vietanh2810/event-registration-api/internal/testutil"
)

var pg *testutil.Postgres

func TestMain(m *testing.M) {
	flag.Parse()

	if !testing.Short() {
		var err error
		pg, err = testutil.StartPostgres()
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping postgres tests: %v\n", err)
		}
	}

	code := m.Run()

	if pg != nil {
		_ = pg.Close()
	}
	os.Exit(code)
}

func setup(t *testing.T) {
	t.Helper()
	if pg == nil {
		t.Skip("postgres is not available")
	}
	require.NoError(t, pg.Reset())
}

func teamRegistration(eventName, leaderEmail string) (dao.Registration, []dao.Participant) {
	teamName := "Alpha"
	return dao.Registration{
			EventName:         eventName,
			IsTeam:            true,
			TeamName:          &teamName,
			LeaderEmail:       leaderEmail,
			TotalParticipants: 3,
		}, []dao.Participant{
			{Name: "Alice", Gender: "Female", RollNumber: "CS01", ContactNumber: "9876543210", Email: leaderEmail, IsLeader: true},
			{Name: "Bob", Gender: "Male", RollNumber: "CS02", ContactNumber: "9876543211", Email: "bob@x.com"},
			{Name: "Carol", Gender: "Other", RollNumber: "CS03", ContactNumber: "9876543212", Email: "carol@x.com"},
		}
}

func TestEventDAO_InsertAndFind(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewEventDAO(pg.DB)

	first, err := d.Insert(ctx, dao.Event{Name: "Hackathon 2025", Slug: "hackathon-2025", Description: "48h", Date: "Jan 15", MinTeamSize: 1, MaxTeamSize: 4, IsActive: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	_, err = d.Insert(ctx, dao.Event{Name: "Old Workshop", Slug: "old-workshop", Description: "past", Date: "2024", MinTeamSize: 1, MaxTeamSize: 1, IsActive: false})
	require.NoError(t, err)

	all, err := d.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Old Workshop", all[0].Name)

	active, err := d.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Hackathon 2025", active[0].Name)

	found, err := d.FindByName(ctx, "Hackathon 2025")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = d.FindByName(ctx, "Nope")
	assert.ErrorIs(t, err, dao.ErrEventNotFound)
}

func TestEventDAO_DuplicateSlug(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewEventDAO(pg.DB)

	_, err := d.Insert(ctx, dao.Event{Name: "Hackathon 2025", Slug: "hackathon-2025", Description: "48h", Date: "Jan 15", MinTeamSize: 1, MaxTeamSize: 4, IsActive: true})
	require.NoError(t, err)

	_, err = d.Insert(ctx, dao.Event{Name: "Another", Slug: "hackathon-2025", Description: "x", Date: "y", MinTeamSize: 1, MaxTeamSize: 4, IsActive: true})
	assert.ErrorIs(t, err, dao.ErrEventExists)

	_, err = d.Insert(ctx, dao.Event{Name: "Hackathon 2025", Slug: "other", Description: "x", Date: "y", MinTeamSize: 1, MaxTeamSize: 4, IsActive: true})
	assert.ErrorIs(t, err, dao.ErrEventExists)

	all, err := d.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegistrationDAO_InsertWithParticipants(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewRegistrationDAO(pg.DB)

	reg, parts := teamRegistration("Tussle 3.0", "alice@x.com")
	created, createdParts, err := d.InsertWithParticipants(ctx, reg, parts)
	require.NoError(t, err)
	require.Len(t, createdParts, 3)
	for i, p := range createdParts {
		assert.Equal(t, created.ID, p.RegistrationID)
		assert.Equal(t, i, p.Position)
	}

	regs, err := d.FindByEventName(ctx, "Tussle 3.0")
	require.NoError(t, err)
	require.Len(t, regs, 1)

	loaded, err := d.FindParticipantsByRegistrationIDs(ctx, []uuid.UUID{created.ID})
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.True(t, loaded[0].IsLeader)
	assert.Equal(t, "Bob", loaded[1].Name)
}

func TestRegistrationDAO_DuplicateLeaderKeepsOneRow(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewRegistrationDAO(pg.DB)

	reg, parts := teamRegistration("Tussle 3.0", "alice@x.com")
	_, _, err := d.InsertWithParticipants(ctx, reg, parts)
	require.NoError(t, err)

	reg, parts = teamRegistration("Tussle 3.0", "alice@x.com")
	_, _, err = d.InsertWithParticipants(ctx, reg, parts)
	assert.ErrorIs(t, err, dao.ErrRegistrationExists)

	regs, err := d.FindByEventName(ctx, "Tussle 3.0")
	require.NoError(t, err)
	assert.Len(t, regs, 1)

	var participants int64
	require.NoError(t, pg.DB.Model(&dao.Participant{}).Count(&participants).Error)
	assert.EqualValues(t, 3, participants)
}

func TestRegistrationDAO_DuplicateParticipantRollsBack(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewRegistrationDAO(pg.DB)

	reg, parts := teamRegistration("Tussle 3.0", "alice@x.com")
	parts[2].Email = "bob@x.com"

	_, _, err := d.InsertWithParticipants(ctx, reg, parts)
	assert.ErrorIs(t, err, dao.ErrParticipantEmailExists)

	regs, err := d.FindByEventName(ctx, "Tussle 3.0")
	require.NoError(t, err)
	assert.Empty(t, regs, "registration must not survive a failed participant insert")
}

func TestRegistrationDAO_FindByEventNames(t *testing.T) {
	setup(t)
	ctx := context.Background()
	d := dao.NewRegistrationDAO(pg.DB)

	for i, event := range []string{"A", "A", "B", "C"} {
		reg, parts := teamRegistration(event, fmt.Sprintf("leader%d@x.com", i))
		parts[0].Email = reg.LeaderEmail
		_, _, err := d.InsertWithParticipants(ctx, reg, parts)
		require.NoError(t, err)
	}

	regs, err := d.FindByEventNames(ctx, []string{"A", "B"})
	require.NoError(t, err)
	assert.Len(t, regs, 3)

	regs, err = d.FindByEventNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, regs)
}
