package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

var sampleEvents = []service.NewEvent{
	{
		Name:        "Hackathon 2025",
		Slug:        "hackathon-2025",
		Description: "48-hour coding marathon to build innovative solutions",
		Date:        "January 15-17, 2025",
		MinTeamSize: 1,
		MaxTeamSize: 4,
	},
	{
		Name:        "Startup Pitch Competition",
		Slug:        "startup-pitch",
		Description: "Present your startup idea to industry experts and investors",
		Date:        "February 10, 2025",
		MinTeamSize: 1,
		MaxTeamSize: 4,
	},
	{
		Name:        "Innovation Workshop",
		Slug:        "innovation-workshop",
		Description: "Learn design thinking and innovation methodologies",
		Date:        "March 5, 2025",
		MinTeamSize: 1,
		MaxTeamSize: 4,
	},
}

type EventCreator interface {
	CreateEvent(ctx context.Context, input service.NewEvent) (domain.Event, error)
}

// seedEvents creates the given events, skipping those that already exist,
// and reports how many were created.
func seedEvents(ctx context.Context, svc EventCreator, events []service.NewEvent) (int, error) {
	created := 0
	for _, e := range events {
		_, err := svc.CreateEvent(ctx, e)
		if errors.Is(err, service.ErrEventExists) {
			zap.L().Info("event already exists", zap.String("slug", e.Slug))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("svc.CreateEvent(%s) -> %w", e.Slug, err)
		}
		created++
	}

	return created, nil
}
