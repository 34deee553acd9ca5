package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietanh2810/event-registration-api/internal/domain"
)

// memStore mimics the unique indexes of the postgres schema.
type memStore struct {
	mu            sync.Mutex
	clock         time.Time
	events        []domain.Event
	registrations []domain.Registration
	participants  []domain.Participant
	failWith      error
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return domain.Registration{}, m.failWith
	}
	for _, r := range m.registrations {
		if r.EventName == reg.EventName && r.LeaderEmail == reg.LeaderEmail {
			return domain.Registration{}, fmt.Errorf("fake insert -> %w", ErrRegistrationExists)
		}
	}

	reg.ID = uuid.NewString()
	reg.CreatedAt = m.tick()
	reg.UpdatedAt = reg.CreatedAt
	for i := range reg.Participants {
		reg.Participants[i].ID = uuid.NewString()
		reg.Participants[i].RegistrationID = reg.ID
	}

	stored := reg
	stored.Participants = nil
	m.registrations = append(m.registrations, stored)
	m.participants = append(m.participants, reg.Participants...)

	return reg, nil
}

func (m *memStore) FindByEventName(ctx context.Context, eventName string) ([]domain.Registration, error) {
	return m.FindByEventNames(ctx, []string{eventName})
}

func (m *memStore) FindByEventNames(_ context.Context, eventNames []string) ([]domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	wanted := map[string]bool{}
	for _, n := range eventNames {
		wanted[n] = true
	}

	var out []domain.Registration
	for _, r := range m.registrations {
		if wanted[r.EventName] {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (m *memStore) ParticipantsOfMany(_ context.Context, ids []string) ([]domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}

	var out []domain.Participant
	for _, p := range m.participants {
		if wanted[p.RegistrationID] {
			out = append(out, p)
		}
	}

	return out, nil
}

type memEvents struct {
	store *memStore
}

func (e memEvents) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	m := e.store
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.events {
		if existing.Name == event.Name || existing.Slug == event.Slug {
			return domain.Event{}, fmt.Errorf("fake insert -> %w", ErrEventExists)
		}
	}

	event.ID = uuid.NewString()
	event.CreatedAt = m.tick()
	event.UpdatedAt = event.CreatedAt
	m.events = append(m.events, event)

	return event, nil
}

func (e memEvents) FindAll(context.Context) ([]domain.Event, error) {
	m := e.store
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Event, 0, len(m.events))
	for i := len(m.events) - 1; i >= 0; i-- {
		out = append(out, m.events[i])
	}

	return out, nil
}

func (e memEvents) FindActive(ctx context.Context) ([]domain.Event, error) {
	all, _ := e.FindAll(ctx)

	var out []domain.Event
	for _, ev := range all {
		if ev.IsActive {
			out = append(out, ev)
		}
	}

	return out, nil
}

func (e memEvents) FindByName(_ context.Context, name string) (domain.Event, error) {
	m := e.store
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ev := range m.events {
		if ev.Name == name {
			return ev, nil
		}
	}

	return domain.Event{}, fmt.Errorf("fake find -> %w", ErrEventNotFound)
}

func (e memEvents) deactivate(name string) {
	m := e.store
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.events {
		if m.events[i].Name == name {
			m.events[i].IsActive = false
		}
	}
}

var errStoreDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
