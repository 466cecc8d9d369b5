// Package store owns the in-memory availability lists for open teams. The
// backend is the system of record: every mutation builds the full updated
// list, submits it whole, and replaces local state with the server's
// authoritative response (last write wins, no optimistic merge).
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"teamsched/internal/api"
)

// ErrValidation marks bad local input. Requests failing this check never
// reach the network.
var ErrValidation = errors.New("invalid slot")

// AvailabilityAPI is the slice of the backend client the store needs.
type AvailabilityAPI interface {
	Availability(ctx context.Context, teamID string) ([]api.Availability, error)
	ReplaceAvailability(ctx context.Context, teamID string, slots []api.Availability) ([]api.Availability, error)
}

// SlotCandidate is a not-yet-persisted slot as assembled from user input.
type SlotCandidate struct {
	Weekday   api.Weekday `validate:"required,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime int         `validate:"min=0,max=1439"`
	EndTime   int         `validate:"min=1,max=1440"`
	Priority  int         `validate:"min=1"`
}

type Store struct {
	api      AvailabilityAPI
	log      *zap.Logger
	validate *validator.Validate

	mu    sync.Mutex
	slots map[string][]api.Availability

	// OnUpdate, when set, fires after every successful mutation so sibling
	// views can refresh derived data.
	OnUpdate func(teamID string)
}

func New(client AvailabilityAPI, log *zap.Logger) *Store {
	return &Store{
		api:      client,
		log:      log,
		validate: validator.New(),
		slots:    make(map[string][]api.Availability),
	}
}

// Load fetches the current slot list for a team. On failure the prior
// in-memory state (or empty, on first load) is left untouched and the
// error is surfaced as recoverable.
func (s *Store) Load(ctx context.Context, teamID string) ([]api.Availability, error) {
	slots, err := s.api.Availability(ctx, teamID)
	if err != nil {
		s.log.Warn("load availability", zap.String("team", teamID), zap.Error(err))
		return nil, fmt.Errorf("load availability: %w", err)
	}
	s.mu.Lock()
	s.slots[teamID] = slots
	s.mu.Unlock()
	return slots, nil
}

// Slots returns the cached list for a team.
func (s *Store) Slots(teamID string) []api.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[teamID]
}

// AddSlot validates the candidate locally, then submits the existing list
// plus the candidate as one replacement.
func (s *Store) AddSlot(ctx context.Context, teamID string, candidate SlotCandidate) ([]api.Availability, error) {
	if candidate.StartTime >= candidate.EndTime {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if err := s.validate.Struct(candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	updated := make([]api.Availability, 0, len(s.slots[teamID])+1)
	updated = append(updated, s.slots[teamID]...)
	s.mu.Unlock()
	updated = append(updated, api.Availability{
		Weekday:   candidate.Weekday,
		StartTime: candidate.StartTime,
		EndTime:   candidate.EndTime,
		Priority:  candidate.Priority,
	})

	return s.replace(ctx, teamID, updated)
}

// RemoveSlot filters the slot out of the current list and submits the
// remainder as the new full list.
func (s *Store) RemoveSlot(ctx context.Context, teamID, slotID string) ([]api.Availability, error) {
	s.mu.Lock()
	updated := make([]api.Availability, 0, len(s.slots[teamID]))
	for _, slot := range s.slots[teamID] {
		if slot.ID != slotID {
			updated = append(updated, slot)
		}
	}
	s.mu.Unlock()

	return s.replace(ctx, teamID, updated)
}

func (s *Store) replace(ctx context.Context, teamID string, slots []api.Availability) ([]api.Availability, error) {
	saved, err := s.api.ReplaceAvailability(ctx, teamID, slots)
	if err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}

	s.mu.Lock()
	s.slots[teamID] = saved
	s.mu.Unlock()

	if s.OnUpdate != nil {
		s.OnUpdate(teamID)
	}
	return saved, nil
}
