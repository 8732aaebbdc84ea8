package participation

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/apperror"
)

// Service wraps the event participation ledger.
type Service struct {
	Repo        *Repository
	ActivitySvc activity.Service
	Logger      *zap.Logger
}

func NewService(r *Repository, activitySvc activity.Service, logger *zap.Logger) *Service {
	return &Service{Repo: r, ActivitySvc: activitySvc, Logger: logger}
}

// Actor identifies who performs a ledger operation.
type Actor struct {
	UserID string
	Name   string
	IP     string
}

// ===========================
// Register for an event
//
// Absent row -> new registration. Registered row -> idempotent repeat.
// Canceled row -> reactivated in place. isNew is true only for the first
// case; the HTTP layer maps it to 201 vs 200.
func (s *Service) Register(ctx context.Context, eventID string, actor Actor) (*Participant, bool, error) {
	ev, err := s.Repo.GetEventSummary(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperror.NotFound("event", eventID)
		}
		return nil, false, err
	}

	existing, err := s.Repo.GetByEventAndUser(eventID, actor.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing != nil && existing.Status == StatusRegistered {
		return existing, false, nil
	}

	isNew := existing == nil

	if err := s.Repo.Register(eventID, actor.UserID); err != nil {
		return nil, false, err
	}

	row, err := s.Repo.GetByEventAndUser(eventID, actor.UserID)
	if err != nil {
		return nil, false, err
	}

	s.ActivitySvc.Record(ctx, activity.RecordInput{
		UserID:        actor.UserID,
		ActorName:     actor.Name,
		Type:          activity.TypeEventRegistered,
		ResourceType:  "event",
		ResourceID:    ev.ID,
		ResourceTitle: ev.Title,
		TargetUserID:  ev.CreatorID,
		IPAddress:     actor.IP,
	})

	return row, isNew, nil
}

// ===========================
// Cancel a registration
//
// Absent row -> not found. Canceled row -> idempotent no-op. Registered
// row -> canceled with a fresh updated_at.
func (s *Service) Cancel(ctx context.Context, eventID string, actor Actor) (*Participant, error) {
	existing, err := s.Repo.GetByEventAndUser(eventID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("registration", eventID)
		}
		return nil, err
	}

	if existing.Status == StatusCanceled {
		return existing, nil
	}

	rows, err := s.Repo.UpdateStatus(eventID, actor.UserID, StatusCanceled)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		s.Logger.Error("registration cancel matched no rows",
			zap.String("event_id", eventID),
			zap.String("user_id", actor.UserID),
		)
		return nil, apperror.Persistence("registration cancel was not applied")
	}

	row, err := s.Repo.GetByEventAndUser(eventID, actor.UserID)
	if err != nil {
		return nil, err
	}

	ev, evErr := s.Repo.GetEventSummary(eventID)
	if evErr == nil {
		s.ActivitySvc.Record(ctx, activity.RecordInput{
			UserID:        actor.UserID,
			ActorName:     actor.Name,
			Type:          activity.TypeEventCanceled,
			ResourceType:  "event",
			ResourceID:    ev.ID,
			ResourceTitle: ev.Title,
			TargetUserID:  ev.CreatorID,
			IPAddress:     actor.IP,
		})
	}

	return row, nil
}

// ===========================
// Registration status for (event, user)
func (s *Service) Status(eventID, userID string) (bool, error) {
	existing, err := s.Repo.GetByEventAndUser(eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.Status == StatusRegistered, nil
}

// ===========================
// A user's registered (or canceled) events
func (s *Service) ListUserEvents(userID, statusFilter string) ([]UserEventEntry, error) {
	if statusFilter != "" && statusFilter != StatusRegistered && statusFilter != StatusCanceled {
		return nil, apperror.ValidationFailed("status", "status must be registered or canceled")
	}
	return s.Repo.ListUserEvents(userID, statusFilter)
}
