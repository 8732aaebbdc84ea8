package event

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

// Service wraps business logic for volunteer events.
type Service struct {
	Repo   *Repository
	Logger *zap.Logger
}

func NewService(r *Repository, logger *zap.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

// ===========================
// Create Event
func (s *Service) Create(creatorID string, req *CreateEventRequest) (*Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperror.ValidationFailed("capacity", "capacity must be a positive number")
	}

	isOngoing := false
	if req.IsOngoing != nil {
		isOngoing = *req.IsOngoing
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperror.ValidationFailed("start_date", "invalid start_date, use RFC3339 or YYYY-MM-DD")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, apperror.ValidationFailed("end_date", "invalid end_date, use RFC3339 or YYYY-MM-DD")
	}

	if startDate == nil {
		if !isOngoing {
			return nil, apperror.ValidationFailed("start_date", "start_date is required for scheduled events")
		}
		// ongoing opportunities are listed immediately
		now := time.Now().UTC()
		startDate = &now
	}

	e := &Event{
		CreatorID:   creatorID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		IsOngoing:   isOngoing,
		Capacity:    req.Capacity,
	}

	if err := s.Repo.Create(e); err != nil {
		return nil, err
	}

	s.Logger.Info("event created",
		zap.String("event_id", e.ID),
		zap.String("creator_id", creatorID),
	)
	return e, nil
}

// ===========================
// List Events with creator info and registration counts
func (s *Service) List(f ListFilters) ([]Event, error) {
	events, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]string, 0, len(events))
	for i := range events {
		creatorIDs = append(creatorIDs, events[i].CreatorID)
	}
	creators, err := s.Repo.GetCreatorProfiles(creatorIDs)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if info, ok := creators[events[i].CreatorID]; ok {
			c := info
			events[i].Creator = &c
		}
		count, _ := s.Repo.CountParticipants(events[i].ID)
		events[i].ParticipantCount = count
	}
	return events, nil
}

// ===========================
// Get Event by ID with creator and participants
func (s *Service) GetByID(id string) (*Event, error) {
	e, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event", id)
		}
		return nil, err
	}

	creators, err := s.Repo.GetCreatorProfiles([]string{e.CreatorID})
	if err != nil {
		return nil, err
	}
	if info, ok := creators[e.CreatorID]; ok {
		e.Creator = &info
	}

	participants, err := s.Repo.GetParticipants(id)
	if err != nil {
		return nil, err
	}
	e.Participants = participants
	e.ParticipantCount = len(participants)

	return e, nil
}

// ===========================
// Update Event (creator-only)
//
// An update that matches zero rows without a database error means the
// write was silently dropped and is surfaced as a persistence failure,
// never reported as success.
func (s *Service) Update(id, userID string, req *UpdateEventRequest) (*Event, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event", id)
		}
		return nil, err
	}

	if existing.CreatorID != userID {
		return nil, apperror.Forbidden("only the creator can update this event")
	}

	fields, err := buildUpdateFields(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.Update(id, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		s.Logger.Error("event update matched no rows",
			zap.String("event_id", id),
			zap.String("user_id", userID),
		)
		return nil, apperror.Persistence("event update was not applied")
	}

	return s.GetByID(id)
}

// ===========================
// Delete Event (creator-only, removes participation rows too)
func (s *Service) Delete(id, userID string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("event", id)
		}
		return err
	}

	if existing.CreatorID != userID {
		return apperror.Forbidden("only the creator can delete this event")
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.Logger.Info("event deleted",
		zap.String("event_id", id),
		zap.String("creator_id", userID),
	)
	return nil
}

func buildUpdateFields(req *UpdateEventRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperror.ValidationFailed("description", "description cannot be empty")
		}
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil || t == nil {
			return nil, apperror.ValidationFailed("start_date", "invalid start_date, use RFC3339 or YYYY-MM-DD")
		}
		fields["start_date"] = *t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil || t == nil {
			return nil, apperror.ValidationFailed("end_date", "invalid end_date, use RFC3339 or YYYY-MM-DD")
		}
		fields["end_date"] = *t
	}
	if req.IsOngoing != nil {
		fields["is_ongoing"] = *req.IsOngoing
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, apperror.ValidationFailed("capacity", "capacity must be a positive number")
		}
		fields["capacity"] = *req.Capacity
	}

	return fields, nil
}

// parseDate accepts RFC3339 timestamps or bare dates; empty means unset.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
