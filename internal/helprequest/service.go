package helprequest

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/internal/profile"
)

// Service wraps business logic for help requests, helpers and comments.
type Service struct {
	Repo        *Repository
	ProfileSvc  *profile.Service
	ActivitySvc activity.Service
	Logger      *zap.Logger
}

func NewService(r *Repository, profileSvc *profile.Service, activitySvc activity.Service, logger *zap.Logger) *Service {
	return &Service{Repo: r, ProfileSvc: profileSvc, ActivitySvc: activitySvc, Logger: logger}
}

// Actor identifies who performs an operation.
type Actor struct {
	UserID string
	Name   string
	Email  string
	IP     string
}

// ===========================
// Create Help Request
func (s *Service) Create(creatorID string, req *CreateHelpRequestRequest) (*HelpRequest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}

	urgency := strings.ToLower(strings.TrimSpace(req.Urgency))
	if urgency == "" {
		urgency = UrgencyMedium
	}
	if !validUrgency(urgency) {
		return nil, apperror.ValidationFailed("urgency", "urgency must be low, medium or high")
	}

	h := &HelpRequest{
		CreatorID:   creatorID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Urgency:     urgency,
		Status:      StatusOpen,
	}

	if err := s.Repo.Create(h); err != nil {
		return nil, err
	}

	s.Logger.Info("help request created",
		zap.String("help_request_id", h.ID),
		zap.String("creator_id", creatorID),
		zap.String("urgency", urgency),
	)
	return h, nil
}

// ===========================
// List Help Requests with creator info and helper counts
func (s *Service) List(f ListFilters) ([]HelpRequest, error) {
	if f.Urgency != "" && !validUrgency(f.Urgency) {
		return nil, apperror.ValidationFailed("urgency", "urgency must be low, medium or high")
	}
	if f.Status != "" && !validStatus(f.Status) {
		return nil, apperror.ValidationFailed("status", "status must be open, in_progress or resolved")
	}

	requests, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]string, 0, len(requests))
	for i := range requests {
		creatorIDs = append(creatorIDs, requests[i].CreatorID)
	}
	people, err := s.Repo.GetPersonInfo(creatorIDs)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		if info, ok := people[requests[i].CreatorID]; ok {
			p := info
			requests[i].Creator = &p
		}
		count, _ := s.Repo.CountHelpers(requests[i].ID)
		requests[i].HelperCount = count
	}
	return requests, nil
}

// ===========================
// Get Help Request by ID
func (s *Service) GetByID(id string) (*HelpRequest, error) {
	h, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("help request", id)
		}
		return nil, err
	}

	people, err := s.Repo.GetPersonInfo([]string{h.CreatorID})
	if err != nil {
		return nil, err
	}
	if info, ok := people[h.CreatorID]; ok {
		h.Creator = &info
	}

	count, err := s.Repo.CountHelpers(id)
	if err != nil {
		return nil, err
	}
	h.HelperCount = count

	return h, nil
}

// ===========================
// Update Help Request (creator-only, zero-rows rule applies)
func (s *Service) Update(id, userID string, req *UpdateHelpRequestRequest) (*HelpRequest, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("help request", id)
		}
		return nil, err
	}

	if existing.CreatorID != userID {
		return nil, apperror.Forbidden("only the creator can update this help request")
	}

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
	if req.Urgency != nil {
		u := strings.ToLower(strings.TrimSpace(*req.Urgency))
		if !validUrgency(u) {
			return nil, apperror.ValidationFailed("urgency", "urgency must be low, medium or high")
		}
		fields["urgency"] = u
	}
	if req.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*req.Status))
		if !validStatus(st) {
			return nil, apperror.ValidationFailed("status", "status must be open, in_progress or resolved")
		}
		fields["status"] = st
	}

	rows, err := s.Repo.Update(id, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		s.Logger.Error("help request update matched no rows",
			zap.String("help_request_id", id),
			zap.String("user_id", userID),
		)
		return nil, apperror.Persistence("help request update was not applied")
	}

	return s.GetByID(id)
}

// ===========================
// Delete Help Request (creator-only)
func (s *Service) Delete(id, userID string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("help request", id)
		}
		return err
	}

	if existing.CreatorID != userID {
		return apperror.Forbidden("only the creator can delete this help request")
	}

	return s.Repo.Delete(id)
}

// ===========================
// Offer Help
//
// Idempotent per (request, user): a repeat offer returns the existing
// row. The first offer against an open request flips it to in_progress;
// the flip is best-effort and never fails the offer itself.
func (s *Service) OfferHelp(ctx context.Context, requestID string, actor Actor, req *OfferHelpRequest) (*Helper, bool, error) {
	h, err := s.Repo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperror.NotFound("help request", requestID)
		}
		return nil, false, err
	}

	existing, err := s.Repo.GetHelper(requestID, actor.UserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if _, err := s.ProfileSvc.EnsureProfile(actor.UserID, profile.IdentityHints{
		Email:    actor.Email,
		FullName: actor.Name,
	}); err != nil {
		return nil, false, err
	}

	helper := &Helper{
		HelpRequestID: requestID,
		UserID:        actor.UserID,
		Message:       req.Message,
	}
	if err := s.Repo.AddHelper(helper); err != nil {
		return nil, false, err
	}

	// re-read so a concurrent duplicate offer returns the surviving row
	row, err := s.Repo.GetHelper(requestID, actor.UserID)
	if err != nil {
		return nil, false, err
	}

	if h.Status == StatusOpen {
		if _, err := s.Repo.MarkInProgress(requestID); err != nil {
			s.Logger.Warn("help request status flip failed",
				zap.String("help_request_id", requestID),
				zap.Error(err),
			)
		}
	}

	s.ActivitySvc.Record(ctx, activity.RecordInput{
		UserID:        actor.UserID,
		ActorName:     actor.Name,
		Type:          activity.TypeHelpOffered,
		ResourceType:  "help_request",
		ResourceID:    h.ID,
		ResourceTitle: h.Title,
		TargetUserID:  h.CreatorID,
		IPAddress:     actor.IP,
	})

	return row, true, nil
}

// ===========================
// List Helpers with profiles, newest first
func (s *Service) ListHelpers(requestID string) ([]Helper, error) {
	if _, err := s.Repo.GetByID(requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("help request", requestID)
		}
		return nil, err
	}

	helpers, err := s.Repo.ListHelpers(requestID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(helpers))
	for i := range helpers {
		userIDs = append(userIDs, helpers[i].UserID)
	}
	people, err := s.Repo.GetPersonInfo(userIDs)
	if err != nil {
		return nil, err
	}
	for i := range helpers {
		if info, ok := people[helpers[i].UserID]; ok {
			p := info
			helpers[i].Profile = &p
		}
	}
	return helpers, nil
}

// ===========================
// Add Comment (profile materialized first so the comment is attributable)
func (s *Service) AddComment(ctx context.Context, requestID string, actor Actor, req *AddCommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	h, err := s.Repo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("help request", requestID)
		}
		return nil, err
	}

	p, err := s.ProfileSvc.EnsureProfile(actor.UserID, profile.IdentityHints{
		Email:    actor.Email,
		FullName: actor.Name,
	})
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		HelpRequestID: requestID,
		UserID:        actor.UserID,
		Content:       req.Content,
	}
	if err := s.Repo.AddComment(comment); err != nil {
		return nil, err
	}

	comment.Profile = &PersonInfo{
		UserID:   p.UserID,
		Username: p.Username,
		FullName: p.FullName,
	}

	s.ActivitySvc.Record(ctx, activity.RecordInput{
		UserID:        actor.UserID,
		ActorName:     actor.Name,
		Type:          activity.TypeCommentAdded,
		ResourceType:  "help_request",
		ResourceID:    h.ID,
		ResourceTitle: h.Title,
		TargetUserID:  h.CreatorID,
		IPAddress:     actor.IP,
	})

	return comment, nil
}

// ===========================
// List Comments with profiles, newest first
func (s *Service) ListComments(requestID string) ([]Comment, error) {
	if _, err := s.Repo.GetByID(requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("help request", requestID)
		}
		return nil, err
	}

	comments, err := s.Repo.ListComments(requestID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(comments))
	for i := range comments {
		userIDs = append(userIDs, comments[i].UserID)
	}
	people, err := s.Repo.GetPersonInfo(userIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if info, ok := people[comments[i].UserID]; ok {
			p := info
			comments[i].Profile = &p
		}
	}
	return comments, nil
}

func validUrgency(u string) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

func validStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}
