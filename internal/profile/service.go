package profile

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

// Service wraps business logic for user profiles.
type Service struct {
	Repo   *Repository
	Logger *zap.Logger
}

func NewService(r *Repository, logger *zap.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

// ===========================
// Get Profile
func (s *Service) Get(userID string) (*Profile, error) {
	p, err := s.Repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile", userID)
		}
		return nil, err
	}
	return p, nil
}

// ===========================
// Create or Update Profile (upsert keyed by user id)
func (s *Service) CreateOrUpdate(userID string, req *UpdateProfileRequest) (*Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("missing user identity")
	}

	skills, err := toJSON(req.Skills)
	if err != nil {
		return nil, apperror.ValidationFailed("skills", "skills must be a list of strings")
	}
	causes, err := toJSON(req.Causes)
	if err != nil {
		return nil, apperror.ValidationFailed("causes", "causes must be a list of strings")
	}

	p := &Profile{
		UserID:   userID,
		Username: strings.TrimSpace(req.Username),
		FullName: strings.TrimSpace(req.FullName),
		Bio:      req.Bio,
		Skills:   skills,
		Causes:   causes,
	}

	if err := s.Repo.Upsert(p); err != nil {
		return nil, err
	}
	return s.Repo.GetByUserID(userID)
}

// ===========================
// Ensure Profile exists (lazy materialization)
//
// Attributed writes such as comments and help offers need a profile row.
// Returns the existing row when present, otherwise synthesizes one from
// whatever identity hints the session token carries.
func (s *Service) EnsureProfile(userID string, hints IdentityHints) (*Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("missing user identity")
	}

	existing, err := s.Repo.GetByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &Profile{
		UserID:   userID,
		Username: deriveUsername(userID, hints),
		FullName: hints.FullName,
	}

	if err := s.Repo.CreateIfAbsent(p); err != nil {
		return nil, err
	}
	s.Logger.Info("profile materialized",
		zap.String("user_id", userID),
		zap.String("username", p.Username),
	)

	// re-read so a concurrent winner's row is returned, not ours
	return s.Repo.GetByUserID(userID)
}

// deriveUsername picks the best available handle: explicit username,
// then full name, then the email local-part, then a uuid-derived stub.
func deriveUsername(userID string, hints IdentityHints) string {
	if u := strings.TrimSpace(hints.Username); u != "" {
		return u
	}
	if n := strings.TrimSpace(hints.FullName); n != "" {
		return n
	}
	if hints.Email != "" {
		if at := strings.Index(hints.Email, "@"); at > 0 {
			return hints.Email[:at]
		}
	}
	if len(userID) >= 8 {
		return "user_" + userID[:8]
	}
	return "user_" + userID
}

func toJSON(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
