package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/handson-platform/handson-backend/utils"
)

// Service records volunteer activities. Recording is best-effort: a
// failed insert or publish never fails the operation that triggered it.
type Service interface {
	Record(ctx context.Context, in RecordInput)
	ListByUser(userID string, limit, offset int) ([]Activity, int64, error)
}

type service struct {
	repo   *Repository
	logger *zap.Logger
}

func NewService(repo *Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// ===========================
// Record one ledger entry and publish it to the activity stream
func (s *service) Record(ctx context.Context, in RecordInput) {
	entry := &Activity{
		UserID:        in.UserID,
		Type:          in.Type,
		ResourceType:  in.ResourceType,
		ResourceID:    in.ResourceID,
		ResourceTitle: in.ResourceTitle,
		IPAddress:     in.IPAddress,
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Warn("activity insert failed",
			zap.String("type", in.Type),
			zap.String("user_id", in.UserID),
			zap.Error(err),
		)
	}

	if err := utils.PublishActivity(ctx, in.UserID, in); err != nil {
		s.logger.Warn("activity publish failed",
			zap.String("type", in.Type),
			zap.Error(err),
		)
	}
}

// ===========================
// List a user's volunteer history
func (s *service) ListByUser(userID string, limit, offset int) ([]Activity, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	activities, err := s.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
