package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/utils"
)

// Service interface for in-app notifications
type Service interface {
	CreateInApp(ctx context.Context, userID, title, message, category string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]InAppNotification, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type service struct {
	repo   *Repository
	logger *zap.Logger
}

func NewService(repo *Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// ===========================
// Create, then push to the user's live stream channel
func (s *service) CreateInApp(ctx context.Context, userID, title, message, category string) error {
	item := &InAppNotification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
	}

	if err := s.repo.Create(item); err != nil {
		return err
	}

	if utils.RedisClient != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"id":         item.ID,
			"title":      item.Title,
			"message":    item.Message,
			"category":   item.Category,
			"is_read":    item.IsRead,
			"created_at": item.CreatedAt,
		})
		channel := "notifications:user:" + userID
		if err := utils.RedisClient.Publish(ctx, channel, string(payload)).Err(); err != nil {
			s.logger.Warn("notification publish failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// ===========================
// List the bell feed
func (s *service) ListByUser(ctx context.Context, userID string, limit int) ([]InAppNotification, int64, error) {
	items, err := s.repo.ListByUser(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// ===========================
// Mark read (owner-only; missing row surfaces as not found)
func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	rows, err := s.repo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("notification", id)
	}
	return nil
}
