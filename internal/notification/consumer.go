package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/handson-platform/handson-backend/config"
	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/utils"
)

// StartKafkaConsumer fans activity events into in-app notifications for
// the owner of the touched resource. Runs until the process exits.
func StartKafkaConsumer(cfg *config.Config, svc Service, logger *zap.Logger) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka notification consumer disabled")
		return
	}

	reader := utils.NewActivityReader(cfg, "handson-notifications")

	go func() {
		defer reader.Close()
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				logger.Error("activity consumer stopped", zap.Error(err))
				return
			}

			var ev activity.RecordInput
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				logger.Warn("skipping malformed activity event", zap.Error(err))
				continue
			}

			// no self-notifications, no events without an owner to notify
			if ev.TargetUserID == "" || ev.TargetUserID == ev.UserID {
				continue
			}

			title, message, category := describeActivity(ev)
			if title == "" {
				continue
			}

			if err := svc.CreateInApp(context.Background(), ev.TargetUserID, title, message, category); err != nil {
				logger.Warn("notification create failed",
					zap.String("target_user_id", ev.TargetUserID),
					zap.Error(err),
				)
			}
		}
	}()
}

func describeActivity(ev activity.RecordInput) (title, message, category string) {
	actor := ev.ActorName
	if actor == "" {
		actor = "A volunteer"
	}

	switch ev.Type {
	case activity.TypeEventRegistered:
		return "New registration", actor + " registered for " + ev.ResourceTitle, "event"
	case activity.TypeEventCanceled:
		return "Registration canceled", actor + " canceled their spot for " + ev.ResourceTitle, "event"
	case activity.TypeHelpOffered:
		return "New help offer", actor + " offered to help with " + ev.ResourceTitle, "help_request"
	case activity.TypeCommentAdded:
		return "New comment", actor + " commented on " + ev.ResourceTitle, "help_request"
	default:
		return "", "", ""
	}
}
