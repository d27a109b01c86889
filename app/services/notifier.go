package services

import (
	"context"
	"log/slog"

	"picshare/app/events"
	"picshare/app/models"
	"picshare/app/repositories"
)

// notifier stores the notification derived from an interaction and then
// announces it. Publishing is best effort and only logged on failure.
type notifier struct {
	repo      repositories.NotificationRepository
	publisher events.Publisher
	logger    *slog.Logger
}

func newNotifier(repo repositories.NotificationRepository, publisher events.Publisher, logger *slog.Logger) *notifier {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &notifier{repo: repo, publisher: publisher, logger: logger}
}

// notify records payload from actor to recipient. Nothing is recorded when
// the two are the same user.
func (n *notifier) notify(ctx context.Context, actor, recipient int, payload models.Payload) error {
	if actor == recipient {
		return nil
	}

	record := models.NewNotification(actor, recipient, payload)
	record.BeforeCreate()
	if err := record.Validate(); err != nil {
		return storeError("Error creating notification", err)
	}
	if err := n.repo.Create(record); err != nil {
		n.logger.Error("notification not stored",
			"kind", record.Kind, "from", actor, "to", recipient, "error", err)
		return storeError("Error creating notification", err)
	}

	if err := n.publisher.PublishNotification(ctx, record); err != nil {
		n.logger.Warn("notification event not published",
			"id", record.ID, "kind", record.Kind, "from", actor, "to", recipient, "error", err)
	}
	return nil
}
