package ports

import (
	"context"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

type NotificationService interface {
	List(ctx context.Context) []domain.Notification
	MarkRead(ctx context.Context, id int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context)
}
