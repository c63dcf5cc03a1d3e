package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

// NotificationRegistry is the in-memory store of dashboard notifications.
// All mutations are idempotent: re-marking a read notification changes nothing.
type NotificationRegistry struct {
	mu     sync.RWMutex
	notes  map[int64]*domain.Notification
	nextID int64

	logger zerolog.Logger
}

func NewNotificationRegistry(logger zerolog.Logger) *NotificationRegistry {
	return &NotificationRegistry{
		notes:  make(map[int64]*domain.Notification),
		logger: logger,
	}
}

// SeedDemoData installs the sample notifications the dashboard ships with.
func (r *NotificationRegistry) SeedDemoData() {
	r.Create("System Update", "System maintenance scheduled for tonight", "info", "admin")
	r.Create("Traffic Alert", "Heavy traffic detected on Main Street", "warning", "admin")
	n := r.Create("Simulation Complete", "Traffic simulation #123 has completed", "success", "admin")
	_, _ = r.MarkRead(context.Background(), n.ID)
}

// Create stores a new unread notification and returns a snapshot of it.
func (r *NotificationRegistry) Create(title, message, kind, userID string) *domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	note := &domain.Notification{
		ID:        r.nextID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
	}
	r.notes[note.ID] = note

	clone := *note
	return &clone
}

// List returns a point-in-time snapshot of all notifications.
func (r *NotificationRegistry) List(_ context.Context) []domain.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]domain.Notification, 0, len(r.notes))
	for _, n := range r.notes {
		notes = append(notes, *n)
	}
	return notes
}

// MarkRead flips one notification's read flag and returns the updated record,
// or ErrNotificationNotFound when the id does not exist.
func (r *NotificationRegistry) MarkRead(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	note.Read = true

	clone := *note
	return &clone, nil
}

// MarkAllRead flips every current notification to read. Notifications created
// afterwards start unread as normal.
func (r *NotificationRegistry) MarkAllRead(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, note := range r.notes {
		note.Read = true
	}
}
