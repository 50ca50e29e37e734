package repository

import (
	"context"
	"slices"
	"sync"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
)

// NotificationRepository appends to the shared notifications collection.
// The collection is one key, so appends are serialized in process.
type NotificationRepository struct {
	Store KVStore
	mu    sync.Mutex
}

func NewNotificationRepository(store KVStore) *NotificationRepository {
	return &NotificationRepository{Store: store}
}

func (r *NotificationRepository) all(ctx context.Context) []model.Notification {
	return Get(ctx, r.Store, util.KeyNotifications, []model.Notification{})
}

func (r *NotificationRepository) Append(ctx context.Context, n model.Notification) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.all(ctx), n)
	return Put(ctx, r.Store, util.KeyNotifications, list)
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) []model.Notification {
	r.mu.Lock()
	list := r.all(ctx)
	r.mu.Unlock()

	out := make([]model.Notification, 0)
	for _, n := range list {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	slices.Reverse(out)
	return out
}

func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := slices.DeleteFunc(r.all(ctx), func(n model.Notification) bool {
		return n.UserID == userID
	})
	Put(ctx, r.Store, util.KeyNotifications, list)
}
