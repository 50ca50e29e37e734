package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
)

// NotificationService turns learner events into notification records.
type NotificationService struct {
	Repo    *repository.NotificationRepository
	Catalog *catalog.Provider
	now     func() time.Time
}

func NewNotificationService(repo *repository.NotificationRepository, cat *catalog.Provider) *NotificationService {
	return &NotificationService{Repo: repo, Catalog: cat, now: time.Now}
}

func (s *NotificationService) Publish(ctx context.Context, learner model.Learner, events []model.Event) {
	for _, e := range events {
		n, ok := s.notificationFor(learner, e)
		if !ok {
			continue
		}
		if !s.Repo.Append(ctx, n) {
			logger.Log.Warn("Notification not persisted", zap.String("user_id", n.UserID), zap.String("title", n.Title))
		}
	}
}

func (s *NotificationService) notificationFor(learner model.Learner, e model.Event) (model.Notification, bool) {
	n := model.Notification{
		ID:        "notif_" + model.GenerateUUID(),
		UserID:    learner.ID,
		Timestamp: s.now().UTC(),
	}

	switch ev := e.(type) {
	case model.QuizCompletedEvent:
		n.Title = "Quiz Completed!"
		n.Message = fmt.Sprintf("You scored %d%%. Your recommended field is %s.", ev.Results.TotalScore, fieldTitle(ev.Field))
		n.Icon = "🎯"
	case model.TaskCompletedEvent:
		title := ev.TaskID
		if t, _, ok := s.Catalog.Current().FindTask(ev.TaskID); ok {
			title = t.Title
		}
		n.Title = "Task Completed! 🎉"
		n.Message = "Congratulations! You completed " + title
		n.Icon = "🎉"
	default:
		return model.Notification{}, false
	}
	return n, true
}

func (s *NotificationService) List(ctx context.Context, userID string) []model.Notification {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *NotificationService) Clear(ctx context.Context, userID string) {
	s.Repo.DeleteByUser(ctx, userID)
}

func fieldTitle(f model.Field) string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}
