package service

import (
	"context"
	"sync"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/pkg/logger"
	"talentbridge_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EventPublisher receives the events produced by learner commands after the
// learner has been saved.
type EventPublisher interface {
	Publish(ctx context.Context, learner model.Learner, events []model.Event)
}

// LearnerService is the single write path for learner state.
type LearnerService struct {
	Repo      *repository.LearnerRepository
	Views     *repository.ProgressViewRepository
	Publisher EventPublisher

	mu sync.Mutex
}

func NewLearnerService(repo *repository.LearnerRepository, views *repository.ProgressViewRepository, publisher EventPublisher) *LearnerService {
	return &LearnerService{Repo: repo, Views: views, Publisher: publisher}
}

func (s *LearnerService) Get(ctx context.Context, id string) (model.Learner, error) {
	return s.Repo.FindByID(ctx, id)
}

// Create stores a new account. It is the only write that does not go through a command.
func (s *LearnerService) Create(ctx context.Context, l model.Learner) model.Learner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Repo.Save(ctx, l)
	return l
}

// Dispatch loads the learner, applies cmd, saves the result, refreshes the
// completed-tasks view and publishes the events, under one lock.
func (s *LearnerService) Dispatch(ctx context.Context, id string, cmd model.Command) (model.Learner, error) {
	ctx, span := tracing.StartSpan(ctx, "LearnerService.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("learner.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return model.Learner{}, err
	}

	next, events, err := current.Apply(cmd)
	if err != nil {
		logger.Log.Debug("Learner command rejected",
			zap.String("learner_id", id), zap.String("stage", string(current.Stage())), zap.Error(err))
		return current, err
	}

	if !s.Repo.Save(ctx, next) {
		logger.Log.Warn("Learner change held in memory until the store accepts it",
			zap.String("learner_id", id), zap.String("stage", string(next.Stage())))
	}
	if next.OnboardingComplete() && s.Views != nil {
		s.Views.Sync(ctx, next)
	}
	if len(events) > 0 && s.Publisher != nil {
		s.Publisher.Publish(ctx, next, events)
	}

	span.SetAttributes(attribute.String("learner.stage", string(next.Stage())))
	return next, nil
}

// Forget removes the learner and the views derived from it.
func (s *LearnerService) Forget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Repo.Delete(ctx, id)
	if s.Views != nil {
		s.Views.Delete(ctx, id)
	}
}
