package repository

import (
	"context"
	"sync"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizSession is the question set drawn for a learner, kept until submission so
// reloading the quiz shows the same questions.
type QuizSession struct {
	LearnerID string                 `json:"learnerId"`
	Questions []model.TaggedQuestion `json:"questions"`
	StartedAt time.Time              `json:"startedAt"`
}

// QuizSessionRepository keeps one open session per learner. Sessions whose write
// failed stay in pending so the learner can still submit against them.
type QuizSessionRepository struct {
	Store KVStore

	mu      sync.Mutex
	pending map[string]QuizSession
}

func NewQuizSessionRepository(store KVStore) *QuizSessionRepository {
	return &QuizSessionRepository{Store: store, pending: make(map[string]QuizSession)}
}

func quizSessionKey(learnerID string) string {
	return util.KeyQuizSessionPrefix + learnerID
}

func (r *QuizSessionRepository) Find(ctx context.Context, learnerID string) (QuizSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(ctx, learnerID)
}

// Start returns the learner's open session, or draws and saves a new one.
// Concurrent first calls get the same set.
func (r *QuizSessionRepository) Start(ctx context.Context, learnerID string, draw func() ([]model.TaggedQuestion, error)) (QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.find(ctx, learnerID); ok {
		return s, nil
	}
	questions, err := draw()
	if err != nil {
		return QuizSession{}, err
	}
	s := QuizSession{LearnerID: learnerID, Questions: questions, StartedAt: time.Now()}
	r.save(ctx, s)
	return s, nil
}

func (r *QuizSessionRepository) Save(ctx context.Context, s QuizSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, s)
}

func (r *QuizSessionRepository) Delete(ctx context.Context, learnerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, learnerID)
	if err := Remove(ctx, r.Store, quizSessionKey(learnerID)); err != nil {
		logStorageError(err)
	}
}

func (r *QuizSessionRepository) find(ctx context.Context, learnerID string) (QuizSession, bool) {
	if s, ok := r.pending[learnerID]; ok {
		if Put(ctx, r.Store, quizSessionKey(learnerID), s) {
			delete(r.pending, learnerID)
		}
		return s, true
	}
	s := Get(ctx, r.Store, quizSessionKey(learnerID), QuizSession{})
	return s, len(s.Questions) > 0
}

func (r *QuizSessionRepository) save(ctx context.Context, s QuizSession) bool {
	if Put(ctx, r.Store, quizSessionKey(s.LearnerID), s) {
		delete(r.pending, s.LearnerID)
		return true
	}
	r.pending[s.LearnerID] = s
	logger.Log.Warn("Quiz session held in memory until the store accepts it", zap.String("learner_id", s.LearnerID))
	return false
}
