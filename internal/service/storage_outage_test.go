package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/require"
)

// readOnlyStore serves reads from the memory store but rejects writes under
// prefixes while locked is set.
type readOnlyStore struct {
	*repository.MemoryStore
	prefixes []string
	locked   atomic.Bool
}

var errWritesRejected = errors.New("writes rejected")

func newReadOnlyStore(prefixes ...string) *readOnlyStore {
	return &readOnlyStore{MemoryStore: repository.NewMemoryStore(), prefixes: prefixes}
}

func (s *readOnlyStore) rejects(key string) bool {
	if !s.locked.Load() {
		return false
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (s *readOnlyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.rejects(key) {
		return errWritesRejected
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *readOnlyStore) Delete(ctx context.Context, key string) error {
	if s.rejects(key) {
		return errWritesRejected
	}
	return s.MemoryStore.Delete(ctx, key)
}

func taskNotifications(env *testEnv, userID string) []model.Notification {
	var out []model.Notification
	for _, n := range env.notifications.List(context.Background(), userID) {
		if n.Title == "Task Completed! 🎉" {
			out = append(out, n)
		}
	}
	return out
}

func TestCompleteTaskWhileLearnerWritesFail(t *testing.T) {
	ctx := context.Background()
	store := newReadOnlyStore(util.KeyLearnerPrefix, util.KeyQuizSessionPrefix)
	env := newTestEnvOn(t, store)
	env.onboard(t, "s-1", "Figma")

	store.locked.Store(true)
	for i := 0; i < 2; i++ {
		report, err := env.roadmap.CompleteTask(ctx, "s-1", "figma_intro")
		require.NoError(t, err)
		require.Equal(t, 1, report.Completed)
	}

	l, err := env.learners.Get(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, []string{"figma_intro"}, l.CompletedTasks())
	require.Len(t, taskNotifications(env, "s-1"), 1)

	// The stored record is still the old one until a write goes through.
	stale, err := repository.NewLearnerRepository(store, 4).FindByID(ctx, "s-1")
	require.NoError(t, err)
	require.Empty(t, stale.CompletedTasks())

	store.locked.Store(false)
	_, err = env.learners.Get(ctx, "s-1")
	require.NoError(t, err)
	stored, err := repository.NewLearnerRepository(store, 4).FindByID(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, []string{"figma_intro"}, stored.CompletedTasks())
}

func TestAcknowledgeResultsWhileLearnerWritesFail(t *testing.T) {
	ctx := context.Background()
	store := newReadOnlyStore(util.KeyLearnerPrefix)
	env := newTestEnvOn(t, store)
	env.newStudent(t, "s-2")

	_, err := env.onboarding.SelectSkills(ctx, "s-2", []string{"SEO"})
	require.NoError(t, err)
	_, err = env.assessment.StartQuiz(ctx, "s-2")
	require.NoError(t, err)
	_, err = env.assessment.SubmitQuiz(ctx, "s-2", nil)
	require.NoError(t, err)

	store.locked.Store(true)
	st, err := env.onboarding.AcknowledgeResults(ctx, "s-2")
	require.NoError(t, err)
	require.True(t, st.OnboardingComplete)

	st, err = env.onboarding.Status(ctx, "s-2")
	require.NoError(t, err)
	require.True(t, st.OnboardingComplete)
	require.Equal(t, model.StageOnboardingComplete, st.Stage)

	d, err := env.navigation.AuthorizePath(ctx, "s-2", PathRoadmap)
	require.NoError(t, err)
	require.True(t, d.Allow)
}

func TestQuizRunsWhileSessionWritesFail(t *testing.T) {
	ctx := context.Background()
	store := newReadOnlyStore(util.KeyLearnerPrefix, util.KeyQuizSessionPrefix)
	env := newTestEnvOn(t, store)
	env.newStudent(t, "s-3")
	_, err := env.onboarding.SelectSkills(ctx, "s-3", []string{"HTML"})
	require.NoError(t, err)

	store.locked.Store(true)
	first, err := env.assessment.StartQuiz(ctx, "s-3")
	require.NoError(t, err)
	require.Len(t, first.Questions, 5)
	second, err := env.assessment.StartQuiz(ctx, "s-3")
	require.NoError(t, err)
	require.Equal(t, first, second)

	session, ok := env.sessions.Find(ctx, "s-3")
	require.True(t, ok)
	answers := make(map[int]int, len(session.Questions))
	for i, q := range session.Questions {
		answers[i] = q.Correct
	}
	view, err := env.assessment.SubmitQuiz(ctx, "s-3", answers)
	require.NoError(t, err)
	require.Equal(t, 100, view.Results.Programming)

	results, err := env.assessment.Results(ctx, "s-3")
	require.NoError(t, err)
	require.Equal(t, model.FieldProgramming, results.RecommendedField)
}
