package service

import (
	"context"
	"testing"
	"time"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store         *repository.MemoryStore
	catalog       *catalog.Provider
	learners      *LearnerService
	notifications *NotificationService
	assessment    *AssessmentService
	onboarding    *OnboardingService
	roadmap       *RoadmapService
	navigation    *NavigationService
	auth          *AuthService
	sessions      *repository.QuizSessionRepository
	views         *repository.ProgressViewRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	env := newTestEnvOn(t, store)
	env.store = store
	return env
}

// newTestEnvOn wires every service over store.
func newTestEnvOn(t *testing.T, store repository.KVStore) *testEnv {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	provider := catalog.NewStaticProvider(c)
	views := repository.NewProgressViewRepository(store)
	sessions := repository.NewQuizSessionRepository(store)
	notifications := NewNotificationService(repository.NewNotificationRepository(store), provider)
	learners := NewLearnerService(repository.NewLearnerRepository(store, 16), views, notifications)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}

	return &testEnv{
		catalog:       provider,
		learners:      learners,
		notifications: notifications,
		assessment:    NewAssessmentService(provider, sessions, learners),
		onboarding:    NewOnboardingService(learners, provider),
		roadmap:       NewRoadmapService(provider, learners),
		navigation:    NewNavigationService(learners),
		auth:          NewAuthService(repository.NewCredentialRepository(store), learners, sessions, notifications, cfg),
		sessions:      sessions,
		views:         views,
	}
}

func (e *testEnv) newStudent(t *testing.T, id string) model.Learner {
	t.Helper()
	return e.learners.Create(context.Background(),
		model.NewAccount(id, model.Student, "Student "+id, id+"@example.com", time.Now().UTC()))
}

// onboard walks a student through skills, quiz and acknowledgement.
func (e *testEnv) onboard(t *testing.T, id string, skills ...string) model.Learner {
	t.Helper()
	ctx := context.Background()
	e.newStudent(t, id)

	_, err := e.onboarding.SelectSkills(ctx, id, skills)
	require.NoError(t, err)
	state, err := e.assessment.StartQuiz(ctx, id)
	require.NoError(t, err)

	session, ok := e.sessions.Find(ctx, id)
	require.True(t, ok)
	answers := make(map[int]int, len(state.Questions))
	for i, q := range session.Questions {
		answers[i] = q.Correct
	}
	_, err = e.assessment.SubmitQuiz(ctx, id, answers)
	require.NoError(t, err)

	_, err = e.onboarding.AcknowledgeResults(ctx, id)
	require.NoError(t, err)

	l, err := e.learners.Get(ctx, id)
	require.NoError(t, err)
	return l
}
