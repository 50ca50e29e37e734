package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	l, err := env.auth.Register(ctx, RegisterRequest{Name: "Ada", Email: "Ada@Example.com", Password: "secret1", Type: model.Student})
	require.NoError(t, err)
	require.Equal(t, model.StageNotStarted, l.Stage())
	require.Equal(t, "ada@example.com", l.Email)

	_, err = env.auth.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret2", Type: model.Student})
	require.ErrorIs(t, err, util.ErrEmailRegistered)

	_, _, err = env.auth.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = env.auth.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, got, err := env.auth.Login(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, l.ID, got.ID)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, l.ID, claims.LearnerID)
	require.Equal(t, model.Student, claims.Type)
}

func TestConcurrentRegisterCreatesOneAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	const callers = 6
	learners := make([]model.Learner, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			learners[i], errs[i] = env.auth.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Type: model.Student})
		}(i)
	}
	wg.Wait()

	var winner model.Learner
	for i, err := range errs {
		if err == nil {
			require.Empty(t, winner.ID, "second account registered")
			winner = learners[i]
			continue
		}
		require.ErrorIs(t, err, util.ErrEmailRegistered)
	}
	require.NotEmpty(t, winner.ID)

	_, got, err := env.auth.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, winner.ID, got.ID)

	accounts := 0
	for _, k := range env.store.Keys() {
		if strings.HasPrefix(k, util.KeyLearnerPrefix) {
			accounts++
		}
	}
	require.Equal(t, 1, accounts)
}

func TestRegisterRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(context.Background(), RegisterRequest{Name: "X", Email: "x@example.com", Password: "secret1", Type: "admin"})
	require.ErrorIs(t, err, util.ErrInvalidUserType)
}

func TestDeleteAccountClearsEverything(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	l, err := env.auth.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Type: model.Student})
	require.NoError(t, err)
	_, err = env.onboarding.SelectSkills(ctx, l.ID, []string{"Figma"})
	require.NoError(t, err)
	_, err = env.assessment.StartQuiz(ctx, l.ID)
	require.NoError(t, err)
	_, err = env.assessment.SubmitQuiz(ctx, l.ID, map[int]int{})
	require.NoError(t, err)
	require.NotEmpty(t, env.notifications.List(ctx, l.ID))

	require.NoError(t, env.auth.DeleteAccount(ctx, l.ID))

	_, err = env.learners.Get(ctx, l.ID)
	require.ErrorIs(t, err, util.ErrLearnerNotFound)
	require.Empty(t, env.notifications.List(ctx, l.ID))
	_, _, err = env.auth.Login(ctx, "ada@example.com", "secret1")
	require.ErrorIs(t, err, util.ErrInvalidCredentials)

	require.Equal(t, []string{"notifications"}, env.store.Keys())
}
