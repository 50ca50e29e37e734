package service

import (
	"context"
	"slices"
	"sync"
	"testing"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func countByField(set []model.TaggedQuestion) map[model.Field]int {
	out := make(map[model.Field]int)
	for _, q := range set {
		out[q.Category]++
	}
	return out
}

func TestBuildQuizSetUsesActiveFields(t *testing.T) {
	c := defaultCatalog(t)

	set, err := BuildQuizSet(c, []string{"HTML", "React"})
	require.NoError(t, err)
	require.Len(t, set, 5)
	require.Equal(t, map[model.Field]int{model.FieldProgramming: 5}, countByField(set))

	set, err = BuildQuizSet(c, []string{"Figma", "SEO"})
	require.NoError(t, err)
	require.Len(t, set, 10)
	require.Equal(t, map[model.Field]int{model.FieldDesign: 5, model.FieldMarketing: 5}, countByField(set))
}

func TestBuildQuizSetFallsBackToAllFields(t *testing.T) {
	set, err := BuildQuizSet(defaultCatalog(t), []string{"Cooking"})
	require.NoError(t, err)
	require.Len(t, set, MaxQuizQuestions)
	require.Equal(t, map[model.Field]int{
		model.FieldProgramming: 5,
		model.FieldDesign:      5,
		model.FieldMarketing:   5,
	}, countByField(set))
}

func questionIDs(set []model.TaggedQuestion) []string {
	ids := make([]string, len(set))
	for i, q := range set {
		ids[i] = q.ID
	}
	return ids
}

func TestBuildQuizSetReshufflesEveryCall(t *testing.T) {
	c := defaultCatalog(t)

	first, err := BuildQuizSet(c, nil)
	require.NoError(t, err)
	require.Len(t, first, MaxQuizQuestions)

	reordered := false
	for i := 0; i < 10; i++ {
		next, err := BuildQuizSet(c, nil)
		require.NoError(t, err)
		require.Len(t, next, MaxQuizQuestions)
		require.ElementsMatch(t, questionIDs(first), questionIDs(next))
		if !slices.Equal(questionIDs(first), questionIDs(next)) {
			reordered = true
		}
	}
	require.True(t, reordered, "ten draws came back in the same order")
}

func TestBuildQuizSetShortPool(t *testing.T) {
	c := defaultCatalog(t)
	c.Questions[model.FieldProgramming] = c.Questions[model.FieldProgramming][:2]

	set, err := BuildQuizSet(c, []string{"HTML"})
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Equal(t, map[model.Field]int{model.FieldProgramming: 2}, countByField(set))

	set, err = BuildQuizSet(c, []string{"Cooking"})
	require.NoError(t, err)
	require.Len(t, set, 12)
	require.Equal(t, map[model.Field]int{
		model.FieldProgramming: 2,
		model.FieldDesign:      5,
		model.FieldMarketing:   5,
	}, countByField(set))
}

func TestScoreShortQuiz(t *testing.T) {
	c := defaultCatalog(t)
	c.Questions[model.FieldProgramming] = c.Questions[model.FieldProgramming][:2]

	set, err := BuildQuizSet(c, []string{"HTML"})
	require.NoError(t, err)
	require.Len(t, set, 2)

	// Field scores stay out of a full field's share; the total is out of what was drawn.
	results, field, err := Score(set, map[int]int{0: set[0].Correct, 1: set[1].Correct})
	require.NoError(t, err)
	require.Equal(t, model.QuizResults{Programming: 40, TotalScore: 100}, results)
	require.Equal(t, model.FieldProgramming, field)

	results, _, err = Score(set, map[int]int{1: set[1].Correct})
	require.NoError(t, err)
	require.Equal(t, model.QuizResults{Programming: 20, TotalScore: 50}, results)
}

func TestBuildQuizSetEmptyCatalogIsConfigurationError(t *testing.T) {
	_, err := BuildQuizSet(&catalog.Catalog{}, []string{"HTML"})
	require.Error(t, err)
	require.True(t, util.IsConfigurationError(err))
}

func TestScoreEmptySetIsConfigurationError(t *testing.T) {
	_, _, err := Score(nil, map[int]int{0: 1})
	require.True(t, util.IsConfigurationError(err))
}

func TestScorePerField(t *testing.T) {
	set, err := BuildQuizSet(defaultCatalog(t), nil)
	require.NoError(t, err)

	answers := make(map[int]int)
	for i, q := range set {
		if q.Category == model.FieldDesign {
			answers[i] = q.Correct
		} else {
			answers[i] = (q.Correct + 1) % len(q.Options)
		}
	}

	results, field, err := Score(set, answers)
	require.NoError(t, err)
	require.Equal(t, 100, results.Design)
	require.Equal(t, 0, results.Programming)
	require.Equal(t, 0, results.Marketing)
	require.Equal(t, 33, results.TotalScore)
	require.Equal(t, model.FieldDesign, field)
}

func TestScoreRoundsAndBreaksTies(t *testing.T) {
	set, err := BuildQuizSet(defaultCatalog(t), []string{"HTML", "Figma"})
	require.NoError(t, err)

	// Four right per field: 80/80 tie goes to programming.
	seen := map[model.Field]int{}
	answers := make(map[int]int)
	for i, q := range set {
		seen[q.Category]++
		if seen[q.Category] <= 4 {
			answers[i] = q.Correct
		}
	}

	results, field, err := Score(set, answers)
	require.NoError(t, err)
	require.Equal(t, model.QuizResults{Programming: 80, Design: 80, Marketing: 0, TotalScore: 80}, results)
	require.Equal(t, model.FieldProgramming, field)
}

func TestScoreIgnoresOutOfRangeAnswers(t *testing.T) {
	set, err := BuildQuizSet(defaultCatalog(t), []string{"SEO"})
	require.NoError(t, err)

	results, _, err := Score(set, map[int]int{-1: 0, 99: 0, 0: 42})
	require.NoError(t, err)
	require.Equal(t, model.QuizResults{}, results)
}

func TestStartQuizKeepsTheSameSet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.newStudent(t, "s-1")

	_, err := env.assessment.StartQuiz(ctx, "s-1")
	require.ErrorIs(t, err, model.ErrSkillsNotSelected)

	_, err = env.onboarding.SelectSkills(ctx, "s-1", []string{"Figma"})
	require.NoError(t, err)

	first, err := env.assessment.StartQuiz(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, first.Questions, 5)
	second, err := env.assessment.StartQuiz(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, first, second)

	for i, q := range first.Questions {
		require.Equal(t, i, q.Index)
		require.Equal(t, model.FieldDesign, q.Category)
	}
}

func TestConcurrentStartQuizDrawsOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.newStudent(t, "s-1")
	_, err := env.onboarding.SelectSkills(ctx, "s-1", []string{"Cooking"})
	require.NoError(t, err)

	const callers = 8
	states := make([]QuizState, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i], errs[i] = env.assessment.StartQuiz(ctx, "s-1")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, states[0], states[i])
	}
	require.Len(t, states[0].Questions, MaxQuizQuestions)

	session, ok := env.sessions.Find(ctx, "s-1")
	require.True(t, ok)
	for i, q := range session.Questions {
		require.Equal(t, q.ID, states[0].Questions[i].ID)
	}
}

func TestSubmitQuizRecordsResultsWithoutCompletingOnboarding(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.newStudent(t, "s-1")

	_, err := env.onboarding.SelectSkills(ctx, "s-1", []string{"SEO"})
	require.NoError(t, err)

	_, err = env.assessment.SubmitQuiz(ctx, "s-1", nil)
	require.ErrorIs(t, err, util.ErrQuizNotStarted)

	_, err = env.assessment.StartQuiz(ctx, "s-1")
	require.NoError(t, err)
	session, ok := env.sessions.Find(ctx, "s-1")
	require.True(t, ok)

	answers := map[int]int{}
	for i, q := range session.Questions {
		answers[i] = q.Correct
	}
	view, err := env.assessment.SubmitQuiz(ctx, "s-1", answers)
	require.NoError(t, err)
	require.Equal(t, 100, view.Results.Marketing)
	require.Equal(t, model.FieldMarketing, view.RecommendedField)

	_, ok = env.sessions.Find(ctx, "s-1")
	require.False(t, ok, "session is cleared after submission")

	l, err := env.learners.Get(ctx, "s-1")
	require.NoError(t, err)
	require.True(t, l.QuizCompleted())
	require.False(t, l.OnboardingComplete())

	_, err = env.assessment.SubmitQuiz(ctx, "s-1", answers)
	require.ErrorIs(t, err, model.ErrQuizAlreadyCompleted)

	state, err := env.assessment.StartQuiz(ctx, "s-1")
	require.NoError(t, err)
	require.True(t, state.Completed)
	require.Equal(t, model.FieldMarketing, state.RecommendedField)

	results, err := env.assessment.Results(ctx, "s-1")
	require.NoError(t, err)
	require.False(t, results.OnboardingComplete)

	notes := env.notifications.List(ctx, "s-1")
	require.Len(t, notes, 1)
	require.Equal(t, "Quiz Completed!", notes[0].Title)
	require.Contains(t, notes[0].Message, "Marketing")
}

func TestResultsBeforeQuiz(t *testing.T) {
	env := newTestEnv(t)
	env.newStudent(t, "s-1")
	_, err := env.assessment.Results(context.Background(), "s-1")
	require.ErrorIs(t, err, model.ErrQuizNotCompleted)
}
