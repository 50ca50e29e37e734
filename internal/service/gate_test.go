package service

import (
	"testing"
	"time"

	"talentbridge_backend/internal/model"

	"github.com/stretchr/testify/require"
)

func student(t *testing.T, cmds ...model.Command) model.Learner {
	t.Helper()
	l := model.NewAccount("s-1", model.Student, "S", "s@example.com", time.Now())
	for _, cmd := range cmds {
		var err error
		l, _, err = l.Apply(cmd)
		require.NoError(t, err)
	}
	return l
}

var (
	pickHTML    = model.SelectSkills{Skills: []string{"HTML"}}
	passQuiz    = model.RecordQuizResult{Results: model.QuizResults{Programming: 100, TotalScore: 33}, Field: model.FieldProgramming}
	acknowledge = model.AcknowledgeResults{}
)

func requireRedirect(t *testing.T, d Decision, to string) {
	t.Helper()
	require.False(t, d.Allow)
	require.NotNil(t, d.RedirectTo)
	require.Equal(t, to, *d.RedirectTo)
}

func requireAllow(t *testing.T, d Decision) {
	t.Helper()
	require.True(t, d.Allow)
	require.Nil(t, d.RedirectTo)
}

func TestNextStep(t *testing.T) {
	step, ok := NextStep(student(t))
	require.True(t, ok)
	require.Equal(t, PathSkillsSelection, step)

	step, ok = NextStep(student(t, pickHTML))
	require.True(t, ok)
	require.Equal(t, PathQuiz, step)

	_, ok = NextStep(student(t, pickHTML, passQuiz))
	require.False(t, ok, "results screen must not be forced away")

	_, ok = NextStep(student(t, pickHTML, passQuiz, acknowledge))
	require.False(t, ok)

	company := model.NewAccount("c-1", model.Company, "Acme", "hr@acme.io", time.Now())
	_, ok = NextStep(company)
	require.False(t, ok)
}

func TestNextStepTreatsEmptySkillsAsPending(t *testing.T) {
	l := student(t, pickHTML, model.UpdateSkills{})
	require.True(t, l.SkillsSelected())

	step, ok := NextStep(l)
	require.True(t, ok)
	require.Equal(t, PathSkillsSelection, step)
}

func TestCanAccess(t *testing.T) {
	mid := student(t, pickHTML)
	require.True(t, CanAccess(mid, PathSkillsSelection))
	require.True(t, CanAccess(mid, PathQuiz))
	require.False(t, CanAccess(mid, PathRoadmap))
	require.False(t, CanAccess(mid, "/dashboard"))

	done := student(t, pickHTML, passQuiz, acknowledge)
	require.True(t, CanAccess(done, PathRoadmap))

	company := model.NewAccount("c-1", model.Company, "Acme", "hr@acme.io", time.Now())
	require.True(t, CanAccess(company, PathRoadmap))
}

func TestAuthorizeScenarios(t *testing.T) {
	requireRedirect(t, Authorize(student(t), PathRoadmap), PathSkillsSelection)
	requireAllow(t, Authorize(student(t, pickHTML), PathQuiz))
	requireRedirect(t, Authorize(student(t, pickHTML), PathSkillsSelection), PathQuiz)

	done := student(t, pickHTML, passQuiz, acknowledge)
	for _, path := range []string{PathRoadmap, PathQuiz, PathSkillsSelection, "/dashboard", "/community", "/messages"} {
		requireAllow(t, Authorize(done, path))
	}
}

func TestAuthorizeNeverRedirectsToItself(t *testing.T) {
	requireAllow(t, Authorize(student(t), PathSkillsSelection))

	// Quiz finished, not acknowledged: no forced step, deep links fall back to skills.
	pending := student(t, pickHTML, passQuiz)
	requireAllow(t, Authorize(pending, PathQuiz))
	requireAllow(t, Authorize(pending, PathSkillsSelection))
	requireRedirect(t, Authorize(pending, PathRoadmap), PathSkillsSelection)
}

func TestAuthorizeSession(t *testing.T) {
	require.Equal(t, Decision{Pending: true}, AuthorizeSession(Session{Loading: true}, PathRoadmap))

	requireRedirect(t, AuthorizeSession(Session{}, PathRoadmap), PathLogin)
	requireRedirect(t, AuthorizeSession(Session{}, "/company/post-job"), PathLoginPostJob)
	requireRedirect(t, AuthorizeSession(Session{}, "/company/inbox"), PathLoginPostJob)
	requireRedirect(t, AuthorizeSession(Session{}, "/profile"), PathLogin)
	requireAllow(t, AuthorizeSession(Session{}, "/jobs"))
	requireAllow(t, AuthorizeSession(Session{}, "/no-such-page"))

	company := model.NewAccount("c-1", model.Company, "Acme", "hr@acme.io", time.Now())
	companySession := Session{Authenticated: true, Learner: &company}
	requireRedirect(t, AuthorizeSession(companySession, PathRoadmap), PathHome)
	requireAllow(t, AuthorizeSession(companySession, "/company/dashboard"))
	requireAllow(t, AuthorizeSession(companySession, "/profile"))

	fresh := student(t)
	studentSession := Session{Authenticated: true, Learner: &fresh}
	requireRedirect(t, AuthorizeSession(studentSession, "/company/dashboard"), PathHome)
	requireRedirect(t, AuthorizeSession(studentSession, "/roadmap?tab=all"), PathSkillsSelection)
	requireAllow(t, AuthorizeSession(studentSession, "/profile"))
}
