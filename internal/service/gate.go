package service

import (
	"net/url"

	"talentbridge_backend/internal/model"
)

const (
	PathHome            = "/"
	PathSkillsSelection = "/skills-selection"
	PathQuiz            = "/quiz"
	PathRoadmap         = "/roadmap"
	PathLogin           = "/?login=true"
	PathLoginPostJob    = "/?login=true&postJob=true"
)

// NextStep returns the onboarding step a student must complete next, if any.
// Empty skills count as skills pending even after the selection was submitted.
func NextStep(l model.Learner) (string, bool) {
	if !l.IsStudent() || l.OnboardingComplete() {
		return "", false
	}
	if !l.SkillsSelected() || len(l.Skills) == 0 {
		return PathSkillsSelection, true
	}
	if !l.QuizCompleted() {
		return PathQuiz, true
	}
	// Quiz done but not acknowledged: the results screen must not loop.
	return "", false
}

// CanAccess reports whether a learner may open path. Students mid-onboarding
// may only open the onboarding steps.
func CanAccess(l model.Learner, path string) bool {
	if !l.IsStudent() || l.OnboardingComplete() {
		return true
	}
	return path == PathSkillsSelection || path == PathQuiz
}

// Decision is the outcome of one navigation check.
type Decision struct {
	Allow      bool    `json:"allow"`
	RedirectTo *string `json:"redirectTo"`
	Pending    bool    `json:"pending,omitempty"`
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: &to}
}

// Authorize applies the onboarding checks for a student route: the forced next
// step first, then the access predicate with the skills step as fallback. It
// redirects at most once and never to the path being requested.
func Authorize(l model.Learner, path string) Decision {
	next, hasNext := NextStep(l)
	if hasNext && next != path {
		return redirect(next)
	}

	if !CanAccess(l, path) {
		target := PathSkillsSelection
		if hasNext {
			target = next
		}
		if target != path {
			return redirect(target)
		}
	}
	return allow()
}

// Access is the requirement a page puts on the session.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessStudent
	AccessCompany
)

type Route struct {
	Path   string
	Access Access
	// LoginRedirect overrides PathLogin for unauthenticated visitors.
	LoginRedirect string
}

// Routes is the page table of the web app. Paths not listed are public.
var Routes = []Route{
	{Path: "/", Access: AccessPublic},
	{Path: "/jobs", Access: AccessPublic},
	{Path: "/leaderboard", Access: AccessPublic},
	{Path: "/settings", Access: AccessPublic},
	{Path: "/profile", Access: AccessAuthenticated},
	{Path: "/dashboard", Access: AccessStudent},
	{Path: PathSkillsSelection, Access: AccessStudent},
	{Path: PathQuiz, Access: AccessStudent},
	{Path: PathRoadmap, Access: AccessStudent},
	{Path: "/community", Access: AccessStudent},
	{Path: "/messages", Access: AccessStudent},
	{Path: "/company/dashboard", Access: AccessCompany},
	{Path: "/company/post-job", Access: AccessCompany, LoginRedirect: PathLoginPostJob},
	{Path: "/company/inbox", Access: AccessCompany, LoginRedirect: PathLoginPostJob},
}

// LookupRoute finds the rule for path, ignoring any query string.
func LookupRoute(path string) Route {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	}
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: path, Access: AccessPublic}
}

// Session is what the shell knows about the visitor when a page is requested.
type Session struct {
	Loading       bool
	Authenticated bool
	Learner       *model.Learner
}

// AuthorizeSession is the full shell check for one page request.
func AuthorizeSession(s Session, path string) Decision {
	if s.Loading {
		return Decision{Pending: true}
	}

	route := LookupRoute(path)
	if route.Access == AccessPublic {
		return allow()
	}

	if !s.Authenticated || s.Learner == nil {
		if route.LoginRedirect != "" {
			return redirect(route.LoginRedirect)
		}
		return redirect(PathLogin)
	}

	l := *s.Learner
	switch route.Access {
	case AccessStudent:
		if !l.IsStudent() {
			return redirect(PathHome)
		}
		return Authorize(l, route.Path)
	case AccessCompany:
		if l.Type != model.Company {
			return redirect(PathHome)
		}
	}
	return allow()
}
