package service

import (
	"context"
	"errors"

	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"
	"talentbridge_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// NavigationService answers page authorization requests from the web app.
type NavigationService struct {
	Learners *LearnerService
}

func NewNavigationService(learners *LearnerService) *NavigationService {
	return &NavigationService{Learners: learners}
}

// AuthorizePath resolves the session for learnerID (empty for anonymous
// visitors) and decides whether path may be shown.
func (s *NavigationService) AuthorizePath(ctx context.Context, learnerID, path string) (Decision, error) {
	session := Session{}
	if learnerID != "" {
		l, err := s.Learners.Get(ctx, learnerID)
		switch {
		case err == nil:
			session.Authenticated = true
			session.Learner = &l
		case errors.Is(err, util.ErrLearnerNotFound):
			// A token for a deleted account is an anonymous visit.
		default:
			return Decision{}, err
		}
	}

	d := AuthorizeSession(session, path)
	record(d, path)
	return d, nil
}

func record(d Decision, path string) {
	outcome := "allow"
	switch {
	case d.Pending:
		outcome = "pending"
	case d.RedirectTo != nil && (*d.RedirectTo == PathLogin || *d.RedirectTo == PathLoginPostJob):
		outcome = "login"
	case d.RedirectTo != nil:
		outcome = "redirect"
	}
	monitoring.GateDecisions.WithLabelValues(outcome, routeLabel(path)).Inc()

	if d.RedirectTo != nil {
		logger.Log.Debug("Navigation redirected", zap.String("path", path), zap.String("redirect_to", *d.RedirectTo))
	}
}

// routeLabel keeps metric labels to the known page table.
func routeLabel(path string) string {
	route := LookupRoute(path)
	for _, r := range Routes {
		if r.Path == route.Path {
			return r.Path
		}
	}
	return "other"
}
