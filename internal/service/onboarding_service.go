package service

import (
	"context"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"
)

type OnboardingStatus struct {
	Stage              model.Stage `json:"stage"`
	NextStep           *string     `json:"nextStep"`
	Skills             []string    `json:"skills"`
	SkillsSelected     bool        `json:"skillsSelected"`
	QuizCompleted      bool        `json:"quizCompleted"`
	OnboardingComplete bool        `json:"onboardingComplete"`
	RecommendedField   model.Field `json:"recommendedField,omitempty"`
}

func StatusOf(l model.Learner) OnboardingStatus {
	st := OnboardingStatus{
		Stage:              l.Stage(),
		Skills:             l.Skills,
		SkillsSelected:     l.SkillsSelected(),
		QuizCompleted:      l.QuizCompleted(),
		OnboardingComplete: l.OnboardingComplete(),
	}
	if st.Skills == nil {
		st.Skills = []string{}
	}
	if next, ok := NextStep(l); ok {
		st.NextStep = &next
	}
	if field, ok := l.RecommendedField(); ok {
		st.RecommendedField = field
	}
	return st
}

type OnboardingService struct {
	Learners *LearnerService
	Catalog  *catalog.Provider
}

func NewOnboardingService(learners *LearnerService, cat *catalog.Provider) *OnboardingService {
	return &OnboardingService{Learners: learners, Catalog: cat}
}

func (s *OnboardingService) Status(ctx context.Context, learnerID string) (OnboardingStatus, error) {
	l, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return OnboardingStatus{}, err
	}
	return StatusOf(l), nil
}

// SkillOptions lists the selectable skills per field.
func (s *OnboardingService) SkillOptions() map[model.Field][]string {
	return s.Catalog.Current().SkillOptions()
}

func (s *OnboardingService) SelectSkills(ctx context.Context, learnerID string, skills []string) (OnboardingStatus, error) {
	return s.dispatch(ctx, learnerID, model.SelectSkills{Skills: skills})
}

// UpdateSkills is the profile edit of the skill list; it never moves onboarding.
func (s *OnboardingService) UpdateSkills(ctx context.Context, learnerID string, skills []string) (OnboardingStatus, error) {
	return s.dispatch(ctx, learnerID, model.UpdateSkills{Skills: skills})
}

// AcknowledgeResults completes onboarding once the learner has seen the quiz results.
func (s *OnboardingService) AcknowledgeResults(ctx context.Context, learnerID string) (OnboardingStatus, error) {
	return s.dispatch(ctx, learnerID, model.AcknowledgeResults{})
}

func (s *OnboardingService) dispatch(ctx context.Context, learnerID string, cmd model.Command) (OnboardingStatus, error) {
	l, err := s.Learners.Dispatch(ctx, learnerID, cmd)
	if err != nil {
		return OnboardingStatus{}, err
	}
	return StatusOf(l), nil
}
