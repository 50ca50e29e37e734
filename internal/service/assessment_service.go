package service

import (
	"context"
	"math"
	"math/rand/v2"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"
	"talentbridge_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// MaxQuizQuestions caps the size of a drawn quiz.
const MaxQuizQuestions = 15

// BuildQuizSet draws the quiz for a skill set: the first questions of every
// active field's pool, or of all fields when none is active, shuffled and capped.
// The length is fixed by the catalog; the order changes on every call.
func BuildQuizSet(c *catalog.Catalog, skills []string) ([]model.TaggedQuestion, error) {
	fields := c.ActiveFields(skills)
	if len(fields) == 0 {
		fields = model.Fields
	}

	var set []model.TaggedQuestion
	for _, f := range fields {
		set = append(set, c.Pool(f, catalog.QuestionsPerField)...)
	}
	if len(set) == 0 {
		return nil, util.NewConfigurationError("assessment", "no questions available for fields %v", fields)
	}

	rand.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	if len(set) > MaxQuizQuestions {
		set = set[:MaxQuizQuestions]
	}
	return set, nil
}

// Score grades answers (question index -> option index) against set. Each field's
// percentage is out of the questions a field contributes to a full quiz; the total
// is out of the questions actually drawn.
func Score(set []model.TaggedQuestion, answers map[int]int) (model.QuizResults, model.Field, error) {
	if len(set) == 0 {
		return model.QuizResults{}, "", util.NewConfigurationError("assessment", "cannot score an empty question set")
	}

	correct := make(map[model.Field]int, len(model.Fields))
	total := 0
	for i, q := range set {
		chosen, ok := answers[i]
		if ok && chosen == q.Correct {
			correct[q.Category]++
			total++
		}
	}

	var results model.QuizResults
	for _, f := range model.Fields {
		results.SetScore(f, percent(correct[f], catalog.QuestionsPerField))
	}
	results.TotalScore = percent(total, len(set))

	return results, model.RecommendField(results), nil
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(of) * 100))
}

type QuizState struct {
	Completed        bool                    `json:"completed"`
	Questions        []model.StudentQuestion `json:"questions,omitempty"`
	Results          *model.QuizResults      `json:"results,omitempty"`
	RecommendedField model.Field             `json:"recommendedField,omitempty"`
}

type QuizResultsView struct {
	Results            model.QuizResults `json:"results"`
	RecommendedField   model.Field       `json:"recommendedField"`
	OnboardingComplete bool              `json:"onboardingComplete"`
}

type AssessmentService struct {
	Catalog  *catalog.Provider
	Sessions *repository.QuizSessionRepository
	Learners *LearnerService
}

func NewAssessmentService(cat *catalog.Provider, sessions *repository.QuizSessionRepository, learners *LearnerService) *AssessmentService {
	return &AssessmentService{Catalog: cat, Sessions: sessions, Learners: learners}
}

// StartQuiz returns the learner's quiz. The set is drawn once and kept until
// submission; a learner who already finished gets the results instead.
func (s *AssessmentService) StartQuiz(ctx context.Context, learnerID string) (QuizState, error) {
	learner, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return QuizState{}, err
	}
	if !learner.IsStudent() {
		return QuizState{}, model.ErrNotStudent
	}
	if results, ok := learner.QuizResults(); ok {
		field, _ := learner.RecommendedField()
		return QuizState{Completed: true, Results: &results, RecommendedField: field}, nil
	}
	if !learner.SkillsSelected() || len(learner.Skills) == 0 {
		return QuizState{}, model.ErrSkillsNotSelected
	}

	session, err := s.Sessions.Start(ctx, learnerID, func() ([]model.TaggedQuestion, error) {
		set, err := BuildQuizSet(s.Catalog.Current(), learner.Skills)
		if err == nil {
			logger.Log.Info("Quiz drawn", zap.String("learner_id", learnerID), zap.Int("questions", len(set)))
		}
		return set, err
	})
	if err != nil {
		return QuizState{}, err
	}

	questions := make([]model.StudentQuestion, len(session.Questions))
	for i, q := range session.Questions {
		questions[i] = q.ForStudent(i)
	}
	return QuizState{Questions: questions}, nil
}

// SubmitQuiz scores the stored quiz and records the result. It does not complete
// onboarding; the learner still has to acknowledge the results.
func (s *AssessmentService) SubmitQuiz(ctx context.Context, learnerID string, answers map[int]int) (QuizResultsView, error) {
	learner, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return QuizResultsView{}, err
	}
	if learner.QuizCompleted() {
		return QuizResultsView{}, model.ErrQuizAlreadyCompleted
	}

	session, ok := s.Sessions.Find(ctx, learnerID)
	if !ok {
		return QuizResultsView{}, util.ErrQuizNotStarted
	}

	results, field, err := Score(session.Questions, answers)
	if err != nil {
		return QuizResultsView{}, err
	}

	if _, err := s.Learners.Dispatch(ctx, learnerID, model.RecordQuizResult{Results: results, Field: field}); err != nil {
		return QuizResultsView{}, err
	}
	s.Sessions.Delete(ctx, learnerID)
	monitoring.QuizSubmissions.WithLabelValues(string(field)).Inc()

	logger.Log.Info("Quiz submitted",
		zap.String("learner_id", learnerID),
		zap.String("recommended_field", string(field)),
		zap.Int("total_score", results.TotalScore))

	return QuizResultsView{Results: results, RecommendedField: field}, nil
}

func (s *AssessmentService) Results(ctx context.Context, learnerID string) (QuizResultsView, error) {
	learner, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return QuizResultsView{}, err
	}
	results, ok := learner.QuizResults()
	if !ok {
		return QuizResultsView{}, model.ErrQuizNotCompleted
	}
	field, _ := learner.RecommendedField()
	return QuizResultsView{
		Results:            results,
		RecommendedField:   field,
		OnboardingComplete: learner.OnboardingComplete(),
	}, nil
}
