package model

import (
	"fmt"
	"slices"
	"time"
)

// LearnerRecord is the flat, persisted form of a Learner.
type LearnerRecord struct {
	ID                     string       `json:"id"`
	Type                   UserType     `json:"type"`
	Name                   string       `json:"name"`
	Email                  string       `json:"email"`
	Skills                 []string     `json:"skills"`
	SkillsSelected         bool         `json:"skillsSelected"`
	QuizResults            *QuizResults `json:"quizResults,omitempty"`
	QuizCompleted          bool         `json:"quizCompleted"`
	RecommendedField       Field        `json:"recommendedField,omitempty"`
	OnboardingComplete     bool         `json:"onboardingComplete"`
	HasCompletedOnboarding bool         `json:"hasCompletedOnboarding"`
	CompletedTasks         []string     `json:"completedTasks"`
	CreatedAt              time.Time    `json:"createdAt"`
}

func (l Learner) Record() LearnerRecord {
	rec := LearnerRecord{
		ID:                 l.ID,
		Type:               l.Type,
		Name:               l.Name,
		Email:              l.Email,
		Skills:             slices.Clone(l.Skills),
		SkillsSelected:     l.SkillsSelected(),
		QuizCompleted:      l.QuizCompleted(),
		OnboardingComplete: l.OnboardingComplete(),
		CompletedTasks:     l.CompletedTasks(),
		CreatedAt:          l.CreatedAt,
	}
	rec.HasCompletedOnboarding = rec.OnboardingComplete
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	if results, ok := l.QuizResults(); ok {
		rec.QuizResults = &results
	}
	if field, ok := l.RecommendedField(); ok {
		rec.RecommendedField = field
	}
	return rec
}

// LearnerFromRecord rebuilds a Learner, keeping the furthest stage the record
// consistently supports. Inconsistencies are returned as issues for the caller to log.
func LearnerFromRecord(rec LearnerRecord) (Learner, []string) {
	var issues []string

	l := Learner{
		ID:        rec.ID,
		Type:      rec.Type,
		Name:      rec.Name,
		Email:     rec.Email,
		Skills:    normalizeSkills(rec.Skills),
		Progress:  NewLearner{},
		CreatedAt: rec.CreatedAt,
	}

	onboarded := rec.OnboardingComplete || rec.HasCompletedOnboarding
	if rec.OnboardingComplete != rec.HasCompletedOnboarding {
		issues = append(issues, "onboardingComplete and hasCompletedOnboarding disagree")
	}

	if !rec.SkillsSelected {
		if rec.QuizCompleted || onboarded {
			issues = append(issues, "later onboarding flags set without skillsSelected")
		}
		return l, appendTaskIssue(issues, rec)
	}
	l.Progress = SkillsSelected{}

	if !rec.QuizCompleted || rec.QuizResults == nil {
		if rec.QuizCompleted || rec.QuizResults != nil {
			issues = append(issues, "quizCompleted and quizResults disagree")
		}
		if onboarded {
			issues = append(issues, "onboarding marked complete without quiz results")
		}
		return l, appendTaskIssue(issues, rec)
	}

	field := rec.RecommendedField
	if field == "" {
		field = RecommendField(*rec.QuizResults)
		issues = append(issues, fmt.Sprintf("missing recommendedField, derived %q from results", field))
	}

	if !onboarded {
		l.Progress = QuizCompleted{Results: *rec.QuizResults, RecommendedField: field}
		return l, appendTaskIssue(issues, rec)
	}

	l.Progress = OnboardingComplete{
		Results:          *rec.QuizResults,
		RecommendedField: field,
		CompletedTasks:   dedupe(rec.CompletedTasks),
	}
	if len(l.CompletedTasks()) != len(rec.CompletedTasks) {
		issues = append(issues, "duplicate completed task ids removed")
	}
	return l, issues
}

func appendTaskIssue(issues []string, rec LearnerRecord) []string {
	if len(rec.CompletedTasks) > 0 {
		issues = append(issues, fmt.Sprintf("%d completed tasks dropped before onboarding completion", len(rec.CompletedTasks)))
	}
	return issues
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
