package model

import (
	"slices"
	"time"
)

type UserType string

const (
	Student UserType = "student"
	Company UserType = "company"
)

func (t UserType) Valid() bool {
	return t == Student || t == Company
}

// Stage names the onboarding states a student moves through. Stages only advance.
type Stage string

const (
	StageNotStarted         Stage = "NOT_STARTED"
	StageSkillsSelected     Stage = "SKILLS_SELECTED"
	StageQuizCompleted      Stage = "QUIZ_COMPLETED"
	StageOnboardingComplete Stage = "ONBOARDING_COMPLETE"
)

// Progress is the onboarding state of a learner. Each variant carries only the
// data that exists at that stage.
type Progress interface {
	Stage() Stage
	isProgress()
}

type NewLearner struct{}

type SkillsSelected struct{}

type QuizCompleted struct {
	Results          QuizResults
	RecommendedField Field
}

type OnboardingComplete struct {
	Results          QuizResults
	RecommendedField Field
	CompletedTasks   []string
}

func (NewLearner) Stage() Stage         { return StageNotStarted }
func (SkillsSelected) Stage() Stage     { return StageSkillsSelected }
func (QuizCompleted) Stage() Stage      { return StageQuizCompleted }
func (OnboardingComplete) Stage() Stage { return StageOnboardingComplete }

func (NewLearner) isProgress()         {}
func (SkillsSelected) isProgress()     {}
func (QuizCompleted) isProgress()      {}
func (OnboardingComplete) isProgress() {}

// Learner is an account's state. Values are immutable: every change goes through Apply.
type Learner struct {
	ID        string
	Type      UserType
	Name      string
	Email     string
	Skills    []string
	Progress  Progress
	CreatedAt time.Time
}

// NewAccount returns the learner created at signup, with every onboarding flag false.
func NewAccount(id string, userType UserType, name, email string, now time.Time) Learner {
	return Learner{
		ID:        id,
		Type:      userType,
		Name:      name,
		Email:     email,
		Skills:    []string{},
		Progress:  NewLearner{},
		CreatedAt: now,
	}
}

func (l Learner) IsStudent() bool {
	return l.Type == Student
}

func (l Learner) Stage() Stage {
	if l.Progress == nil {
		return StageNotStarted
	}
	return l.Progress.Stage()
}

func (l Learner) SkillsSelected() bool {
	return l.Stage() != StageNotStarted
}

func (l Learner) QuizCompleted() bool {
	s := l.Stage()
	return s == StageQuizCompleted || s == StageOnboardingComplete
}

func (l Learner) OnboardingComplete() bool {
	return l.Stage() == StageOnboardingComplete
}

func (l Learner) QuizResults() (QuizResults, bool) {
	switch p := l.Progress.(type) {
	case QuizCompleted:
		return p.Results, true
	case OnboardingComplete:
		return p.Results, true
	}
	return QuizResults{}, false
}

func (l Learner) RecommendedField() (Field, bool) {
	switch p := l.Progress.(type) {
	case QuizCompleted:
		return p.RecommendedField, true
	case OnboardingComplete:
		return p.RecommendedField, true
	}
	return "", false
}

// CompletedTasks returns a copy of the completed task ids, empty before onboarding completes.
func (l Learner) CompletedTasks() []string {
	if p, ok := l.Progress.(OnboardingComplete); ok {
		return slices.Clone(p.CompletedTasks)
	}
	return []string{}
}

func (l Learner) HasCompletedTask(taskID string) bool {
	if p, ok := l.Progress.(OnboardingComplete); ok {
		return slices.Contains(p.CompletedTasks, taskID)
	}
	return false
}

func (l Learner) clone() Learner {
	c := l
	c.Skills = slices.Clone(l.Skills)
	if p, ok := l.Progress.(OnboardingComplete); ok {
		p.CompletedTasks = slices.Clone(p.CompletedTasks)
		c.Progress = p
	}
	if c.Progress == nil {
		c.Progress = NewLearner{}
	}
	return c
}
