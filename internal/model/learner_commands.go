package model

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrNotStudent           = errors.New("onboarding applies to students only")
	ErrEmptySkills          = errors.New("at least one skill must be selected")
	ErrSkillsNotSelected    = errors.New("skills have not been selected")
	ErrQuizAlreadyCompleted = errors.New("quiz already completed")
	ErrQuizNotCompleted     = errors.New("quiz has not been completed")
	ErrOnboardingIncomplete = errors.New("onboarding is not complete")
	ErrUnknownField         = errors.New("unknown field")
	ErrEmptyTaskID          = errors.New("task id is required")
)

// Command is a learner mutation. Commands are the only way a Learner changes.
type Command interface {
	apply(l Learner) (Learner, []Event, error)
}

// Event reports something a command did that other components care about.
type Event interface {
	isEvent()
}

type QuizCompletedEvent struct {
	LearnerID string
	Results   QuizResults
	Field     Field
}

type TaskCompletedEvent struct {
	LearnerID string
	TaskID    string
}

func (QuizCompletedEvent) isEvent() {}
func (TaskCompletedEvent) isEvent() {}

// Apply returns the learner that results from cmd. The receiver is never modified.
func (l Learner) Apply(cmd Command) (Learner, []Event, error) {
	if cmd == nil {
		return l, nil, nil
	}
	next, events, err := cmd.apply(l.clone())
	if err != nil {
		return l, nil, err
	}
	return next, events, nil
}

// SelectSkills submits the skills step. Later submissions only replace the skills.
type SelectSkills struct {
	Skills []string
}

func (c SelectSkills) apply(l Learner) (Learner, []Event, error) {
	if !l.IsStudent() {
		return l, nil, ErrNotStudent
	}
	skills := normalizeSkills(c.Skills)
	if len(skills) == 0 {
		return l, nil, ErrEmptySkills
	}
	l.Skills = skills
	if l.Stage() == StageNotStarted {
		l.Progress = SkillsSelected{}
	}
	return l, nil, nil
}

// UpdateSkills is a profile edit. It never moves the stage.
type UpdateSkills struct {
	Skills []string
}

func (c UpdateSkills) apply(l Learner) (Learner, []Event, error) {
	l.Skills = normalizeSkills(c.Skills)
	return l, nil, nil
}

type RecordQuizResult struct {
	Results QuizResults
	Field   Field
}

func (c RecordQuizResult) apply(l Learner) (Learner, []Event, error) {
	if !l.IsStudent() {
		return l, nil, ErrNotStudent
	}
	switch l.Progress.(type) {
	case SkillsSelected:
	case QuizCompleted, OnboardingComplete:
		return l, nil, ErrQuizAlreadyCompleted
	default:
		return l, nil, ErrSkillsNotSelected
	}
	if len(l.Skills) == 0 {
		return l, nil, ErrSkillsNotSelected
	}
	if !c.Field.Valid() {
		return l, nil, ErrUnknownField
	}

	l.Progress = QuizCompleted{Results: c.Results, RecommendedField: c.Field}
	return l, []Event{QuizCompletedEvent{LearnerID: l.ID, Results: c.Results, Field: c.Field}}, nil
}

// AcknowledgeResults is the learner confirming the quiz results; it completes onboarding.
type AcknowledgeResults struct{}

func (AcknowledgeResults) apply(l Learner) (Learner, []Event, error) {
	if !l.IsStudent() {
		return l, nil, ErrNotStudent
	}
	switch p := l.Progress.(type) {
	case QuizCompleted:
		l.Progress = OnboardingComplete{
			Results:          p.Results,
			RecommendedField: p.RecommendedField,
			CompletedTasks:   []string{},
		}
	case OnboardingComplete:
	default:
		return l, nil, ErrQuizNotCompleted
	}
	return l, nil, nil
}

type CompleteTask struct {
	TaskID string
}

func (c CompleteTask) apply(l Learner) (Learner, []Event, error) {
	p, ok := l.Progress.(OnboardingComplete)
	if !ok {
		return l, nil, ErrOnboardingIncomplete
	}
	id := strings.TrimSpace(c.TaskID)
	if id == "" {
		return l, nil, ErrEmptyTaskID
	}
	if slices.Contains(p.CompletedTasks, id) {
		return l, nil, nil
	}
	p.CompletedTasks = append(p.CompletedTasks, id)
	l.Progress = p
	return l, []Event{TaskCompletedEvent{LearnerID: l.ID, TaskID: id}}, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
