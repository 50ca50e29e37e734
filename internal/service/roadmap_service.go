package service

import (
	"context"
	"slices"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/monitoring"
)

type TaskProgress struct {
	model.Task
	Completed bool `json:"completed"`
}

type SkillProgress struct {
	Name       string `json:"name"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type ProgressReport struct {
	Field      model.Field     `json:"field"`
	Completed  int             `json:"completed"`
	Total      int             `json:"total"`
	Percentage int             `json:"percentage"`
	Tasks      []TaskProgress  `json:"tasks"`
	Skills     []SkillProgress `json:"skills"`
}

// Progress computes roadmap completion for a field. Completed ids outside the
// field's roadmap count toward nothing and are reported as integrity warnings.
func Progress(c *catalog.Catalog, field model.Field, completed []string) ProgressReport {
	if !field.Valid() || len(c.Tasks(field)) == 0 {
		util.WarnDataIntegrity("roadmap", "no roadmap for field %q, using %s", field, model.FieldProgramming)
		field = model.FieldProgramming
	}

	tasks := c.Tasks(field)
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	report := ProgressReport{
		Field: field,
		Total: len(tasks),
		Tasks: make([]TaskProgress, 0, len(tasks)),
	}
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
		tp := TaskProgress{Task: t, Completed: done[t.ID]}
		if tp.Completed {
			report.Completed++
		}
		report.Tasks = append(report.Tasks, tp)
	}
	report.Percentage = percent(report.Completed, report.Total)

	for _, id := range completed {
		if !known[id] {
			util.WarnDataIntegrity("roadmap", "completed task %q is not in the %s roadmap", id, field)
		}
	}

	report.Skills = make([]SkillProgress, 0, len(c.Skills(field)))
	for _, g := range c.Skills(field) {
		sp := SkillProgress{Name: g.Name, Total: len(g.TaskIDs)}
		for _, id := range g.TaskIDs {
			if done[id] {
				sp.Completed++
			}
		}
		sp.Percentage = percent(sp.Completed, sp.Total)
		report.Skills = append(report.Skills, sp)
	}
	return report
}

type RoadmapService struct {
	Catalog  *catalog.Provider
	Learners *LearnerService
}

func NewRoadmapService(cat *catalog.Provider, learners *LearnerService) *RoadmapService {
	return &RoadmapService{Catalog: cat, Learners: learners}
}

func (s *RoadmapService) Roadmap(ctx context.Context, learnerID string) (ProgressReport, error) {
	l, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return ProgressReport{}, err
	}
	if !l.OnboardingComplete() {
		return ProgressReport{}, model.ErrOnboardingIncomplete
	}
	field, _ := l.RecommendedField()
	return Progress(s.Catalog.Current(), field, l.CompletedTasks()), nil
}

// CompleteTask marks a roadmap task done. Ids outside the learner's roadmap are
// logged and ignored; repeats change nothing and notify nobody.
func (s *RoadmapService) CompleteTask(ctx context.Context, learnerID, taskID string) (ProgressReport, error) {
	l, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return ProgressReport{}, err
	}
	if !l.OnboardingComplete() {
		return ProgressReport{}, model.ErrOnboardingIncomplete
	}
	if taskID == "" {
		return ProgressReport{}, model.ErrEmptyTaskID
	}

	cat := s.Catalog.Current()
	field, _ := l.RecommendedField()
	report := Progress(cat, field, l.CompletedTasks())

	if !slices.ContainsFunc(report.Tasks, func(t TaskProgress) bool { return t.ID == taskID }) {
		util.WarnDataIntegrity("roadmap", "learner %s completed unknown task %q", learnerID, taskID)
		return report, nil
	}

	was := l.HasCompletedTask(taskID)
	l, err = s.Learners.Dispatch(ctx, learnerID, model.CompleteTask{TaskID: taskID})
	if err != nil {
		return ProgressReport{}, err
	}
	if !was {
		monitoring.TasksCompleted.WithLabelValues(string(report.Field)).Inc()
	}
	return Progress(cat, field, l.CompletedTasks()), nil
}
