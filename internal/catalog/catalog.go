package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"gopkg.in/yaml.v3"
)

// QuestionsPerField is how many questions each active pool contributes to a quiz.
const QuestionsPerField = 5

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the read-only input data for the assessment and the roadmaps.
type Catalog struct {
	Keywords  map[model.Field][]string             `yaml:"keywords"`
	Questions map[model.Field][]model.QuizQuestion `yaml:"questions"`
	Roadmaps  map[model.Field]Roadmap              `yaml:"roadmaps"`
}

// Roadmap lists a field's tasks in sections. Programming has frontend then backend;
// the other fields have a single section.
type Roadmap struct {
	Sections []Section   `yaml:"sections"`
	Skills   []SkillGroup `yaml:"skills"`
}

type Section struct {
	Name  string       `yaml:"name"`
	Tasks []model.Task `yaml:"tasks"`
}

// SkillGroup maps a skill shown on the dashboard to the tasks that teach it.
type SkillGroup struct {
	Name    string   `yaml:"name" json:"name"`
	TaskIDs []string `yaml:"tasks" json:"taskIds"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path means the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewConfigurationError("catalog", "read %s: %v", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, util.NewConfigurationError("catalog", "parse: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first problem that would stop the catalog from serving a quiz or a roadmap.
func (c *Catalog) Validate() error {
	seenQuestions := make(map[string]bool)
	for _, f := range model.Fields {
		if len(c.Keywords[f]) == 0 {
			return util.NewConfigurationError("catalog", "no skill keywords for %s", f)
		}

		pool := c.Questions[f]
		if len(pool) == 0 {
			return util.NewConfigurationError("catalog", "empty question pool for %s", f)
		}
		for _, q := range pool {
			if q.ID == "" {
				return util.NewConfigurationError("catalog", "question without id in %s pool", f)
			}
			if seenQuestions[q.ID] {
				return util.NewConfigurationError("catalog", "duplicate question id %q", q.ID)
			}
			seenQuestions[q.ID] = true
			if len(q.Options) < 2 {
				return util.NewConfigurationError("catalog", "question %q needs at least two options", q.ID)
			}
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				return util.NewConfigurationError("catalog", "question %q: correct index %d out of range", q.ID, q.Correct)
			}
		}

		if err := c.validateRoadmap(f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) validateRoadmap(f model.Field) error {
	tasks := c.Tasks(f)
	if len(tasks) == 0 {
		return util.NewConfigurationError("catalog", "empty roadmap for %s", f)
	}
	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || t.Title == "" {
			return util.NewConfigurationError("catalog", "%s roadmap has a task without id or title", f)
		}
		if ids[t.ID] {
			return util.NewConfigurationError("catalog", "duplicate task id %q in %s roadmap", t.ID, f)
		}
		if !t.Type.Valid() {
			return util.NewConfigurationError("catalog", "task %q has unknown type %q", t.ID, t.Type)
		}
		ids[t.ID] = true
	}
	for _, g := range c.Roadmaps[f].Skills {
		for _, id := range g.TaskIDs {
			if !ids[id] {
				return util.NewConfigurationError("catalog", "skill %q references unknown task %q in %s", g.Name, id, f)
			}
		}
	}
	return nil
}

// ActiveFields returns the fields whose keyword list intersects skills, in priority order.
func (c *Catalog) ActiveFields(skills []string) []model.Field {
	var active []model.Field
	for _, f := range model.Fields {
		for _, s := range skills {
			if slices.Contains(c.Keywords[f], s) {
				active = append(active, f)
				break
			}
		}
	}
	return active
}

// Pool returns the first n questions of a field's pool tagged with the field.
func (c *Catalog) Pool(f model.Field, n int) []model.TaggedQuestion {
	pool := c.Questions[f]
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]model.TaggedQuestion, 0, n)
	for _, q := range pool[:n] {
		q.Options = slices.Clone(q.Options)
		out = append(out, model.TaggedQuestion{QuizQuestion: q, Category: f})
	}
	return out
}

// Tasks flattens a field's roadmap sections in order.
func (c *Catalog) Tasks(f model.Field) []model.Task {
	var tasks []model.Task
	for _, s := range c.Roadmaps[f].Sections {
		tasks = append(tasks, s.Tasks...)
	}
	return tasks
}

func (c *Catalog) Task(f model.Field, id string) (model.Task, bool) {
	for _, t := range c.Tasks(f) {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// FindTask looks a task up in every roadmap.
func (c *Catalog) FindTask(id string) (model.Task, model.Field, bool) {
	for _, f := range model.Fields {
		if t, ok := c.Task(f, id); ok {
			return t, f, true
		}
	}
	return model.Task{}, "", false
}

func (c *Catalog) Skills(f model.Field) []SkillGroup {
	return c.Roadmaps[f].Skills
}

// SkillOptions returns the selectable skills grouped by field.
func (c *Catalog) SkillOptions() map[model.Field][]string {
	out := make(map[model.Field][]string, len(c.Keywords))
	for f, kws := range c.Keywords {
		out[f] = slices.Clone(kws)
	}
	return out
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d fields)", len(c.Roadmaps))
}
