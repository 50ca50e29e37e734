package model

// Field is one of the career tracks the assessment can recommend.
type Field string

const (
	FieldProgramming Field = "programming"
	FieldDesign      Field = "design"
	FieldMarketing   Field = "marketing"
)

// Fields lists every field in tie-break priority order.
var Fields = []Field{FieldProgramming, FieldDesign, FieldMarketing}

func (f Field) Valid() bool {
	switch f {
	case FieldProgramming, FieldDesign, FieldMarketing:
		return true
	}
	return false
}

func ParseField(s string) (Field, bool) {
	f := Field(s)
	return f, f.Valid()
}

// QuizResults holds the per-field percentages (0-100) and the aggregate score.
type QuizResults struct {
	Programming int `json:"programming"`
	Design      int `json:"design"`
	Marketing   int `json:"marketing"`
	TotalScore  int `json:"totalScore"`
}

func (r QuizResults) Score(f Field) int {
	switch f {
	case FieldProgramming:
		return r.Programming
	case FieldDesign:
		return r.Design
	case FieldMarketing:
		return r.Marketing
	}
	return 0
}

func (r *QuizResults) SetScore(f Field, v int) {
	switch f {
	case FieldProgramming:
		r.Programming = v
	case FieldDesign:
		r.Design = v
	case FieldMarketing:
		r.Marketing = v
	}
}

// RecommendField picks the field with the strictly highest percentage. Ties go to
// the earlier field in Fields, so the result is the same on every run.
func RecommendField(r QuizResults) Field {
	best := Fields[0]
	for _, f := range Fields[1:] {
		if r.Score(f) > r.Score(best) {
			best = f
		}
	}
	return best
}

// QuizQuestion is a static catalog entry. Correct indexes into Options.
type QuizQuestion struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Correct  int      `json:"correct" yaml:"correct"`
}

// TaggedQuestion is a question drawn into a learner's quiz set, labelled with its pool.
type TaggedQuestion struct {
	QuizQuestion `yaml:",inline"`
	Category     Field `json:"category" yaml:"category"`
}

// StudentQuestion is what the client sees: no correct answer.
type StudentQuestion struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Category Field    `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (q TaggedQuestion) ForStudent(index int) StudentQuestion {
	return StudentQuestion{
		Index:    index,
		ID:       q.ID,
		Category: q.Category,
		Question: q.Question,
		Options:  q.Options,
	}
}
