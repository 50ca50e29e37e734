package model

type TaskType string

const (
	TaskVideo  TaskType = "video"
	TaskCoding TaskType = "coding"
)

// Task is a static roadmap entry. Its field is implied by the roadmap that lists it.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Type        TaskType `json:"type" yaml:"type"`
	Track       string   `json:"track,omitempty" yaml:"track,omitempty"`
	YoutubeURL  string   `json:"youtubeUrl,omitempty" yaml:"youtube_url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func (t TaskType) Valid() bool {
	return t == TaskVideo || t == TaskCoding
}
