package models

// Category splits the catalog into the two life-balance halves.
type Category string

const (
	CategoryFlow   Category = "Flow"
	CategoryMotion Category = "Motion"
)

func (c Category) Valid() bool {
	return c == CategoryFlow || c == CategoryMotion
}

// TaskDefinition is a master-catalog task. Every assignment references one.
type TaskDefinition struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Subcategory      string   `json:"subcategory"`
	DefaultIntensity int      `json:"default_intensity"`
	DefaultDuration  int      `json:"default_duration"` // minutes
}

// TaskDefinitionInput carries raw form values into the catalog service.
// Intensity/Duration stay strings so blank means "fill from taxonomy".
type TaskDefinitionInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Intensity   string `json:"intensity"`
	Duration    string `json:"duration"`
}
