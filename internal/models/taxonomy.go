package models

// SubcategoryDefaults are the taxonomy-level defaults applied when a master
// task is created without explicit values.
type SubcategoryDefaults struct {
	Duration  int `json:"duration"`
	Intensity int `json:"intensity"`
}

// The taxonomy is fixed: changing it is a code change, not a runtime one.
var flowSubcategories = map[string]SubcategoryDefaults{
	"Deep Work":                    {Duration: 8, Intensity: 7},
	"Meetings & Collaboration":     {Duration: 6, Intensity: 5},
	"Creative Work":                {Duration: 7, Intensity: 8},
	"Planning & Organization":      {Duration: 5, Intensity: 4},
	"Learning & Skill Development": {Duration: 6, Intensity: 6},
}

var motionSubcategories = map[string]SubcategoryDefaults{
	"Cardio & Endurance":         {Duration: 7, Intensity: 8},
	"Strength & Resistance":      {Duration: 6, Intensity: 9},
	"Flexibility & Recovery":     {Duration: 5, Intensity: 4},
	"Sports & Recreation":        {Duration: 8, Intensity: 7},
	"Outdoor & Active Lifestyle": {Duration: 7, Intensity: 6},
}

var subcategoryOrder = map[Category][]string{
	CategoryFlow: {
		"Deep Work",
		"Meetings & Collaboration",
		"Creative Work",
		"Planning & Organization",
		"Learning & Skill Development",
	},
	CategoryMotion: {
		"Cardio & Endurance",
		"Strength & Resistance",
		"Flexibility & Recovery",
		"Sports & Recreation",
		"Outdoor & Active Lifestyle",
	},
}

// TaxonomyFor returns the subcategory table for a category, or nil for an
// unknown category.
func TaxonomyFor(c Category) map[string]SubcategoryDefaults {
	switch c {
	case CategoryFlow:
		return flowSubcategories
	case CategoryMotion:
		return motionSubcategories
	}
	return nil
}

// DefaultsFor looks up the taxonomy defaults for a (category, subcategory)
// pair. ok is false when the pair is not part of the taxonomy.
func DefaultsFor(c Category, subcategory string) (SubcategoryDefaults, bool) {
	table := TaxonomyFor(c)
	if table == nil {
		return SubcategoryDefaults{}, false
	}
	d, ok := table[subcategory]
	return d, ok
}

// Subcategories lists the valid subcategory names for a category in display
// order, for UI dropdowns and error messages.
func Subcategories(c Category) []string {
	return subcategoryOrder[c]
}
