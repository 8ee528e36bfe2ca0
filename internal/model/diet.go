package model

// Diet is a multi-day meal plan assigned to a user.
type Diet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Days      []DietDay `json:"days"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// DietDay is one calendar day within a diet. Days are not guaranteed to be
// stored in chronological order.
type DietDay struct {
	Date  *Timestamp `json:"date"`
	Meals []Meal     `json:"meals"`
}

// HasDate reports whether the day carries a date value at all. A malformed
// value still counts as present and normalises to the epoch.
func (d DietDay) HasDate() bool {
	return d.Date != nil && !d.Date.blank
}

// Meal is a single meal slot of a day.
type Meal struct {
	Type     string `json:"mealType"`
	Time     string `json:"time"`
	RecipeID string `json:"recipeId"`
}

// Metadata holds descriptive fields set when the diet was imported.
type Metadata struct {
	FileName  string `json:"fileName,omitempty"`
	TotalDays int    `json:"totalDays,omitempty"`
}

// UserFile is the top-level structure stored for each user in the local cache.
type UserFile struct {
	UserID   string    `json:"userId"`
	SyncedAt Timestamp `json:"syncedAt"`
	Diets    []Diet    `json:"diets"`
}
