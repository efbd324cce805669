package entities

// Recipe rows are keyed by the id the recipe API assigned, so the primary
// key doubles as the uniqueness guard for the persisted collection.
type Recipe struct {
	ID                int64              `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title             string             `json:"title"`
	Image             string             `json:"image"`
	UsedIngredients   []RecipeIngredient `gorm:"serializer:json;type:jsonb" json:"usedIngredients"`
	MissedIngredients []RecipeIngredient `gorm:"serializer:json;type:jsonb" json:"missedIngredients"`
	Likes             int                `json:"likes"`

	Timestamp
}

type RecipeIngredient struct {
	Name     string `json:"name"`
	Original string `json:"original"`
	Image    string `json:"image"`
}
