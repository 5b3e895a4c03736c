package model

// Category represents a classification label applied to bookmarks.
// Deleting a category does not cascade; bookmarks referencing it keep
// the stale ID and render as uncategorized.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// NewCategoryParams holds parameters for creating a new Category.
type NewCategoryParams struct {
	Name  string
	Color string
	Icon  string
}

// NewCategory creates a Category with a generated UUID.
func NewCategory(params NewCategoryParams) Category {
	return Category{
		ID:    GenerateUUID(),
		Name:  params.Name,
		Color: params.Color,
		Icon:  params.Icon,
	}
}

// DefaultCategories returns the built-in category set used when no
// categories have been persisted yet.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Technology", Color: "#3B82F6", Icon: "💻"},
		{ID: "2", Name: "Education", Color: "#10B981", Icon: "🎓"},
		{ID: "3", Name: "Entertainment", Color: "#F59E0B", Icon: "🎬"},
		{ID: "4", Name: "News", Color: "#EF4444", Icon: "📰"},
		{ID: "5", Name: "Reference", Color: "#8B5CF6", Icon: "📖"},
		{ID: "6", Name: "Social Media", Color: "#EC4899", Icon: "💬"},
		{ID: "7", Name: "Productivity", Color: "#06B6D4", Icon: "⚡"},
		{ID: "8", Name: "Shopping", Color: "#F97316", Icon: "🛒"},
		{ID: "9", Name: "Travel", Color: "#14B8A6", Icon: "✈️"},
		{ID: "10", Name: "Other", Color: "#6B7280", Icon: "🔖"},
	}
}
