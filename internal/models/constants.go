package models

// ContentStatus константы статусов публикации
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Категории записей контента
const (
	CategoryBranding     = "branding"
	CategoryWebDesign    = "web-design"
	Category3DDesign     = "3d-design"
	CategoryUIUX         = "ui-ux"
	CategoryMotion       = "motion"
	CategoryIllustration = "illustration"
	CategoryDesign       = "design"
	CategoryMockup       = "mockup"
	CategoryOther        = "other"
)

// DefaultCategory используется, когда категория не указана.
const DefaultCategory = CategoryBranding

// ValidStatuses список валидных статусов
var ValidStatuses = map[string]struct{}{
	StatusDraft:     {},
	StatusPublished: {},
}

// ValidCategories список валидных категорий
var ValidCategories = map[string]struct{}{
	CategoryBranding:     {},
	CategoryWebDesign:    {},
	Category3DDesign:     {},
	CategoryUIUX:         {},
	CategoryMotion:       {},
	CategoryIllustration: {},
	CategoryDesign:       {},
	CategoryMockup:       {},
	CategoryOther:        {},
}
