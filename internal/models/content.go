package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind различает виды записей контента.
type Kind string

const (
	KindProject  Kind = "project"
	KindAiSector Kind = "ai_sector"
)

// PublicPathSegment возвращает сегмент публичного URL для вида записи.
func (k Kind) PublicPathSegment() string {
	if k == KindAiSector {
		return "ai-sector"
	}
	return "portfolio"
}

// UploadPrefix возвращает префикс имени загружаемого файла для вида записи.
func (k Kind) UploadPrefix() string {
	if k == KindAiSector {
		return "ai-sector"
	}
	return "project"
}

// ContentRecord описывает запись контента: проект портфолио или AI-кейс.
// Обе сущности имеют одинаковую форму и хранятся в одной таблице с колонкой kind.
type ContentRecord struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	Kind             Kind           `db:"kind" json:"-"`
	Title            string         `db:"title" json:"title"`
	Slug             string         `db:"slug" json:"slug"`
	Description      string         `db:"description" json:"description"`
	ShortDescription *string        `db:"short_description" json:"shortDescription,omitempty"`
	Category         string         `db:"category" json:"category"`
	Tags             []string       `db:"-" json:"tags"`
	Thumbnail        *string        `db:"thumbnail" json:"thumbnail,omitempty"`
	Images           []string       `db:"-" json:"images"`
	Client           *string        `db:"client" json:"client,omitempty"`
	Location         *string        `db:"location" json:"location,omitempty"`
	Timeline         *string        `db:"timeline" json:"timeline,omitempty"`
	ProjectDate      *time.Time     `db:"project_date" json:"projectDate,omitempty"`
	ProjectURL       *string        `db:"project_url" json:"projectUrl,omitempty"`
	Featured         bool           `db:"featured" json:"featured"`
	SortOrder        int            `db:"sort_order" json:"order"`
	Status           string         `db:"status" json:"status"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// DefaultThumbnail подставляется записям без собственной миниатюры.
const DefaultThumbnail = "/wp-content/uploads/2024/10/image5-scaled.webp"

// ThumbnailPath возвращает путь к миниатюре записи или миниатюру по умолчанию.
func (r *ContentRecord) ThumbnailPath() string {
	if r.Thumbnail == nil || *r.Thumbnail == "" {
		return DefaultThumbnail
	}
	return *r.Thumbnail
}

// PublicPath возвращает публичный путь страницы записи.
func (r *ContentRecord) PublicPath() string {
	return "/" + r.Kind.PublicPathSegment() + "/" + r.Slug + "/"
}
