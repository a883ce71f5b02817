package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/repository/common"
)

// ErrContentNotFound возвращается, когда запись контента не найдена.
var ErrContentNotFound = fmt.Errorf("content record: %w", common.ErrNotFound)

const contentColumns = `id, kind, title, slug, description, short_description, category, tags,
	thumbnail, images, client, location, timeline, project_date, project_url,
	featured, sort_order, status, created_at, updated_at`

// ContentFilter описывает параметры выборки списка записей.
type ContentFilter struct {
	Statuses []string
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// ReorderItem задаёт новый порядковый номер для записи.
type ReorderItem struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"order"`
}

// ContentRepository отвечает за работу с таблицей content_records.
// Проекты и AI-кейсы хранятся вместе и различаются колонкой kind.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository создаёт экземпляр репозитория.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Create создаёт новую запись. Slug вычисляется из заголовка.
// Уникальность slug на уровне базы не гарантируется: записи с одинаковой
// нормализацией заголовка при генерации сайта перезапишут друг друга.
func (r *ContentRepository) Create(ctx context.Context, rec *models.ContentRecord) error {
	if rec.Category == "" {
		rec.Category = models.DefaultCategory
	}
	if rec.Status == "" {
		rec.Status = models.StatusPublished
	}
	rec.Slug = slug.Make(rec.Title)

	query := `
		INSERT INTO content_records (kind, title, slug, description, short_description, category, tags,
			thumbnail, images, client, location, timeline, project_date, project_url,
			featured, sort_order, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rec.Kind, rec.Title, rec.Slug, rec.Description, rec.ShortDescription, rec.Category,
		pq.Array(rec.Tags), rec.Thumbnail, pq.Array(rec.Images), rec.Client, rec.Location,
		rec.Timeline, rec.ProjectDate, rec.ProjectURL, rec.Featured, rec.SortOrder, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return fmt.Errorf("content repository: create %w", err)
	}

	return nil
}

// GetByID возвращает запись заданного вида по идентификатору.
func (r *ContentRepository) GetByID(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.ContentRecord, error) {
	query := `SELECT ` + contentColumns + ` FROM content_records WHERE id = $1 AND kind = $2`

	row := r.db.QueryRowxContext(ctx, query, id, kind)
	rec, err := scanContentRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("content repository: get by id %w", err)
	}

	return rec, nil
}

// List возвращает записи по фильтру, отсортированные по sort_order ASC, created_at DESC.
func (r *ContentRepository) List(ctx context.Context, kind models.Kind, filter ContentFilter) ([]models.ContentRecord, error) {
	where, args := buildContentWhere(kind, filter)

	query := `SELECT ` + contentColumns + ` FROM content_records ` + where +
		` ORDER BY sort_order ASC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("content repository: list query %w", err)
	}
	defer rows.Close()

	var records []models.ContentRecord
	for rows.Next() {
		rec, err := scanContentRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("content repository: list scan %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content repository: list rows %w", err)
	}

	return records, nil
}

// Count возвращает количество записей по фильтру.
func (r *ContentRepository) Count(ctx context.Context, kind models.Kind, filter ContentFilter) (int, error) {
	where, args := buildContentWhere(kind, filter)

	var total int
	query := `SELECT COUNT(*) FROM content_records ` + where
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("content repository: count %w", err)
	}

	return total, nil
}

// ListPublished возвращает опубликованные записи вида для генератора сайта.
func (r *ContentRepository) ListPublished(ctx context.Context, kind models.Kind) ([]models.ContentRecord, error) {
	return r.List(ctx, kind, ContentFilter{Statuses: []string{models.StatusPublished}})
}

// Update сохраняет запись целиком. Slug пересчитывается из заголовка,
// updated_at обновляется при каждой мутации.
func (r *ContentRepository) Update(ctx context.Context, rec *models.ContentRecord) error {
	rec.Slug = slug.Make(rec.Title)

	query := `
		UPDATE content_records
		SET title = $1,
		    slug = $2,
		    description = $3,
		    short_description = $4,
		    category = $5,
		    tags = $6,
		    thumbnail = $7,
		    images = $8,
		    client = $9,
		    location = $10,
		    timeline = $11,
		    project_date = $12,
		    project_url = $13,
		    featured = $14,
		    sort_order = $15,
		    status = $16,
		    updated_at = NOW()
		WHERE id = $17 AND kind = $18
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rec.Title, rec.Slug, rec.Description, rec.ShortDescription, rec.Category,
		pq.Array(rec.Tags), rec.Thumbnail, pq.Array(rec.Images), rec.Client, rec.Location,
		rec.Timeline, rec.ProjectDate, rec.ProjectURL, rec.Featured, rec.SortOrder, rec.Status,
		rec.ID, rec.Kind,
	).Scan(&rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContentNotFound
		}
		return fmt.Errorf("content repository: update %w", err)
	}

	return nil
}

// Delete удаляет запись заданного вида.
func (r *ContentRepository) Delete(ctx context.Context, kind models.Kind, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content_records WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return fmt.Errorf("content repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("content repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrContentNotFound
	}

	return nil
}

// BulkReorder обновляет порядковые номера набора записей в одной транзакции.
func (r *ContentRepository) BulkReorder(ctx context.Context, kind models.Kind, items []ReorderItem) error {
	if len(items) == 0 {
		return common.ErrInvalidInput
	}

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if _, err := tx.ExecContext(
				ctx,
				`UPDATE content_records SET sort_order = $1, updated_at = NOW() WHERE id = $2 AND kind = $3`,
				item.SortOrder, item.ID, kind,
			); err != nil {
				return fmt.Errorf("reorder item %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("content repository: bulk reorder %w", err)
	}

	return nil
}

// buildContentWhere собирает условие WHERE и аргументы по фильтру.
func buildContentWhere(kind models.Kind, filter ContentFilter) (string, []interface{}) {
	conditions := []string{"kind = $1"}
	args := []interface{}{kind}

	if len(filter.Statuses) == 1 {
		args = append(args, filter.Statuses[0])
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	} else if len(filter.Statuses) > 1 {
		args = append(args, pq.Array(filter.Statuses))
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions, fmt.Sprintf("featured = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanContentRecord читает одну строку content_records.
func scanContentRecord(row sqlx.ColScanner) (*models.ContentRecord, error) {
	var rec models.ContentRecord
	var tags, images pq.StringArray

	if err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.Title,
		&rec.Slug,
		&rec.Description,
		&rec.ShortDescription,
		&rec.Category,
		&tags,
		&rec.Thumbnail,
		&images,
		&rec.Client,
		&rec.Location,
		&rec.Timeline,
		&rec.ProjectDate,
		&rec.ProjectURL,
		&rec.Featured,
		&rec.SortOrder,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Tags = []string(tags)
	rec.Images = []string(images)
	return &rec, nil
}
