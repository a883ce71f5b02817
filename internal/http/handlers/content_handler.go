package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/geekpie/portfolio-backend/internal/http/handlers/common"
	"github.com/geekpie/portfolio-backend/internal/http/response"
	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/repository"
	"github.com/geekpie/portfolio-backend/internal/storage"
	"github.com/geekpie/portfolio-backend/internal/validation"
)

// maxImagesPerUpload ограничивает число изображений в одном запросе.
const maxImagesPerUpload = 10

// ContentStore операции хранилища, нужные хэндлеру записей.
// Реализуется repository.ContentRepository.
type ContentStore interface {
	Create(ctx context.Context, rec *models.ContentRecord) error
	GetByID(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.ContentRecord, error)
	List(ctx context.Context, kind models.Kind, filter repository.ContentFilter) ([]models.ContentRecord, error)
	Count(ctx context.Context, kind models.Kind, filter repository.ContentFilter) (int, error)
	Update(ctx context.Context, rec *models.ContentRecord) error
	Delete(ctx context.Context, kind models.Kind, id uuid.UUID) error
	BulkReorder(ctx context.Context, kind models.Kind, items []repository.ReorderItem) error
}

// ContentHandler реализует CRUD записей контента одного вида.
// Один и тот же хэндлер обслуживает и проекты, и AI-кейсы.
type ContentHandler struct {
	kind    models.Kind
	repo    ContentStore
	storage *storage.UploadStorage
}

// NewContentHandler создаёт хэндлер для заданного вида записей.
func NewContentHandler(kind models.Kind, repo ContentStore, storage *storage.UploadStorage) *ContentHandler {
	return &ContentHandler{kind: kind, repo: repo, storage: storage}
}

// List обрабатывает GET /. Анонимные запросы видят только опубликованные
// записи, авторизованный пользователь может фильтровать по статусу.
func (h *ContentHandler) List(c *gin.Context) {
	filter := repository.ContentFilter{
		Category: c.Query("category"),
	}

	if v := c.Query("featured"); v == "true" {
		featured := true
		filter.Featured = &featured
	}

	if common.IsStaff(c) {
		if status := c.Query("status"); status != "" {
			filter.Statuses = strings.Split(status, ",")
		}
	} else {
		filter.Statuses = []string{models.StatusPublished}
	}

	limit, offset := pagination(c)
	filter.Limit = limit
	filter.Offset = offset

	records, err := h.repo.List(c.Request.Context(), h.kind, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	total, err := h.repo.Count(c.Request.Context(), h.kind, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	if records == nil {
		records = []models.ContentRecord{}
	}
	response.Paginated(c, records, total, limit, offset)
}

// Get обрабатывает GET /:id. Черновики видны только авторизованным.
func (h *ContentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный идентификатор")
		return
	}

	rec, err := h.repo.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			response.NotFound(c, "запись не найдена")
			return
		}
		response.Error(c, err)
		return
	}

	if rec.Status != models.StatusPublished && !common.IsStaff(c) {
		response.NotFound(c, "запись не найдена")
		return
	}

	response.Success(c, rec)
}

// Create обрабатывает POST /. Принимает multipart форму с полями записи
// и необязательным файлом thumbnail.
func (h *ContentHandler) Create(c *gin.Context) {
	rec := &models.ContentRecord{Kind: h.kind}
	applyContentForm(c, rec)

	if fieldErrs := validateRecord(rec); len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	if file, err := c.FormFile("thumbnail"); err == nil {
		publicPath, err := h.saveImage(c, file)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		rec.Thumbnail = &publicPath
	}

	if err := h.repo.Create(c.Request.Context(), rec); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, rec)
}

// Update обрабатывает PUT /:id. Обновляются только переданные поля формы,
// новый файл thumbnail заменяет старый.
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный идентификатор")
		return
	}

	rec, err := h.repo.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			response.NotFound(c, "запись не найдена")
			return
		}
		response.Error(c, err)
		return
	}

	applyContentForm(c, rec)

	if fieldErrs := validateRecord(rec); len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	if file, err := c.FormFile("thumbnail"); err == nil {
		publicPath, err := h.saveImage(c, file)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		h.removeUploadedFile(c, rec.Thumbnail)
		rec.Thumbnail = &publicPath
	}

	if err := h.repo.Update(c.Request.Context(), rec); err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			response.NotFound(c, "запись не найдена")
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, rec)
}

// Delete обрабатывает DELETE /:id. Вместе с записью удаляются её файлы
// из каталога загрузок.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный идентификатор")
		return
	}

	rec, err := h.repo.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			response.NotFound(c, "запись не найдена")
			return
		}
		response.Error(c, err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), h.kind, id); err != nil {
		response.Error(c, err)
		return
	}

	h.removeUploadedFile(c, rec.Thumbnail)
	for _, img := range rec.Images {
		img := img
		h.removeUploadedFile(c, &img)
	}

	response.Success(c, gin.H{"deleted": true})
}

// UploadImages обрабатывает POST /upload. Сохраняет до десяти изображений
// и возвращает их публичные пути; к записи их привязывает форма создания
// или обновления через поле images.
func (h *ContentHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "ожидается multipart форма")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.BadRequest(c, "поле images обязательно")
		return
	}
	if len(files) > maxImagesPerUpload {
		response.BadRequest(c, "за один запрос можно загрузить не более 10 изображений")
		return
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		publicPath, err := h.saveImage(c, file)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		paths = append(paths, publicPath)
	}

	response.Success(c, paths)
}

// Reorder обрабатывает PUT /reorder. Принимает новый порядок записей
// и сохраняет его одной транзакцией.
func (h *ContentHandler) Reorder(c *gin.Context) {
	var req struct {
		Items []repository.ReorderItem `json:"items" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "поле items обязательно")
		return
	}
	if len(req.Items) == 0 {
		response.BadRequest(c, "список items пуст")
		return
	}

	if err := h.repo.BulkReorder(c.Request.Context(), h.kind, req.Items); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"reordered": len(req.Items)})
}

// DebugAll обрабатывает GET /debug/all. Возвращает записи всех статусов,
// маршрут подключается только в development.
func (h *ContentHandler) DebugAll(c *gin.Context) {
	records, err := h.repo.List(c.Request.Context(), h.kind, repository.ContentFilter{})
	if err != nil {
		response.Error(c, err)
		return
	}

	if records == nil {
		records = []models.ContentRecord{}
	}
	response.Success(c, records)
}

// saveImage валидирует и сохраняет изображение, возвращает публичный путь.
func (h *ContentHandler) saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := openValidatedImage(file)
	if err != nil {
		return "", err
	}
	defer src.Close()

	publicPath, _, err := h.storage.Save(c.Request.Context(), h.kind.UploadPrefix(), file.Filename, src)
	if err != nil {
		return "", err
	}
	return publicPath, nil
}

// removeUploadedFile удаляет файл из хранилища, если он был загружен через API.
// Пути темы (/wp-content/...) не трогаем.
func (h *ContentHandler) removeUploadedFile(c *gin.Context, publicPath *string) {
	if publicPath == nil || !strings.HasPrefix(*publicPath, storage.PublicPrefix) {
		return
	}
	if err := h.storage.Delete(c.Request.Context(), *publicPath); err != nil {
		logger.Log.WithError(err).Warn("content handler: не удалось удалить файл")
	}
}

// applyContentForm переносит переданные поля формы в запись.
// Отсутствующие поля не меняются, что позволяет частичные обновления.
func applyContentForm(c *gin.Context, rec *models.ContentRecord) {
	if v, ok := c.GetPostForm("title"); ok {
		rec.Title = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("description"); ok {
		rec.Description = v
	}
	if v, ok := c.GetPostForm("shortDescription"); ok {
		rec.ShortDescription = optionalString(v)
	}
	if v, ok := c.GetPostForm("category"); ok {
		rec.Category = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("tags"); ok {
		rec.Tags = parseStringList(v, true)
	}
	if v, ok := c.GetPostForm("images"); ok {
		rec.Images = parseStringList(v, false)
	}
	if v, ok := c.GetPostForm("client"); ok {
		rec.Client = optionalString(v)
	}
	if v, ok := c.GetPostForm("location"); ok {
		rec.Location = optionalString(v)
	}
	if v, ok := c.GetPostForm("timeline"); ok {
		rec.Timeline = optionalString(v)
	}
	if v, ok := c.GetPostForm("projectDate"); ok {
		rec.ProjectDate = parseDate(v)
	}
	if v, ok := c.GetPostForm("projectUrl"); ok {
		rec.ProjectURL = optionalString(v)
	}
	if v, ok := c.GetPostForm("featured"); ok {
		rec.Featured = v == "true"
	}
	if v, ok := c.GetPostForm("order"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			rec.SortOrder = n
		}
	}
	if v, ok := c.GetPostForm("status"); ok {
		rec.Status = strings.TrimSpace(v)
	}
}

// validateRecord прогоняет запись через валидацию полей.
func validateRecord(rec *models.ContentRecord) []validation.FieldError {
	short := ""
	if rec.ShortDescription != nil {
		short = *rec.ShortDescription
	}
	return validation.ValidateContent(validation.ContentInput{
		Title:            rec.Title,
		Description:      rec.Description,
		ShortDescription: short,
		Category:         rec.Category,
		Status:           rec.Status,
	})
}

// parseStringList разбирает значение поля-списка: JSON-массив строк,
// при ошибке разбора опционально список через запятую.
func parseStringList(v string, commaFallback bool) []string {
	var items []string
	if err := json.Unmarshal([]byte(v), &items); err == nil {
		return items
	}
	if !commaFallback {
		return []string{}
	}

	items = items[:0]
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
