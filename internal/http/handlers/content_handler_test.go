package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekpie/portfolio-backend/internal/http/middleware"
	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/repository"
)

// fakeContentStore хранилище в памяти для тестов хэндлера.
type fakeContentStore struct {
	records []models.ContentRecord
}

func statusAllowed(statuses []string, status string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeContentStore) List(ctx context.Context, kind models.Kind, filter repository.ContentFilter) ([]models.ContentRecord, error) {
	var out []models.ContentRecord
	for _, rec := range f.records {
		if rec.Kind == kind && statusAllowed(filter.Statuses, rec.Status) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeContentStore) Count(ctx context.Context, kind models.Kind, filter repository.ContentFilter) (int, error) {
	records, _ := f.List(ctx, kind, filter)
	return len(records), nil
}

func (f *fakeContentStore) GetByID(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.ContentRecord, error) {
	for i := range f.records {
		if f.records[i].Kind == kind && f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, repository.ErrContentNotFound
}

func (f *fakeContentStore) Create(ctx context.Context, rec *models.ContentRecord) error { return nil }
func (f *fakeContentStore) Update(ctx context.Context, rec *models.ContentRecord) error { return nil }
func (f *fakeContentStore) Delete(ctx context.Context, kind models.Kind, id uuid.UUID) error {
	return nil
}
func (f *fakeContentStore) BulkReorder(ctx context.Context, kind models.Kind, items []repository.ReorderItem) error {
	return nil
}

func newContentRouter(h *ContentHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/projects/:id", h.Get)
	r.POST("/projects", h.Create)
	r.POST("/projects/upload", h.UploadImages)
	r.PUT("/projects/reorder", h.Reorder)
	return r
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// visibilityRouter поднимает публичные маршруты; непустая роль имитирует
// авторизованный запрос так же, как это делает OptionalAuth.
func visibilityRouter(h *ContentHandler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextRoleKey, role)
		})
	}
	r.GET("/projects", h.List)
	r.GET("/projects/:id", h.Get)
	return r
}

func visibilityStore() (*fakeContentStore, uuid.UUID) {
	draftID := uuid.New()
	return &fakeContentStore{records: []models.ContentRecord{
		{
			ID:     uuid.New(),
			Kind:   models.KindProject,
			Title:  "Опубликованный проект",
			Status: models.StatusPublished,
		},
		{
			ID:     draftID,
			Kind:   models.KindProject,
			Title:  "Черновик проекта",
			Status: models.StatusDraft,
		},
	}}, draftID
}

func TestContentHandler_List_AnonymousSeesOnlyPublished(t *testing.T) {
	store, _ := visibilityStore()
	r := visibilityRouter(NewContentHandler(models.KindProject, store, nil), "")

	// Запрос статуса анонимом игнорируется, фильтр принудительно published.
	req, _ := http.NewRequest("GET", "/projects?status=draft", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Опубликованный проект")
	assert.NotContains(t, w.Body.String(), "Черновик проекта")
}

func TestContentHandler_List_StaffFiltersByStatus(t *testing.T) {
	store, _ := visibilityStore()
	r := visibilityRouter(NewContentHandler(models.KindProject, store, nil), models.RoleEditor)

	req, _ := http.NewRequest("GET", "/projects?status=draft", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Черновик проекта")
	assert.NotContains(t, w.Body.String(), "Опубликованный проект")
}

func TestContentHandler_Get_DraftHiddenFromAnonymous(t *testing.T) {
	store, draftID := visibilityStore()
	h := NewContentHandler(models.KindProject, store, nil)

	req, _ := http.NewRequest("GET", "/projects/"+draftID.String(), nil)
	w := httptest.NewRecorder()
	visibilityRouter(h, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	visibilityRouter(h, models.RoleEditor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Черновик проекта")
}

func TestContentHandler_Get_InvalidID(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	req, _ := http.NewRequest("GET", "/projects/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_Create_ValidationErrors(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	body, contentType := multipartBody(t, map[string]string{
		"description": "Описание без заголовка",
		"category":    "nope",
	})
	req, _ := http.NewRequest("POST", "/projects", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code   string `json:"code"`
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	fields := make([]string, 0, len(resp.Error.Fields))
	for _, f := range resp.Error.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "category")
}

func TestContentHandler_Reorder_RequiresItems(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	req, _ := http.NewRequest("PUT", "/projects/reorder", bytes.NewBufferString(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_Reorder_RejectsInvalidBody(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	req, _ := http.NewRequest("PUT", "/projects/reorder", bytes.NewBufferString(`не json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_UploadImages_RequiresFiles(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	body, contentType := multipartBody(t, map[string]string{"note": "без файлов"})
	req, _ := http.NewRequest("POST", "/projects/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "images")
}

func TestContentHandler_UploadImages_TooManyFiles(t *testing.T) {
	r := newContentRouter(NewContentHandler(models.KindProject, nil, nil))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < maxImagesPerUpload+1; i++ {
		part, err := writer.CreateFormFile("images", "img.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("data"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/projects/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
