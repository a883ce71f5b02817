package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/models"
)

// Главная страница с обеими секциями в структуре темы.
const homeTemplate = `<html><body>
<section>
    <div class="wrapper"><div id="pxl_portfolio-99a9dd8-9958" class="pxl-grid">
        <div class="pxl-grid-inner row"><div class="old-item">старый проект</div></div>
    </div></div>
</section>
<section>
    <div class="wrapper"><div id="pxl_portfolio-15bf4fe-5345" class="pxl-grid">
        <div class="pxl-grid-inner row"><div class="old-item">старый кейс</div></div>
        <span class="pxl-grid-loader"></span>
    </div></div>
</section>
</body></html>`

type fakeSource struct {
	projects  []models.ContentRecord
	aiSectors []models.ContentRecord
	err       error
}

func (f *fakeSource) ListPublished(ctx context.Context, kind models.Kind) ([]models.ContentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if kind == models.KindAiSector {
		return f.aiSectors, nil
	}
	return f.projects, nil
}

func publishedRecord(kind models.Kind, n int) models.ContentRecord {
	return models.ContentRecord{
		Kind:        kind,
		Title:       fmt.Sprintf("Запись %d", n),
		Slug:        fmt.Sprintf("zapis-%d", n),
		Description: "Описание",
		Category:    models.CategoryBranding,
		Status:      models.StatusPublished,
		SortOrder:   n,
	}
}

func setupSite(t *testing.T, home string) (siteRoot, uploadDir, templatePath string) {
	t.Helper()

	root := t.TempDir()
	siteRoot = filepath.Join(root, "site")
	uploadDir = filepath.Join(root, "uploads")
	require.NoError(t, os.MkdirAll(filepath.Join(siteRoot, "portfolio", "mockup-3d"), 0o755))
	require.NoError(t, os.MkdirAll(uploadDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(siteRoot, "index.html"), []byte(home), 0o644))

	templatePath = filepath.Join(siteRoot, "portfolio", "mockup-3d", "index.html")
	require.NoError(t, os.WriteFile(templatePath, []byte(pageTemplate), 0o644))

	return siteRoot, uploadDir, templatePath
}

func newTestPipeline(source ContentSource, siteRoot, uploadDir, templatePath string) *Pipeline {
	logger.Init("error")
	return NewPipeline(source, NewPageRenderer("GeekPie"), siteRoot, uploadDir, templatePath)
}

func TestPipeline_Run_GeneratesSectionsAndPages(t *testing.T) {
	siteRoot, uploadDir, templatePath := setupSite(t, homeTemplate)

	source := &fakeSource{}
	for i := 1; i <= 7; i++ {
		source.projects = append(source.projects, publishedRecord(models.KindProject, i))
	}
	source.aiSectors = append(source.aiSectors, publishedRecord(models.KindAiSector, 100))

	p := newTestPipeline(source, siteRoot, uploadDir, templatePath)
	result, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 7, result.ProjectsGenerated)
	assert.Equal(t, 1, result.AiSectorsGenerated)

	home, err := os.ReadFile(filepath.Join(siteRoot, "index.html"))
	require.NoError(t, err)
	content := string(home)

	assert.NotContains(t, content, "старый проект")
	assert.NotContains(t, content, "старый кейс")
	assert.Contains(t, content, `data-total="7"`)
	assert.Contains(t, content, "Load More (1 more projects)")
	// Класс скрытия встречается и в скрипте кнопки, считаем только карточки.
	assert.Equal(t, 1, strings.Count(content, "pxl-portfolio-hidden wow"))

	// Страницы записей
	page, err := os.ReadFile(filepath.Join(siteRoot, "portfolio", "zapis-1", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Запись 1 – GeekPie")

	_, err = os.Stat(filepath.Join(siteRoot, "ai-sector", "zapis-100", "index.html"))
	assert.NoError(t, err)
}

func TestPipeline_Run_NoLoadMoreForSixOrFewer(t *testing.T) {
	siteRoot, uploadDir, templatePath := setupSite(t, homeTemplate)

	source := &fakeSource{}
	for i := 1; i <= 6; i++ {
		source.projects = append(source.projects, publishedRecord(models.KindProject, i))
	}

	p := newTestPipeline(source, siteRoot, uploadDir, templatePath)
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	home, err := os.ReadFile(filepath.Join(siteRoot, "index.html"))
	require.NoError(t, err)

	assert.NotContains(t, string(home), `<button id="pxl-load-more-btn"`)
	assert.NotContains(t, string(home), "pxl-portfolio-hidden wow")
}

func TestPipeline_Run_IsIdempotent(t *testing.T) {
	siteRoot, uploadDir, templatePath := setupSite(t, homeTemplate)

	source := &fakeSource{}
	for i := 1; i <= 8; i++ {
		source.projects = append(source.projects, publishedRecord(models.KindProject, i))
	}
	source.aiSectors = append(source.aiSectors, publishedRecord(models.KindAiSector, 50))

	p := newTestPipeline(source, siteRoot, uploadDir, templatePath)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(siteRoot, "index.html"))
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(siteRoot, "index.html"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestPipeline_Run_SlugCollisionLastRecordWins(t *testing.T) {
	siteRoot, uploadDir, templatePath := setupSite(t, homeTemplate)

	first := publishedRecord(models.KindProject, 1)
	first.Title = "Первая версия"
	first.Slug = "foo-bar"
	second := publishedRecord(models.KindProject, 2)
	second.Title = "Вторая версия"
	second.Slug = "foo-bar"

	source := &fakeSource{projects: []models.ContentRecord{first, second}}
	p := newTestPipeline(source, siteRoot, uploadDir, templatePath)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProjectsGenerated)

	// Обе записи пишут в один каталог, остаётся последняя по порядку.
	page, err := os.ReadFile(filepath.Join(siteRoot, "portfolio", "foo-bar", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Вторая версия – GeekPie")
	assert.NotContains(t, string(page), "Первая версия")
}

func TestPipeline_Run_FailsWithoutProjectsMarker(t *testing.T) {
	home := strings.ReplaceAll(homeTemplate, "pxl_portfolio-99a9dd8-9958", "other-id")
	siteRoot, uploadDir, templatePath := setupSite(t, home)

	p := newTestPipeline(&fakeSource{}, siteRoot, uploadDir, templatePath)
	result, err := p.Run(context.Background())

	require.Error(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestPipeline_Run_FailsWithoutAiMarker(t *testing.T) {
	home := strings.ReplaceAll(homeTemplate, "pxl_portfolio-15bf4fe-5345", "other-id")
	siteRoot, uploadDir, templatePath := setupSite(t, home)

	p := newTestPipeline(&fakeSource{}, siteRoot, uploadDir, templatePath)
	result, err := p.Run(context.Background())

	require.Error(t, err)
	assert.False(t, result.Success)
}

func TestPipeline_SyncUploads_DoesNotOverwriteExisting(t *testing.T) {
	siteRoot, uploadDir, templatePath := setupSite(t, homeTemplate)

	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "a.webp"), []byte("новое"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(siteRoot, "uploads"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(siteRoot, "uploads", "a.webp"), []byte("старое"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "b.webp"), []byte("b"), 0o644))

	p := newTestPipeline(&fakeSource{}, siteRoot, uploadDir, templatePath)
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	existing, err := os.ReadFile(filepath.Join(siteRoot, "uploads", "a.webp"))
	require.NoError(t, err)
	assert.Equal(t, "старое", string(existing))

	copied, err := os.ReadFile(filepath.Join(siteRoot, "uploads", "b.webp"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(copied))
}
