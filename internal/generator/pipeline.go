package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/models"
)

// Маркеры секций главной страницы. Тема генерирует контейнеры сеток
// с фиксированными идентификаторами.
const (
	projectsGridMarker = `id="pxl_portfolio-99a9dd8-9958"`
	aiGridMarker       = `id="pxl_portfolio-15bf4fe-5345"`
	aiGridEndMarker    = `<span class="pxl-grid-loader"></span>`
)

// ContentSource поставляет опубликованные записи для генерации.
type ContentSource interface {
	ListPublished(ctx context.Context, kind models.Kind) ([]models.ContentRecord, error)
}

// Result итог прогона генерации в формате ответа админки.
type Result struct {
	Success            bool   `json:"success"`
	ProjectsGenerated  int    `json:"projectsGenerated"`
	AiSectorsGenerated int    `json:"aiSectorsGenerated"`
	Error              string `json:"error,omitempty"`
}

// Pipeline перестраивает статический сайт из опубликованных записей:
// синхронизирует загруженные файлы, пересобирает секции главной страницы
// и генерирует страницу для каждой записи.
type Pipeline struct {
	source       ContentSource
	renderer     *PageRenderer
	siteRoot     string
	uploadDir    string
	templatePath string
}

// NewPipeline создаёт пайплайн генерации статического сайта.
func NewPipeline(source ContentSource, renderer *PageRenderer, siteRoot, uploadDir, templatePath string) *Pipeline {
	return &Pipeline{
		source:       source,
		renderer:     renderer,
		siteRoot:     siteRoot,
		uploadDir:    uploadDir,
		templatePath: templatePath,
	}
}

// Run выполняет полный прогон генерации. При ошибке возвращает Result
// с её описанием и саму ошибку.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res, err := p.run(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("generator: прогон завершился ошибкой")
		return &Result{Success: false, Error: err.Error()}, err
	}
	return res, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	logger.Log.Info("generator: запуск генерации статического сайта")

	projects, err := p.source.ListPublished(ctx, models.KindProject)
	if err != nil {
		return nil, fmt.Errorf("generator: загрузка проектов: %w", err)
	}
	aiSectors, err := p.source.ListPublished(ctx, models.KindAiSector)
	if err != nil {
		return nil, fmt.Errorf("generator: загрузка AI-кейсов: %w", err)
	}
	logger.Log.WithFields(map[string]interface{}{
		"projects":   len(projects),
		"ai_sectors": len(aiSectors),
	}).Info("generator: опубликованные записи загружены")

	if err := p.syncUploads(); err != nil {
		return nil, err
	}

	if err := p.rebuildProjectsSection(projects); err != nil {
		return nil, err
	}
	if err := p.rebuildAiSection(aiSectors); err != nil {
		return nil, err
	}

	projectsGenerated, err := p.writePages(ctx, projects)
	if err != nil {
		return nil, err
	}
	aiGenerated, err := p.writePages(ctx, aiSectors)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"projects_generated":   projectsGenerated,
		"ai_sectors_generated": aiGenerated,
	}).Info("generator: генерация завершена")

	return &Result{
		Success:            true,
		ProjectsGenerated:  projectsGenerated,
		AiSectorsGenerated: aiGenerated,
	}, nil
}

// syncUploads докопирует загруженные файлы в каталог uploads сайта.
// Уже существующие файлы не перезаписываются, лишние не удаляются.
func (p *Pipeline) syncUploads() error {
	if p.uploadDir == "" {
		return nil
	}
	entries, err := os.ReadDir(p.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("generator: чтение каталога загрузок: %w", err)
	}

	destDir := filepath.Join(p.siteRoot, "uploads")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("generator: создание каталога uploads: %w", err)
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dest := filepath.Join(destDir, entry.Name())
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(p.uploadDir, entry.Name()), dest); err != nil {
			return fmt.Errorf("generator: копирование %s: %w", entry.Name(), err)
		}
		copied++
	}
	if copied > 0 {
		logger.Log.WithField("copied", copied).Info("generator: файлы загрузок синхронизированы")
	}
	return nil
}

// rebuildProjectsSection заменяет секцию проектов на главной странице.
// Конец секции определяется подсчётом вложенности div от маркера.
func (p *Pipeline) rebuildProjectsSection(projects []models.ContentRecord) error {
	homePath := filepath.Join(p.siteRoot, "index.html")
	raw, err := os.ReadFile(homePath)
	if err != nil {
		return fmt.Errorf("generator: чтение index.html: %w", err)
	}
	content := string(raw)

	markerIdx := strings.Index(content, projectsGridMarker)
	if markerIdx == -1 {
		return fmt.Errorf("generator: маркер секции проектов не найден в index.html")
	}

	divStart := strings.LastIndex(content[:markerIdx], "<div")
	if divStart == -1 {
		divStart = markerIdx
	}

	endIdx, ok := findClosingDiv(content, markerIdx+len(projectsGridMarker))
	if !ok {
		return fmt.Errorf("generator: не найден конец секции проектов в index.html")
	}

	items := make([]string, 0, len(projects))
	for i := range projects {
		items = append(items, RenderProjectItem(&projects[i], i))
	}

	// Скрипт кнопки лежит внутри контейнера секции. Иначе при повторном
	// прогоне он остался бы за пределами заменяемого фрагмента и дублировался.
	section := fmt.Sprintf(`<div id="pxl_portfolio-99a9dd8-9958" class="pxl-grid pxl-portfolio-grid pxl-layout-portfolio pxl-layout-portfolio3 pxl-post-accordion" data-start-page="1" data-max-pages="1" data-total="%d" data-perpage="%d" data-next-link="" data-loadmore="">
            <div class="pxl-grid-inner row">
%s
            </div>
            %s
        %s
        </div>`,
		len(projects), initialItemsCount,
		strings.Join(items, "\n"),
		RenderLoadMoreButton(len(projects)),
		LoadMoreScript())

	content = content[:divStart] + section + content[endIdx+len("</div>"):]

	if err := os.WriteFile(homePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("generator: запись index.html: %w", err)
	}
	logger.Log.WithField("projects", len(projects)).Info("generator: секция проектов обновлена")
	return nil
}

// rebuildAiSection заменяет секцию AI-кейсов на главной странице.
// Секция ограничена маркером загрузчика сетки.
func (p *Pipeline) rebuildAiSection(aiSectors []models.ContentRecord) error {
	homePath := filepath.Join(p.siteRoot, "index.html")
	raw, err := os.ReadFile(homePath)
	if err != nil {
		return fmt.Errorf("generator: чтение index.html: %w", err)
	}
	content := string(raw)

	markerIdx := strings.Index(content, aiGridMarker)
	if markerIdx == -1 {
		return fmt.Errorf("generator: маркер секции AI-кейсов не найден в index.html")
	}

	divStart := strings.LastIndex(content[:markerIdx], "<div")
	if divStart == -1 {
		divStart = markerIdx
	}

	endRel := strings.Index(content[markerIdx:], aiGridEndMarker)
	if endRel == -1 {
		return fmt.Errorf("generator: не найден конец секции AI-кейсов в index.html")
	}
	endIdx := markerIdx + endRel

	items := make([]string, 0, len(aiSectors))
	for i := range aiSectors {
		items = append(items, RenderAiSectorItem(&aiSectors[i], i))
	}

	section := fmt.Sprintf(`<div id="pxl_portfolio-15bf4fe-5345" class="pxl-grid pxl-portfolio-grid pxl-layout-portfolio pxl-layout-portfolio3 pxl-post-accordion" data-start-page="1" data-max-pages="1" data-total="%d" data-perpage="5" data-next-link="" data-loadmore="">
            <div class="pxl-grid-inner row">
%s
                    </div>
            %s`,
		len(aiSectors),
		strings.Join(items, "\n"),
		aiGridEndMarker)

	content = content[:divStart] + section + content[endIdx+len(aiGridEndMarker):]

	if err := os.WriteFile(homePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("generator: запись index.html: %w", err)
	}
	logger.Log.WithField("ai_sectors", len(aiSectors)).Info("generator: секция AI-кейсов обновлена")
	return nil
}

// writePages генерирует страницу для каждой записи. Эталонная страница
// перечитывается для каждой записи, чтобы подстановки не накапливались.
func (p *Pipeline) writePages(ctx context.Context, records []models.ContentRecord) (int, error) {
	generated := 0
	for i := range records {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		rec := &records[i]

		template, err := os.ReadFile(p.templatePath)
		if err != nil {
			return generated, fmt.Errorf("generator: чтение эталонной страницы: %w", err)
		}

		pageDir := filepath.Join(p.siteRoot, rec.Kind.PublicPathSegment(), rec.Slug)
		if err := os.MkdirAll(pageDir, 0o755); err != nil {
			return generated, fmt.Errorf("generator: создание каталога страницы %s: %w", rec.Slug, err)
		}

		page := p.renderer.RenderPage(rec, string(template))
		if err := os.WriteFile(filepath.Join(pageDir, "index.html"), []byte(page), 0o644); err != nil {
			return generated, fmt.Errorf("generator: запись страницы %s: %w", rec.Slug, err)
		}

		logger.Log.WithFields(map[string]interface{}{
			"kind": rec.Kind,
			"slug": rec.Slug,
		}).Debug("generator: страница записи сгенерирована")
		generated++
	}
	return generated, nil
}

// findClosingDiv ищет закрывающий тег контейнера, открытого перед from.
// Возвращает индекс начала закрывающего тега.
func findClosingDiv(content string, from int) (int, bool) {
	depth := 1
	for i := from; i < len(content); i++ {
		if strings.HasPrefix(content[i:], "<div") {
			depth++
		} else if strings.HasPrefix(content[i:], "</div") {
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
