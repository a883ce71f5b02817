package generator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/models"
)

// Якоря эталонной страницы /portfolio/mockup-3d/. Тема генерирует их
// с фиксированными идентификаторами, поэтому они зашиты константами.
const (
	canonicalAnchor  = `<link rel="canonical" href="/portfolio/mockup-3d/">`
	breadcrumbAnchor = `<li><a class="pxl-breadcrumb-link" href="/">Home</a></li><li class="pxl-breadcrumb-separator">.</li>`
	postTitleAnchor  = `<span class="pxl-post-title">Mockup 3d</span>`
	thumbnailAnchor  = `src="/wp-content/uploads/2025/02/post-29.webp"`
	imagesAnchor     = `</article><!-- #post -->`
	metadataFallback = "N/A"
)

var (
	titleTagRe = regexp.MustCompile(`<title>Mockup 3d\s*[–-]?\s*GeekPie</title>`)

	descriptionRe = regexp.MustCompile(`(?s)<div id="pxl_text_editor-6fc2186-5297" class="pxl-text-editor-wrapper text-primary link-default link-hover-default   ">.*?</div>\s*</div>\s*</div>`)

	clientRe = regexp.MustCompile(`(?s)(<span class="pxl-info-title">\s*Client Name:\s*</span>.*?<span class="pxl-info-meta">.*?<a href="/author/root/" class="pxl-author-link">)\s*root\s*(</a>.*?</span>)`)

	categoryRe = regexp.MustCompile(`(?s)(<span class="pxl-info-title">\s*Category:\s*</span>.*?<span class="pxl-info-meta">.*?<a href="/portfolio-category/design/" rel="tag">)[^<]*(</a>.*?</span>)`)

	locationRe = regexp.MustCompile(`(?s)(<span class="pxl-info-title">\s*Location:\s*</span>.*?<span class="pxl-info-meta">.*?<a href="#">)\s*United Kingdom\s*(</a>.*?</span>)`)

	timelineRe = regexp.MustCompile(`(?s)(<span class="pxl-info-title">\s*Timeline:\s*</span>.*?<span class="pxl-info-meta">.*?<span>)\s*Oct 2023 - Nov 2023\s*(</span>.*?</span>)`)
)

// PageRenderer строит страницу записи из эталонной страницы темы
// точечными подстановками. Отсутствующий якорь не срывает генерацию,
// подстановка просто пропускается с диагностикой в лог.
type PageRenderer struct {
	siteName string
}

// NewPageRenderer создаёт рендерер страниц записей.
func NewPageRenderer(siteName string) *PageRenderer {
	return &PageRenderer{siteName: siteName}
}

// RenderPage возвращает HTML страницы записи на основе эталонной страницы.
func (r *PageRenderer) RenderPage(rec *models.ContentRecord, template string) string {
	page := template

	title := escapeHTML(rec.Title)

	page = r.replaceFirstRe(page, "title", titleTagRe,
		"<title>"+title+" – "+r.siteName+"</title>")

	page = r.replaceFirst(page, "canonical", canonicalAnchor,
		`<link rel="canonical" href="`+rec.PublicPath()+`">`)

	page = r.replaceAll(page, "breadcrumb", breadcrumbAnchor,
		`<li class="pxl-breadcrumb-separator">.</li>`)

	page = r.replaceAll(page, "postTitle", postTitleAnchor,
		`<span class="pxl-post-title">`+title+`</span>`)

	page = r.replaceFirst(page, "thumbnail", thumbnailAnchor,
		`src="`+rec.ThumbnailPath()+`"`)

	// Инлайновый стиль не даёт длинному неразрывному тексту вылезти за блок.
	page = r.replaceFirstRe(page, "description", descriptionRe,
		`<div id="pxl_text_editor-6fc2186-5297" class="pxl-text-editor-wrapper text-primary link-default link-hover-default   " style="word-wrap: break-word; overflow-wrap: break-word; max-width: 100%;">
                        `+rec.Description+`
                    </div>
                </div>
            </div>`)

	page = r.spliceBetweenGroups(page, "client", clientRe, metadataValue(rec.Client))
	page = r.spliceBetweenGroups(page, "category", categoryRe, categoryDisplay(rec.Category))
	page = r.spliceBetweenGroups(page, "location", locationRe, metadataValue(rec.Location))
	page = r.spliceBetweenGroups(page, "timeline", timelineRe, metadataValue(rec.Timeline))

	if imagesHTML := renderImages(rec); imagesHTML != "" {
		page = r.replaceFirst(page, "images", imagesAnchor,
			imagesHTML+"\n                    "+imagesAnchor)
	}

	return page
}

// replaceFirst заменяет первое вхождение литерального якоря.
func (r *PageRenderer) replaceFirst(doc, anchor, old, new string) string {
	if !strings.Contains(doc, old) {
		r.missingAnchor(anchor)
		return doc
	}
	return strings.Replace(doc, old, new, 1)
}

// replaceAll заменяет все вхождения литерального якоря.
func (r *PageRenderer) replaceAll(doc, anchor, old, new string) string {
	if !strings.Contains(doc, old) {
		r.missingAnchor(anchor)
		return doc
	}
	return strings.ReplaceAll(doc, old, new)
}

// replaceFirstRe заменяет первое совпадение регулярного выражения.
// Замена вставляется как есть, без раскрытия $-ссылок.
func (r *PageRenderer) replaceFirstRe(doc, anchor string, re *regexp.Regexp, repl string) string {
	loc := re.FindStringIndex(doc)
	if loc == nil {
		r.missingAnchor(anchor)
		return doc
	}
	return doc[:loc[0]] + repl + doc[loc[1]:]
}

// spliceBetweenGroups вставляет значение между двумя группами первого
// совпадения. Значение вставляется как есть, без раскрытия $-ссылок.
func (r *PageRenderer) spliceBetweenGroups(doc, anchor string, re *regexp.Regexp, value string) string {
	m := re.FindStringSubmatchIndex(doc)
	if m == nil || len(m) < 6 {
		r.missingAnchor(anchor)
		return doc
	}
	return doc[:m[3]] + value + doc[m[4]:]
}

func (r *PageRenderer) missingAnchor(anchor string) {
	if logger.Log != nil {
		logger.Log.WithField("anchor", anchor).Debug("generator: якорь не найден, подстановка пропущена")
	}
}

// metadataValue экранирует значение метаданных, пустое заменяет на N/A.
func metadataValue(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return metadataFallback
	}
	return escapeHTML(*v)
}

// categoryDisplay возвращает категорию с заглавной буквы, пустую как N/A.
func categoryDisplay(category string) string {
	if category == "" {
		return metadataFallback
	}
	runes := []rune(escapeHTML(category))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// renderImages формирует блок галереи из дополнительных изображений записи.
func renderImages(rec *models.ContentRecord) string {
	if len(rec.Images) == 0 {
		return ""
	}

	title := escapeHTML(rec.Title)
	blocks := make([]string, 0, len(rec.Images))
	for _, img := range rec.Images {
		blocks = append(blocks, `<div style="margin-bottom: 30px;">
        <img src="`+img+`" alt="`+title+`" style="width: 100%; border-radius: 20px;">
      </div>`)
	}
	return strings.Join(blocks, "\n")
}
