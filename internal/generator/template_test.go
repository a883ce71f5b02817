package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geekpie/portfolio-backend/internal/models"
)

// Урезанная копия эталонной страницы темы со всеми якорями подстановок.
const pageTemplate = `<html><head>
<title>Mockup 3d – GeekPie</title>
<link rel="canonical" href="/portfolio/mockup-3d/">
</head><body>
<ul><li><a class="pxl-breadcrumb-link" href="/">Home</a></li><li class="pxl-breadcrumb-separator">.</li><li><span class="pxl-post-title">Mockup 3d</span></li></ul>
<article>
<img src="/wp-content/uploads/2025/02/post-29.webp">
<div id="pxl_text_editor-6fc2186-5297" class="pxl-text-editor-wrapper text-primary link-default link-hover-default   ">
старый текст
</div>
</div>
</div>
<span class="pxl-info-title">Client Name:</span><span class="pxl-info-meta"><a href="/author/root/" class="pxl-author-link">root</a></span>
<span class="pxl-info-title">Category:</span><span class="pxl-info-meta"><a href="/portfolio-category/design/" rel="tag">design-old</a></span>
<span class="pxl-info-title">Location:</span><span class="pxl-info-meta"><a href="#">United Kingdom</a></span>
<span class="pxl-info-title">Timeline:</span><span class="pxl-info-meta"><span>Oct 2023 - Nov 2023</span></span>
</article><!-- #post -->
</body></html>`

func pageRecord() *models.ContentRecord {
	return &models.ContentRecord{
		Kind:        models.KindProject,
		Title:       "Neo & Co",
		Slug:        "neo-co",
		Description: "<p>Большой <b>насыщенный</b> текст</p>",
		Category:    "design",
		Thumbnail:   strPtr("/uploads/project-1-1.webp"),
		Client:      strPtr("Acme"),
		Timeline:    strPtr("Jan 2025 - Mar 2025"),
		Status:      models.StatusPublished,
	}
}

func TestRenderPage_SubstitutesAllAnchors(t *testing.T) {
	r := NewPageRenderer("GeekPie")

	page := r.RenderPage(pageRecord(), pageTemplate)

	assert.Contains(t, page, "<title>Neo &amp; Co – GeekPie</title>")
	assert.Contains(t, page, `<link rel="canonical" href="/portfolio/neo-co/">`)
	assert.NotContains(t, page, `pxl-breadcrumb-link`)
	assert.Contains(t, page, `<span class="pxl-post-title">Neo &amp; Co</span>`)
	assert.Contains(t, page, `src="/uploads/project-1-1.webp"`)
	assert.Contains(t, page, `>Acme</a>`)
	assert.Contains(t, page, `>Design</a>`)
	assert.Contains(t, page, `Jan 2025 - Mar 2025`)
	assert.NotContains(t, page, "Mockup 3d")
}

func TestRenderPage_DescriptionEmittedVerbatim(t *testing.T) {
	r := NewPageRenderer("GeekPie")

	page := r.RenderPage(pageRecord(), pageTemplate)

	assert.Contains(t, page, "<p>Большой <b>насыщенный</b> текст</p>")
	assert.NotContains(t, page, "старый текст")
}

func TestRenderPage_DescriptionBlockKeepsOverflowGuard(t *testing.T) {
	r := NewPageRenderer("GeekPie")

	page := r.RenderPage(pageRecord(), pageTemplate)

	assert.Contains(t, page, `id="pxl_text_editor-6fc2186-5297" class="pxl-text-editor-wrapper text-primary link-default link-hover-default   " style="word-wrap: break-word; overflow-wrap: break-word; max-width: 100%;">`)
}

func TestRenderPage_MissingMetadataFallsBackToNA(t *testing.T) {
	rec := pageRecord()
	rec.Client = nil
	rec.Location = strPtr("   ")
	rec.Timeline = nil

	page := NewPageRenderer("GeekPie").RenderPage(rec, pageTemplate)

	assert.Contains(t, page, `class="pxl-author-link">N/A</a>`)
	assert.Contains(t, page, `<a href="#">N/A</a>`)
	assert.Contains(t, page, `<span>N/A</span>`)
}

func TestRenderPage_EmptyCategoryFallsBackToNA(t *testing.T) {
	rec := pageRecord()
	rec.Category = ""

	page := NewPageRenderer("GeekPie").RenderPage(rec, pageTemplate)

	assert.Contains(t, page, `rel="tag">N/A</a>`)
}

func TestRenderPage_AppendsGalleryBeforeArticleEnd(t *testing.T) {
	rec := pageRecord()
	rec.Images = []string{"/uploads/project-1-2.webp", "/uploads/project-1-3.webp"}

	page := NewPageRenderer("GeekPie").RenderPage(rec, pageTemplate)

	assert.Contains(t, page, `src="/uploads/project-1-2.webp"`)
	assert.Contains(t, page, `src="/uploads/project-1-3.webp"`)
	galleryIdx := strings.Index(page, "/uploads/project-1-2.webp")
	articleEnd := strings.Index(page, "</article><!-- #post -->")
	assert.Less(t, galleryIdx, articleEnd)
}

func TestRenderPage_MissingAnchorsLeaveDocumentUntouched(t *testing.T) {
	const doc = "<html><body>ничего похожего на тему</body></html>"

	page := NewPageRenderer("GeekPie").RenderPage(pageRecord(), doc)

	assert.Equal(t, doc, page)
}

func TestRenderPage_DollarSignsInValuesAreLiteral(t *testing.T) {
	rec := pageRecord()
	rec.Title = "Budget $1M"
	rec.Client = strPtr("$2 Corp")

	page := NewPageRenderer("GeekPie").RenderPage(rec, pageTemplate)

	assert.Contains(t, page, "Budget $1M – GeekPie")
	assert.Contains(t, page, "$2 Corp")
}
