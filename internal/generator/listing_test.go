package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geekpie/portfolio-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func testRecord(title, slug string) *models.ContentRecord {
	return &models.ContentRecord{
		Kind:        models.KindProject,
		Title:       title,
		Slug:        slug,
		Description: "Описание проекта",
		Category:    models.CategoryBranding,
		Status:      models.StatusPublished,
	}
}

func TestRenderProjectItem_VisibleWithinFirstSix(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")

	html := RenderProjectItem(rec, 0)

	assert.NotContains(t, html, "pxl-portfolio-hidden")
	assert.NotContains(t, html, "display: none")
	assert.Contains(t, html, `<span class="pxl-post-index">01</span>`)
	assert.Contains(t, html, `href="/portfolio/neo-brand/"`)
}

func TestRenderProjectItem_HiddenAfterSixth(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")

	html := RenderProjectItem(rec, 6)

	assert.Contains(t, html, "pxl-portfolio-hidden")
	assert.Contains(t, html, "display: none")
	assert.Contains(t, html, `<span class="pxl-post-index">07</span>`)
}

func TestRenderProjectItem_EscapesTitle(t *testing.T) {
	rec := testRecord("Foo & Bar", "foo-bar")

	html := RenderProjectItem(rec, 0)

	assert.Contains(t, html, "Foo &amp; Bar")
	assert.NotContains(t, html, ">Foo & Bar<")
}

func TestRenderProjectItem_EmptyThumbnailGivesEmptySrc(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")

	html := RenderProjectItem(rec, 0)

	assert.Contains(t, html, `src="" width="767"`)
	assert.NotContains(t, html, models.DefaultThumbnail)
}

func TestRenderProjectItem_UsesRecordThumbnail(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")
	rec.Thumbnail = strPtr("/uploads/project-1-1.webp")

	html := RenderProjectItem(rec, 0)

	assert.Contains(t, html, `src="/uploads/project-1-1.webp"`)
}

func TestExcerpt_PrefersShortDescription(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")
	rec.ShortDescription = strPtr("Кратко о проекте")

	assert.Equal(t, "Кратко о проекте", excerpt(rec))
}

func TestExcerpt_FallsBackToDescriptionPrefix(t *testing.T) {
	rec := testRecord("Neo Brand", "neo-brand")
	rec.Description = strings.Repeat("а", 300)

	got := excerpt(rec)

	assert.Equal(t, excerptMaxLength, len([]rune(got)))
	assert.True(t, strings.HasPrefix(rec.Description, got))
}

func TestRenderLoadMoreButton_NotEmittedForSixOrFewer(t *testing.T) {
	assert.Empty(t, RenderLoadMoreButton(6))
	assert.Empty(t, RenderLoadMoreButton(3))
	assert.Empty(t, RenderLoadMoreButton(0))
}

func TestRenderLoadMoreButton_ReportsRemainingCount(t *testing.T) {
	html := RenderLoadMoreButton(10)

	assert.Contains(t, html, "Load More (4 more projects)")
	assert.Contains(t, html, `data-total="10"`)
	assert.Contains(t, html, `data-loaded="6"`)
	assert.Contains(t, html, `data-load-count="6"`)
}

func TestRenderAiSectorItem_FirstItemActive(t *testing.T) {
	rec := testRecord("AI Assist", "ai-assist")
	rec.Kind = models.KindAiSector

	first := RenderAiSectorItem(rec, 0)
	second := RenderAiSectorItem(rec, 1)

	assert.Contains(t, first, "pxl-accordion-item active")
	assert.NotContains(t, second, "pxl-accordion-item active")
	assert.Contains(t, first, `href="/ai-sector/ai-assist/"`)
}

func TestEscapeHTML_CoversAllSpecialCharacters(t *testing.T) {
	got := escapeHTML(`<a href="x">Tom & Jerry's</a>`)

	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#039;s&lt;/a&gt;", got)
}
