package generator

import (
	"fmt"
	"strings"

	"github.com/geekpie/portfolio-backend/internal/models"
)

// Пагинация "Load More": первые шесть записей видимы, остальные
// раскрываются на клиенте пачками по шесть.
const (
	initialItemsCount = 6
	loadMoreCount     = 6
)

// excerptMaxLength длина выдержки из описания, когда краткое описание не задано.
const excerptMaxLength = 150

// arrowIconSVG иконка-стрелка темы, дублируется в каждой карточке.
const arrowIconSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="30" viewbox="0 0 30 30" fill="none">
                                                    <path d="M21.5657 19.3518L21.4975 9.87206C21.4975 9.46287 21.1793 9.1446 20.7701 9.1446L11.2903 9.0764C10.8811 9.0764 10.5628 9.39467 10.5628 9.80386C10.5628 10.2131 10.8811 10.5313 11.2903 10.5313L18.9969 10.5995L9.33525 20.2612C9.06246 20.534 9.06246 20.9886 9.33525 21.2614C9.60805 21.5342 10.0855 21.5569 10.3583 21.2842L20.0653 11.5771L20.1335 19.3746C20.1335 19.5564 20.2245 19.7383 20.3609 19.8747C20.4973 20.0111 20.6791 20.102 20.8837 20.0793C21.2475 20.0793 21.5885 19.7383 21.5657 19.3518Z" fill="currentcolor"></path>
                                                </svg>`

// listingThumbnail возвращает путь миниатюры для карточки списка.
// В списках заглушки нет, пустая миниатюра даёт пустой src;
// подстановка по умолчанию применяется только на страницах записей.
func listingThumbnail(rec *models.ContentRecord) string {
	if rec.Thumbnail == nil {
		return ""
	}
	return *rec.Thumbnail
}

// excerpt возвращает текст выдержки: краткое описание либо префикс описания.
func excerpt(rec *models.ContentRecord) string {
	if rec.ShortDescription != nil && *rec.ShortDescription != "" {
		return *rec.ShortDescription
	}
	runes := []rune(rec.Description)
	if len(runes) > excerptMaxLength {
		runes = runes[:excerptMaxLength]
	}
	return string(runes)
}

// paddedIndex возвращает двузначный номер позиции, считая с единицы.
func paddedIndex(index int) string {
	return fmt.Sprintf("%02d", index+1)
}

// RenderProjectItem формирует карточку проекта для главной страницы.
// Записи после первых шести скрыты до нажатия "Load More".
func RenderProjectItem(rec *models.ContentRecord, index int) string {
	categoryClass := rec.Category
	if categoryClass == "" {
		categoryClass = "design"
	}

	hiddenClass := ""
	hiddenStyle := ""
	if index >= initialItemsCount {
		hiddenClass = " pxl-portfolio-hidden"
		hiddenStyle = "; display: none;"
	}

	link := rec.PublicPath()
	title := escapeHTML(rec.Title)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`                    <div class="pxl-grid-item col-12 %s%s wow fadeInUp" data-index="%d" style="z-index: %d%s">`,
		categoryClass, hiddenClass, index, index, hiddenStyle))
	b.WriteString(`
                <div class="pxl-post-item hover-parent pxl-accordion-item ">
                    <div class="pxl-post-content">
                                                    <span class="pxl-post-index">` + paddedIndex(index) + `</span>
                                                <div class="pxl-post-group">
                            <div class="pxl-accorrdion-header">
                                <h3 class="pxl-post-title hover-text-default">
                                    <a href="` + link + `" class="pxl-title-link">
                                        ` + title + `                                    </a>
                                </h3>
                            </div>
                            <div class="pxl-accordion-content">
                                <div class="pxl-accordion-details">
                                                                            <p class="pxl-post-excerpt">
                                            ` + escapeHTML(excerpt(rec)) + `                                        </p>
                                                                                                                <a href="` + link + `" class="btn pxl-post-btn pxl-btn-split">
                                            <span class="pxl-btn-icon icon-duplicated">
                                                ` + arrowIconSVG + `
                                            </span>
                                            <span class="pxl-btn-text">View Project Details</span>
                                            <span class="pxl-btn-icon icon-main">
                                                ` + arrowIconSVG + `
                                            </span>
                                        </a>
                                                                    </div>
                            </div>
                        </div>
                    </div>
                    <div class="pxl-post-featured hover-image-parallax">
                        <a href="` + link + `" class="pxl-featured-link">
                            <img loading="lazy" decoding="async" src="` + listingThumbnail(rec) + `" width="767" height="642" class="pxl-featured-image no-lazyload" alt="` + title + `">                        </a>
                    </div>
                </div>
            </div>`)

	return b.String()
}

// RenderAiSectorItem формирует карточку AI-кейса для главной страницы.
// Первая карточка раскрыта, пагинации у этого списка нет.
func RenderAiSectorItem(rec *models.ContentRecord, index int) string {
	activeClass := ""
	if index == 0 {
		activeClass = "active"
	}

	link := rec.PublicPath()
	title := escapeHTML(rec.Title)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`                    <div class="pxl-grid-item col-12 wow fadeInUp" style="z-index: %d">`, index))
	b.WriteString(`
                <div class="pxl-post-item hover-parent pxl-accordion-item ` + activeClass + `">
                    <div class="pxl-post-content">
                                                    <span class="pxl-post-index">` + paddedIndex(index) + `</span>
                                                <div class="pxl-post-group">
                            <div class="pxl-accorrdion-header">
                                <h3 class="pxl-post-title hover-text-default">
                                    <a href="` + link + `" class="pxl-title-link">
                                        ` + title + `                                    </a>
                                </h3>
                            </div>
                            <div class="pxl-accordion-content">
                                <div class="pxl-accordion-details">
                                                                            <p class="pxl-post-excerpt">
                                            ` + escapeHTML(excerpt(rec)) + `                                        </p>
                                                                                                                <a href="` + link + `" class="btn pxl-post-btn pxl-btn-split">
                                            <span class="pxl-btn-icon icon-duplicated">
                                                ` + arrowIconSVG + `
                                            </span>
                                            <span class="pxl-btn-text">View Project Details</span>
                                            <span class="pxl-btn-icon icon-main">
                                                ` + arrowIconSVG + `
                                            </span>
                                        </a>
                                                                    </div>
                            </div>
                        </div>
                    </div>
                    <div class="pxl-post-featured hover-image-parallax">
                        <a href="` + link + `" class="pxl-featured-link">
                            <img loading="lazy" decoding="async" src="` + listingThumbnail(rec) + `" width="767" height="642" class="pxl-featured-image no-lazyload" alt="` + title + `">                        </a>
                    </div>
                </div>
            </div>`)

	return b.String()
}

// RenderLoadMoreButton формирует кнопку "Load More" с точным числом скрытых записей.
// Если все записи видимы, кнопка не нужна.
func RenderLoadMoreButton(totalItems int) string {
	if totalItems <= initialItemsCount {
		return ""
	}

	hiddenItems := totalItems - initialItemsCount

	return fmt.Sprintf(`
            <div class="pxl-load-more-wrapper" style="text-align: center; margin-top: 50px; width: 100%%;">
                <button id="pxl-load-more-btn" class="btn pxl-load-more-btn" data-loaded="%d" data-total="%d" data-load-count="%d" style="
                    background-color: #FF6B35;
                    color: #121212;
                    padding: 18px 45px;
                    border-radius: 50px;
                    font-family: 'Kanit', sans-serif;
                    font-size: 16px;
                    font-weight: 500;
                    border: none;
                    cursor: pointer;
                    transition: all 0.3s ease;
                    display: inline-flex;
                    align-items: center;
                    gap: 10px;
                ">
                    <span class="pxl-btn-text">Load More (%d more projects)</span>
                    <span class="pxl-btn-icon">
                        <svg xmlns="http://www.w3.org/2000/svg" width="20" height="20" viewbox="0 0 20 20" fill="none">
                            <path d="M10 2V18M2 10H18" stroke="currentColor" stroke-width="2" stroke-linecap="round"/>
                        </svg>
                    </span>
                </button>
            </div>`, initialItemsCount, totalItems, loadMoreCount, hiddenItems)
}

// loadMoreScript раскрывает скрытые карточки пачками и прячет кнопку,
// когда показаны все. Работает полностью на клиенте.
const loadMoreScript = `
<script>
(function() {
    const loadMoreBtn = document.getElementById('pxl-load-more-btn');
    if (!loadMoreBtn) return;

    const loaded = parseInt(loadMoreBtn.dataset.loaded);
    const total = parseInt(loadMoreBtn.dataset.total);
    const loadCount = parseInt(loadMoreBtn.dataset.loadCount);

    loadMoreBtn.addEventListener('click', function() {
        const hiddenItems = document.querySelectorAll('.pxl-portfolio-hidden');
        const itemsToShow = Math.min(loadCount, hiddenItems.length);

        for (let i = 0; i < itemsToShow; i++) {
            hiddenItems[i].style.display = 'block';
            hiddenItems[i].classList.remove('pxl-portfolio-hidden');
            hiddenItems[i].classList.add('fadeInUp');
        }

        const newLoaded = loaded + itemsToShow;
        loadMoreBtn.dataset.loaded = newLoaded;

        const remaining = total - newLoaded;
        if (remaining <= 0) {
            loadMoreBtn.style.display = 'none';
        } else {
            loadMoreBtn.querySelector('.pxl-btn-text').textContent = 'Load More (' + remaining + ' more projects)';
        }
    });

    loadMoreBtn.addEventListener('mouseenter', function() {
        this.style.backgroundColor = '#121212';
        this.style.color = '#FF6B35';
    });

    loadMoreBtn.addEventListener('mouseleave', function() {
        this.style.backgroundColor = '#FF6B35';
        this.style.color = '#121212';
    });
})();
</script>`

// LoadMoreScript возвращает клиентский скрипт раскрытия карточек.
func LoadMoreScript() string {
	return loadMoreScript
}

// escapeHTML экранирует спецсимволы в текстовых значениях.
// Rich-text поля вставляются без экранирования.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
