package snippets

import "github.com/daisuki-koshian/blogpatch/internal/assets"

// Markers whose presence in a page means the matching snippet is already
// there.
const (
	MarkerBreadcrumb   = "<!-- パンくずリスト -->"
	MarkerReadingTime  = `class="reading-time"`
	MarkerShareButtons = "<!-- SNSシェアボタン -->"
	MarkerRelated      = "<!-- 関連記事 -->"
	MarkerMobileCSS    = "/* 目次 (TOC) */"
	MarkerProgressBar  = `<div class="progress-bar"`
	MarkerTOC          = `<div class="toc">`
	MarkerBackToTop    = `<button class="back-to-top"`
	MarkerMobileScript = "var btn = document.getElementById('backToTop')"
	MarkerAnalytics    = "data-goatcounter="
	MarkerHighlightCSS = `<style id="chroma-style">`
)

// templateMarkers maps each template to the marker it must contain.
var templateMarkers = map[string]string{
	assets.Breadcrumb:      MarkerBreadcrumb,
	assets.ReadingTime:     MarkerReadingTime,
	assets.ShareButtons:    MarkerShareButtons,
	assets.RelatedArticles: MarkerRelated,
	assets.TOC:             MarkerTOC,
	assets.ProgressBar:     MarkerProgressBar,
	assets.BackToTop:       MarkerBackToTop,
	assets.MobileScript:    MarkerMobileScript,
}
