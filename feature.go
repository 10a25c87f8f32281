package blogpatch

import (
	"fmt"
	"slices"
)

// Feature is one snippet the patcher can add to a page.
type Feature string

// Features, in application order.
const (
	FeatureBreadcrumb    Feature = "breadcrumb"
	FeatureReadingTime   Feature = "reading-time"
	FeatureShareButtons  Feature = "share-buttons"
	FeatureRelated       Feature = "related-articles"
	FeatureMobileCSS     Feature = "mobile-css"
	FeatureProgressBar   Feature = "progress-bar"
	FeatureHeadingIDs    Feature = "heading-ids"
	FeatureTOC           Feature = "toc"
	FeatureBackToTop     Feature = "back-to-top"
	FeatureMobileScript  Feature = "mobile-script"
	FeatureAnalytics     Feature = "analytics"
	FeatureCodeHighlight Feature = "code-highlight"
)

var featureOrder = []Feature{
	FeatureBreadcrumb,
	FeatureReadingTime,
	FeatureShareButtons,
	FeatureRelated,
	FeatureMobileCSS,
	FeatureProgressBar,
	FeatureHeadingIDs,
	FeatureTOC,
	FeatureBackToTop,
	FeatureMobileScript,
	FeatureAnalytics,
	FeatureCodeHighlight,
}

// Features returns every feature in application order.
func Features() []Feature {
	return slices.Clone(featureOrder)
}

// ParseFeature validates a feature name.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !slices.Contains(featureOrder, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
	}
	return f, nil
}

func (f Feature) rank() int {
	return slices.Index(featureOrder, f)
}

// normalizeFeatures drops duplicates and unknown values and sorts the rest
// into application order.
func normalizeFeatures(fs []Feature) []Feature {
	out := make([]Feature, 0, len(fs))
	for _, f := range fs {
		if f.rank() >= 0 && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b Feature) int { return a.rank() - b.rank() })
	return out
}
