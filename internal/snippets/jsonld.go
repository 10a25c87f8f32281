package snippets

import (
	"encoding/json"
	"fmt"
)

// Schema.org BreadcrumbList, https://schema.org/BreadcrumbList.
type breadcrumbList struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []listItem `json:"itemListElement"`
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// breadcrumbJSONLD returns the three-level Home > category > article list.
// encoding/json escapes <, > and & so the result is safe inside <script>.
func breadcrumbJSONLD(baseURL, category, title, slug string) (string, error) {
	names := []string{"Home", category, title}
	urls := []string{baseURL, baseURL + "#", baseURL + slug + "/"}

	list := breadcrumbList{
		Context: "https://schema.org",
		Type:    "BreadcrumbList",
	}
	for i := range names {
		list.Items = append(list.Items, listItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     names[i],
			Item:     urls[i],
		})
	}

	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: breadcrumb JSON-LD: %v", ErrRender, err)
	}
	return string(out), nil
}
