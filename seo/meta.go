package seo

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const descriptionLength = 160

var textOnly = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// Alternate is one hreflang link of a page.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	URL      string `json:"url"`
}

// Meta is the head metadata of a reader page.
type Meta struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Keywords      string      `json:"keywords"`
	Canonical     string      `json:"canonical"`
	OGTitle       string      `json:"og_title"`
	OGDescription string      `json:"og_description"`
	OGImage       string      `json:"og_image"`
	OGType        string      `json:"og_type"`
	OGSiteName    string      `json:"og_site_name"`
	OGLocale      string      `json:"og_locale"`
	Direction     string      `json:"dir"`
	Alternates    []Alternate `json:"alternates"`
	Degraded      bool        `json:"degraded"`
}

type Page struct {
	Title           string
	Excerpt         string
	Body            string
	MetaTitle       string
	MetaDescription string
	Keywords        string
	Image           string
	Canonical       string
	Locale          string
	Direction       string
	Alternates      []Alternate
}

type Site struct {
	Name           string
	URL            string
	Description    string
	DefaultOGImage string
}

// BuildMeta fills page metadata with fallbacks: meta title, then title;
// meta description, then excerpt, then the body text.
func BuildMeta(page Page, site Site) Meta {
	meta := Meta{
		Title:      firstNonEmpty(page.MetaTitle, page.Title, site.Name),
		Keywords:   page.Keywords,
		Canonical:  page.Canonical,
		OGType:     "article",
		OGSiteName: site.Name,
		OGLocale:   page.Locale,
		Direction:  firstNonEmpty(page.Direction, "ltr"),
		Alternates: page.Alternates,
	}
	if meta.Alternates == nil {
		meta.Alternates = []Alternate{}
	}

	switch {
	case page.MetaDescription != "":
		meta.Description = page.MetaDescription
	case page.Excerpt != "":
		meta.Description = Truncate(StripHTML(page.Excerpt), descriptionLength)
	default:
		meta.Description = Truncate(StripHTML(page.Body), descriptionLength)
	}

	meta.OGTitle = meta.Title
	meta.OGDescription = meta.Description
	meta.OGImage = absoluteURL(firstNonEmpty(page.Image, site.DefaultOGImage), site.URL)
	return meta
}

// SiteMeta is the metadata served when no page data is available.
func SiteMeta(site Site, locale string) Meta {
	return Meta{
		Title:         site.Name,
		Description:   site.Description,
		Canonical:     site.URL,
		OGTitle:       site.Name,
		OGDescription: site.Description,
		OGImage:       absoluteURL(site.DefaultOGImage, site.URL),
		OGType:        "website",
		OGSiteName:    site.Name,
		OGLocale:      locale,
		Direction:     "ltr",
		Alternates:    []Alternate{},
	}
}

// StripHTML returns the text content of s with whitespace collapsed.
func StripHTML(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(textOnly.Sanitize(s))), " ")
}

// Truncate shortens s to at most n runes, cutting at a word boundary when
// possible and appending "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:n-3])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}

func absoluteURL(u, base string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(u, "/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
