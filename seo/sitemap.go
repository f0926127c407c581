// Package seo renders sitemaps and page metadata.
package seo

import (
	"encoding/xml"
	"strconv"
	"time"

	"galatide/models"
)

const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type SitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []SitemapRef `xml:"sitemap"`
}

// BuildURLSet renders entries as a sitemap urlset document.
func BuildURLSet(entries []models.SitemapEntry) ([]byte, error) {
	set := URLSet{
		XMLNS: XMLNamespace,
		URLs:  make([]SitemapURL, 0, len(entries)),
	}
	for _, e := range entries {
		u := SitemapURL{
			Loc:        e.URL,
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		if e.LastModified != nil && !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}
	return marshal(set)
}

// BuildIndex renders a sitemapindex pointing at each of locs.
func BuildIndex(locs []string) ([]byte, error) {
	index := SitemapIndex{
		XMLNS:    XMLNamespace,
		Sitemaps: make([]SitemapRef, 0, len(locs)),
	}
	for _, loc := range locs {
		index.Sitemaps = append(index.Sitemaps, SitemapRef{Loc: loc})
	}
	return marshal(index)
}

func marshal(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
