package fetcher

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTarget looks for the publisher URL inside an interstitial page served by
// the redirect host: a meta refresh first, then the canonical link. Relative URLs
// are resolved against base. URLs still on the redirect host are ignored.
func extractTarget(body io.Reader, base *url.URL, redirectHost *regexp.Regexp) string {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return ""
	}

	var candidates []string
	doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return
		}
		content, _ := s.Attr("content")
		if target := refreshURL(content); target != "" {
			candidates = append(candidates, target)
		}
	})
	doc.Find(`link[rel="canonical"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			candidates = append(candidates, strings.TrimSpace(href))
		}
	})

	for _, c := range candidates {
		ref, err := url.Parse(c)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		if abs.Host == "" || redirectHost.MatchString(abs.String()) {
			continue
		}
		return abs.String()
	}
	return ""
}

// refreshURL extracts the URL from a meta refresh content value such as
// `0; url='https://example.com/a'`.
func refreshURL(content string) string {
	for _, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		if len(part) < 4 || !strings.EqualFold(part[:4], "url=") {
			continue
		}
		return strings.Trim(strings.TrimSpace(part[4:]), `'"`)
	}
	return ""
}
