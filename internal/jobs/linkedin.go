package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Scrape stages, in degradation order.
const (
	SourceSelector = "selector"
	SourceMeta     = "meta"
	SourceFiltered = "filtered"
	SourceURLPath  = "url"
)

// selectorCandidates are tried in order against the fetched page. LinkedIn
// markup changes often, so several generations of class names are listed.
var selectorCandidates = []string{
	".description__text",
	".show-more-less-html__markup",
	".jobs-description__content",
	".jobs-box__html-content",
	"#job-details",
	"[class*=description]",
}

var sectionKeywords = []string{
	"responsibilities", "requirements", "qualifications", "experience",
	"skills", "about the role", "what you'll do", "who you are",
}

// IsLinkedInURL reports whether input looks like a LinkedIn job posting URL.
func IsLinkedInURL(input string) bool {
	parsed, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return strings.Contains(parsed.Host, "linkedin.com")
}

// ScrapeLinkedIn fetches a LinkedIn job posting and extracts the best
// available description text. It never fails outright: each extraction
// stage degrades to the next, ending with a placeholder derived from the
// URL path. The returned source names the stage that produced the text.
func ScrapeLinkedIn(ctx context.Context, rawURL string) (description, source string) {
	doc, err := fetchDocument(ctx, rawURL)
	if err != nil {
		return descriptionFromURLPath(rawURL), SourceURLPath
	}

	// Stage 1: known description containers.
	for _, selector := range selectorCandidates {
		text := collapseWhitespace(doc.Find(selector).First().Text())
		if len(text) > 200 {
			return text, SourceSelector
		}
	}

	// Stage 2: meta description.
	if meta, ok := metaDescription(doc); ok && len(meta) > 80 {
		return meta, SourceMeta
	}

	// Stage 3: body text filtered to lines near job-description keywords.
	if filtered := keywordFilteredText(doc); len(filtered) > 100 {
		return filtered, SourceFiltered
	}

	// Stage 4: synthesize something from the URL itself.
	return descriptionFromURLPath(rawURL), SourceURLPath
}

func fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// LinkedIn serves a stripped page to unknown agents; a browser UA gets
	// the public job view.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func metaDescription(doc *goquery.Document) (string, bool) {
	if content, exists := doc.Find(`meta[name="description"]`).Attr("content"); exists {
		return collapseWhitespace(content), true
	}
	if content, exists := doc.Find(`meta[property="og:description"]`).Attr("content"); exists {
		return collapseWhitespace(content), true
	}
	return "", false
}

func keywordFilteredText(doc *goquery.Document) string {
	var kept []string
	doc.Find("p, li, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if text == "" {
			return
		}
		lower := strings.ToLower(text)
		for _, kw := range sectionKeywords {
			if strings.Contains(lower, kw) {
				kept = append(kept, text)
				return
			}
		}
	})
	return strings.Join(kept, "\n")
}

// descriptionFromURLPath builds a last-resort placeholder from the job slug
// in the URL, e.g. /jobs/view/senior-software-engineer-at-acme-corp-123456.
func descriptionFromURLPath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "Job posting at " + rawURL
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	slug := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			slug = segments[i]
			break
		}
	}
	if slug == "" {
		return "Job posting at " + parsed.Host
	}

	// Drop a trailing numeric posting id.
	parts := strings.Split(slug, "-")
	for len(parts) > 0 && isDigits(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}

	title := strings.Join(parts, " ")
	company := ""
	if idx := strings.Index(title, " at "); idx > 0 {
		company = title[idx+len(" at "):]
		title = title[:idx]
	}

	if company != "" {
		return fmt.Sprintf("Position: %s at %s. Full description unavailable; derived from posting URL.", titleCase(title), titleCase(company))
	}
	return fmt.Sprintf("Position: %s. Full description unavailable; derived from posting URL.", titleCase(title))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
