package services

import (
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"linkscraper/domain"
)

// ExtractorService turns one HTML document into candidate absolute
// URLs. Exclude selectors remove subtrees from the parsed document
// before the link selectors run, so nothing inside an excluded subtree
// can contribute a link. Pure: no network, no I/O beyond the reader.
type ExtractorService struct {
	selectors domain.SelectorSet
}

func NewExtractorService(selectors domain.SelectorSet) *ExtractorService {
	return &ExtractorService{selectors: selectors}
}

// Extract parses body and resolves every collected href against
// pageURL, the final post-redirect URL of the page. The result is
// deduplicated, in first-seen document order.
func (s *ExtractorService) Extract(pageURL *url.URL, body io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &domain.ParseError{URL: pageURL.String(), Err: err}
	}

	for _, selector := range s.selectors.ExcludeSelectors {
		doc.Find(selector).Remove()
	}

	seen := make(map[string]bool)
	var links []string
	for _, selector := range s.selectors.LinkSelectors {
		doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			href, ok := el.Attr("href")
			if !ok || href == "" {
				return
			}
			resolved, err := pageURL.Parse(href)
			if err != nil {
				return
			}
			abs := resolved.String()
			if !seen[abs] {
				seen[abs] = true
				links = append(links, abs)
			}
		})
	}

	return links, nil
}
