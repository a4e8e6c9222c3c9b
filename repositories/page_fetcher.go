package repositories

import (
	"context"
	"net/http"
	"time"

	"linkscraper/domain"
)

type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*http.Response, error)
}

// HTTPPageFetcher issues one GET per page with a fixed timeout and
// redirect policy. Status handling belongs to the caller.
type HTTPPageFetcher struct {
	client    *http.Client
	userAgent string
}

func NewPageFetcher(timeout time.Duration, followRedirects bool, userAgent string) *HTTPPageFetcher {
	client := &http.Client{Timeout: timeout}
	if !followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &HTTPPageFetcher{client: client, userAgent: userAgent}
}

func (pf *HTTPPageFetcher) Fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.PageFetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", pf.userAgent)

	resp, err := pf.client.Do(req)
	if err != nil {
		return nil, &domain.PageFetchError{URL: url, Err: err}
	}
	return resp, nil
}
