package services

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"linkscraper/repositories"
)

// Extractor is the consumer-side contract for HTML link extraction.
type Extractor interface {
	Extract(pageURL *url.URL, body io.Reader) ([]string, error)
}

// ScraperService fetches one page and returns the deduplicated,
// policy-filtered, size-capped set of links. Page-level failures are
// logged and yield an empty set; they never reach the caller.
type ScraperService struct {
	fetcher   repositories.PageFetcher
	extractor Extractor
	filter    Filter
	maxLinks  int
	logger    *zap.Logger
}

func NewScraperService(fetcher repositories.PageFetcher, extractor Extractor, filter Filter, maxLinks int, logger *zap.Logger) *ScraperService {
	return &ScraperService{
		fetcher:   fetcher,
		extractor: extractor,
		filter:    filter,
		maxLinks:  maxLinks,
		logger:    logger,
	}
}

func (s *ScraperService) ScrapePage(ctx context.Context, pageURL string) []string {
	s.logger.Info("scraping links", zap.String("url", pageURL))

	resp, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger.Error("page fetch failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Error("page fetch returned non-2xx status",
			zap.String("url", pageURL), zap.Int("status", resp.StatusCode))
		return nil
	}

	// Redirects may have landed elsewhere; relative links resolve
	// against where the response actually came from.
	finalURL := resp.Request.URL

	candidates, err := s.extractor.Extract(finalURL, resp.Body)
	if err != nil {
		s.logger.Error("page parse failed", zap.Error(err))
		return nil
	}

	var accepted []string
	for _, link := range candidates {
		if s.filter.Accept(link) {
			accepted = append(accepted, link)
		}
	}

	if s.maxLinks > 0 && len(accepted) > s.maxLinks {
		accepted = accepted[:s.maxLinks]
	}

	s.logger.Info("found valid links",
		zap.String("url", pageURL), zap.Int("count", len(accepted)))
	return accepted
}
