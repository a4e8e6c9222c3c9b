package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"linkscraper/domain"
	"linkscraper/repositories"
)

// PageScraper is the consumer-side contract for scraping one page.
type PageScraper interface {
	ScrapePage(ctx context.Context, pageURL string) []string
}

// OrchestratorService drives one run: fetch records, scrape each
// record's source page in order, write accepted links back, pace
// between records, then report. Every per-record failure is isolated;
// only an empty record set stops the run early.
type OrchestratorService struct {
	store        repositories.RecordStore
	scraper      PageScraper
	siteFilter   Filter
	reportWriter repositories.ReportWriter
	runRepo      repositories.RunRepository
	limiter      *rate.Limiter

	maxRecords    int
	linkColumn    string
	outputColumn  string
	updateRecords bool

	out    io.Writer
	logger *zap.Logger
}

// Functional Options Pattern
type OrchestratorOption func(*OrchestratorService)

func WithRecordStore(s repositories.RecordStore) OrchestratorOption {
	return func(o *OrchestratorService) { o.store = s }
}

func WithScraper(s PageScraper) OrchestratorOption {
	return func(o *OrchestratorService) { o.scraper = s }
}

func WithSiteFilter(f Filter) OrchestratorOption {
	return func(o *OrchestratorService) { o.siteFilter = f }
}

func WithReportWriter(w repositories.ReportWriter) OrchestratorOption {
	return func(o *OrchestratorService) { o.reportWriter = w }
}

func WithRunRepository(r repositories.RunRepository) OrchestratorOption {
	return func(o *OrchestratorService) { o.runRepo = r }
}

func WithRequestDelay(d time.Duration) OrchestratorOption {
	return func(o *OrchestratorService) {
		if d > 0 {
			o.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

func WithRecordLimit(n int) OrchestratorOption {
	return func(o *OrchestratorService) { o.maxRecords = n }
}

func WithColumns(linkColumn, outputColumn string) OrchestratorOption {
	return func(o *OrchestratorService) {
		o.linkColumn = linkColumn
		o.outputColumn = outputColumn
	}
}

func WithWriteBack(enabled bool) OrchestratorOption {
	return func(o *OrchestratorService) { o.updateRecords = enabled }
}

func WithOutput(w io.Writer) OrchestratorOption {
	return func(o *OrchestratorService) { o.out = w }
}

func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *OrchestratorService) { o.logger = l }
}

func NewOrchestratorService(opts ...OrchestratorOption) *OrchestratorService {
	o := &OrchestratorService{
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one batch and returns its summary. It never returns an
// error: failures surface as log lines and empty results.
func (o *OrchestratorService) Run(ctx context.Context) domain.RunSummary {
	o.logger.Info("starting link scraping run")

	summary := domain.RunSummary{}

	records, err := o.store.FetchRecords(ctx)
	if err != nil {
		o.logger.Error("record fetch failed", zap.Error(err))
		return summary
	}
	if len(records) == 0 {
		o.logger.Warn("no records found in store")
		return summary
	}

	if o.maxRecords > 0 && len(records) > o.maxRecords {
		records = records[:o.maxRecords]
	}
	o.logger.Info("processing records", zap.Int("count", len(records)))

	for i, record := range records {
		row := i + 1

		sourceURL := strings.TrimSpace(record.SourceURL(o.linkColumn))
		if sourceURL == "" {
			o.logger.Warn("no source URL in record",
				zap.String("record_id", record.ID), zap.Int("row", row))
			continue
		}
		sourceURL = normalizeURL(sourceURL)

		o.logger.Info("processing record",
			zap.Int("row", row), zap.Int("total", len(records)),
			zap.String("url", sourceURL))

		if o.limiter != nil {
			if err := o.limiter.Wait(ctx); err != nil {
				o.logger.Warn("run cancelled", zap.Error(err))
				break
			}
		}

		links := o.scraper.ScrapePage(ctx, sourceURL)
		if o.siteFilter != nil {
			links = applyFilter(o.siteFilter, links)
		}
		if links == nil {
			// The report field is a list; failed or linkless pages
			// serialize as [], not null.
			links = []string{}
		}

		result := domain.ScrapeResult{
			RowNumber: row,
			RecordID:  record.ID,
			SourceURL: sourceURL,
			Links:     links,
			LinkCount: len(links),
		}
		summary.Results = append(summary.Results, result)
		summary.TotalLinks += result.LinkCount

		if o.updateRecords {
			value := strings.Join(links, "\n")
			if err := o.store.UpdateRecord(ctx, record.ID, o.outputColumn, value); err != nil {
				o.logger.Error("record write-back failed", zap.Error(err))
			} else {
				o.logger.Info("updated record",
					zap.String("record_id", record.ID), zap.Int("links", len(links)))
			}
		}
	}

	o.report(summary)
	return summary
}

func (o *OrchestratorService) report(summary domain.RunSummary) {
	if o.reportWriter != nil {
		if err := o.reportWriter.Write(summary.Results); err != nil {
			o.logger.Error("report write failed", zap.Error(err))
		} else {
			o.logger.Info("report saved")
		}
	}

	if o.runRepo != nil {
		if err := o.runRepo.SaveRun(summary); err != nil {
			o.logger.Error("run persistence failed", zap.Error(err))
		}
	}

	o.logger.Info("run completed",
		zap.Int("records", len(summary.Results)),
		zap.Int("total_links", summary.TotalLinks))

	fmt.Fprintf(o.out, "\n=== SCRAPING SUMMARY ===\n")
	for _, result := range summary.Results {
		fmt.Fprintf(o.out, "Row %d: %s -> %d links\n",
			result.RowNumber, result.SourceURL, result.LinkCount)
		sample := result.Links
		if len(sample) > 5 {
			sample = sample[:5]
		}
		for _, link := range sample {
			fmt.Fprintf(o.out, "  - %s\n", link)
		}
		if extra := len(result.Links) - 5; extra > 0 {
			fmt.Fprintf(o.out, "  ... and %d more\n", extra)
		}
	}
}

// normalizeURL defaults the scheme to https for bare host values.
func normalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func applyFilter(f Filter, links []string) []string {
	var kept []string
	for _, link := range links {
		if f.Accept(link) {
			kept = append(kept, link)
		}
	}
	return kept
}
