package domain

// Record is one unit of work fetched from the record store: an opaque
// id plus the record's named fields. Only string-valued fields are
// kept; the pipeline reads a single URL column.
type Record struct {
	ID     string
	Fields map[string]string
}

// SourceURL returns the value of the configured source-URL field, or
// "" when the field is missing or empty.
func (r Record) SourceURL(field string) string {
	return r.Fields[field]
}

// FilterPolicy is the immutable rule set a candidate link must satisfy.
// Host and path comparisons are case-insensitive; the prefix check is
// an exact string prefix on the raw URL.
type FilterPolicy struct {
	RequiredPrefix    string
	MinLinkLength     int
	DomainSubstring   string
	BlockedExtensions []string
	ExcludedPaths     []string
}

// SelectorSet holds the CSS selectors driving extraction. Exclude
// selectors are applied first, so excluded subtrees never contribute
// links no matter what the link selectors match.
type SelectorSet struct {
	ExcludeSelectors []string
	LinkSelectors    []string
}

// ScrapeResult is the outcome for one record. Built once per record,
// immutable afterwards; serialized into the JSON report as-is.
type ScrapeResult struct {
	RowNumber int      `json:"row_number"`
	RecordID  string   `json:"record_id"`
	SourceURL string   `json:"source_url"`
	Links     []string `json:"linkedin_links"`
	LinkCount int      `json:"linkedin_links_count"`
}

// RunSummary collects the results of one run in row order.
type RunSummary struct {
	Results    []ScrapeResult
	TotalLinks int
}
