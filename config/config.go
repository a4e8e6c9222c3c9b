package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full configuration surface, loaded from the
// environment once at startup. Every recognized option is an explicit
// field; malformed or missing required values fail Load rather than
// surfacing later as a lookup miss.
type Config struct {
	// Record store
	AirtableAPIURL   string
	AirtableAPIKey   string
	AirtableBaseID   string
	AirtableTableID  string
	LinkColumnName   string
	OutputColumnName string

	// Link filter policy
	RequiredPrefix    string
	MinLinkLength     int
	DomainSubstring   string
	CanonicalPrefix   string
	BlockedExtensions []string
	ExcludedPaths     []string

	// Selectors
	ExcludeSelectors []string
	LinkSelectors    []string

	// Scraping
	UserAgent       string
	RequestTimeout  time.Duration
	FollowRedirects bool
	MaxLinksPerPage int
	MaxRecords      int
	RequestDelay    time.Duration

	// Output
	UpdateRecords bool
	SaveToFile    bool
	OutputPath    string
	DatabaseURL   string
	LogLevel      string
}

func Load() (*Config, error) {
	cfg := &Config{
		AirtableAPIURL:   getEnv("AIRTABLE_API_URL", "https://api.airtable.com/v0"),
		AirtableAPIKey:   os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:   os.Getenv("AIRTABLE_BASE_ID"),
		AirtableTableID:  os.Getenv("AIRTABLE_TABLE_ID"),
		LinkColumnName:   getEnv("LINK_COLUMN_NAME", "Website"),
		OutputColumnName: getEnv("OUTPUT_COLUMN_NAME", "LinkedIn Links"),

		RequiredPrefix:  getEnv("REQUIRED_PREFIX", "https://"),
		DomainSubstring: getEnv("DOMAIN_SUBSTRING", "linkedin.com"),
		CanonicalPrefix: getEnv("CANONICAL_PREFIX", "https://www.linkedin.com"),
		BlockedExtensions: getEnvList("BLOCKED_EXTENSIONS",
			".jpg,.jpeg,.png,.gif,.svg,.pdf,.css,.js"),
		ExcludedPaths: getEnvList("EXCLUDED_PATHS",
			"/login,/signup,/help,/legal,/privacy,/cookie-policy"),

		ExcludeSelectors: getEnvList("EXCLUDE_SELECTORS", "nav,header,footer,script,style"),
		LinkSelectors:    getEnvList("LINK_SELECTORS", "a[href]"),

		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (compatible; linkscraper/1.0)"),

		OutputPath:  getEnv("OUTPUT_PATH", "scraped_links.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.AirtableAPIKey == "" {
		return nil, fmt.Errorf("AIRTABLE_API_KEY is required")
	}
	if cfg.AirtableBaseID == "" {
		return nil, fmt.Errorf("AIRTABLE_BASE_ID is required")
	}
	if cfg.AirtableTableID == "" {
		return nil, fmt.Errorf("AIRTABLE_TABLE_ID is required")
	}

	var err error
	if cfg.MinLinkLength, err = getEnvInt("MIN_LINK_LENGTH", 10); err != nil {
		return nil, err
	}
	if cfg.MaxLinksPerPage, err = getEnvInt("MAX_LINKS_PER_PAGE", 50); err != nil {
		return nil, err
	}
	if cfg.MaxRecords, err = getEnvInt("MAX_RECORDS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxRecords <= 0 {
		return nil, fmt.Errorf("MAX_RECORDS must be positive, got %d", cfg.MaxRecords)
	}

	timeoutSec, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	delayMs, err := getEnvInt("REQUEST_DELAY_MS", 1000)
	if err != nil {
		return nil, err
	}
	cfg.RequestDelay = time.Duration(delayMs) * time.Millisecond

	if cfg.FollowRedirects, err = getEnvBool("FOLLOW_REDIRECTS", true); err != nil {
		return nil, err
	}
	if cfg.UpdateRecords, err = getEnvBool("UPDATE_RECORDS", true); err != nil {
		return nil, err
	}
	if cfg.SaveToFile, err = getEnvBool("SAVE_TO_FILE", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvList falls back only when the variable is unset; an explicitly
// empty value means an empty list.
func getEnvList(key, fallback string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		raw = fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}
