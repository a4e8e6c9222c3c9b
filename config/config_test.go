package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("AIRTABLE_API_KEY", "key123")
	t.Setenv("AIRTABLE_BASE_ID", "app123")
	t.Setenv("AIRTABLE_TABLE_ID", "tbl123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "key123", cfg.AirtableAPIKey)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.AirtableAPIURL)
	assert.Equal(t, "https://", cfg.RequiredPrefix)
	assert.Equal(t, "linkedin.com", cfg.DomainSubstring)
	assert.Equal(t, "https://www.linkedin.com", cfg.CanonicalPrefix)
	assert.Equal(t, 10, cfg.MinLinkLength)
	assert.Equal(t, 50, cfg.MaxLinksPerPage)
	assert.Equal(t, 10, cfg.MaxRecords)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Second, cfg.RequestDelay)
	assert.True(t, cfg.FollowRedirects)
	assert.True(t, cfg.UpdateRecords)
	assert.True(t, cfg.SaveToFile)
	assert.Contains(t, cfg.ExcludedPaths, "/cookie-policy")
	assert.Equal(t, []string{"a[href]"}, cfg.LinkSelectors)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	os.Unsetenv("AIRTABLE_API_KEY")
	t.Setenv("AIRTABLE_BASE_ID", "app123")
	t.Setenv("AIRTABLE_TABLE_ID", "tbl123")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AIRTABLE_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_RECORDS", "3")
	t.Setenv("REQUEST_DELAY_MS", "250")
	t.Setenv("FOLLOW_REDIRECTS", "false")
	t.Setenv("EXCLUDE_SELECTORS", "nav, .ads ,footer")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxRecords)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	assert.False(t, cfg.FollowRedirects)
	assert.Equal(t, []string{"nav", ".ads", "footer"}, cfg.ExcludeSelectors)
}

func TestLoad_EmptyListMeansNoEntries(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXCLUDED_PATHS", "")
	t.Setenv("EXCLUDE_SELECTORS", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Empty(t, cfg.ExcludedPaths)
	assert.Empty(t, cfg.ExcludeSelectors)
	// Unset lists still use their defaults.
	assert.NotEmpty(t, cfg.BlockedExtensions)
}

func TestLoad_MalformedInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_LINKS_PER_PAGE", "lots")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_LINKS_PER_PAGE")
}

func TestLoad_MalformedBool(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPDATE_RECORDS", "maybe")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "UPDATE_RECORDS")
}

func TestLoad_NonPositiveMaxRecords(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_RECORDS", "0")

	_, err := Load()
	assert.Error(t, err)
}
