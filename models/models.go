package models

import (
	"time"
)

// ScrapeRun is one execution of the batch.
type ScrapeRun struct {
	ID               int       `gorm:"primaryKey;autoIncrement"`
	StartedAt        time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP"`
	RecordsProcessed int       `gorm:"not null;default:0"`
	TotalLinks       int       `gorm:"not null;default:0"`
}

// TableName overrides the table name
func (ScrapeRun) TableName() string {
	return "scrape_runs"
}

// RecordResult is the outcome for one record within a run.
type RecordResult struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	RunID     int    `gorm:"not null;index"`
	RowNumber int    `gorm:"not null"`
	RecordID  string `gorm:"type:text;not null"`
	SourceURL string `gorm:"column:source_url;type:text;not null"`
	LinkCount int    `gorm:"not null;default:0"`

	// Relationships
	Run   ScrapeRun    `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Links []ResultLink `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (RecordResult) TableName() string {
	return "record_results"
}

// ResultLink is one accepted link belonging to a record result.
type ResultLink struct {
	ID       int    `gorm:"primaryKey;autoIncrement"`
	ResultID int    `gorm:"not null;index"`
	URL      string `gorm:"type:text;not null"`

	// Relationships
	Result RecordResult `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (ResultLink) TableName() string {
	return "result_links"
}
