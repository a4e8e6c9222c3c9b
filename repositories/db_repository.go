package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"linkscraper/domain"
	"linkscraper/models"
)

type RunRepository interface {
	SaveRun(summary domain.RunSummary) error
}

type PostgresRunRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewRunRepository(db *gorm.DB, batchSize int) *PostgresRunRepository {
	if batchSize <= 0 {
		batchSize = 100 // Default
	}
	return &PostgresRunRepository{
		db:        db,
		batchSize: batchSize,
	}
}

// SaveRun persists one run: the run row, then each record result with
// its accepted links batch-inserted.
func (repo *PostgresRunRepository) SaveRun(summary domain.RunSummary) error {
	run := models.ScrapeRun{
		RecordsProcessed: len(summary.Results),
		TotalLinks:       summary.TotalLinks,
	}
	if err := repo.db.Create(&run).Error; err != nil {
		return fmt.Errorf("failed to insert scrape run: %w", err)
	}

	for _, res := range summary.Results {
		row := models.RecordResult{
			RunID:     run.ID,
			RowNumber: res.RowNumber,
			RecordID:  res.RecordID,
			SourceURL: res.SourceURL,
			LinkCount: res.LinkCount,
		}
		if err := repo.db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert record result: %w", err)
		}

		if len(res.Links) == 0 {
			continue
		}
		links := make([]models.ResultLink, 0, len(res.Links))
		for _, link := range res.Links {
			links = append(links, models.ResultLink{
				ResultID: row.ID,
				URL:      link,
			})
		}
		if err := repo.db.CreateInBatches(links, repo.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert result links: %w", err)
		}
	}

	return nil
}
