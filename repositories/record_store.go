package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"linkscraper/domain"
)

// RecordStore abstracts the external record store: fetch the table,
// patch one record. Both operations are non-fatal to the run; the
// orchestrator decides what a failure means.
type RecordStore interface {
	FetchRecords(ctx context.Context) ([]domain.Record, error)
	UpdateRecord(ctx context.Context, recordID, field, value string) error
}

// AirtableStore talks to the Airtable REST API.
type AirtableStore struct {
	client   *http.Client
	tableURL string
	apiKey   string
	logger   *zap.Logger
}

func NewAirtableStore(apiURL, apiKey, baseID, tableID string, logger *zap.Logger) *AirtableStore {
	return &AirtableStore{
		client:   &http.Client{Timeout: 30 * time.Second},
		tableURL: fmt.Sprintf("%s/%s/%s", apiURL, baseID, tableID),
		apiKey:   apiKey,
		logger:   logger,
	}
}

type airtableRecord struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

type airtableListResponse struct {
	Records []airtableRecord `json:"records"`
}

type airtableUpdateRequest struct {
	Records []airtableRecord `json:"records"`
}

// FetchRecords lists the table in the store's order. Non-string field
// values are dropped; the pipeline only ever reads string columns.
func (s *AirtableStore) FetchRecords(ctx context.Context) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL, nil)
	if err != nil {
		return nil, &domain.FetchError{Err: err}
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var list airtableListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &domain.FetchError{Err: err}
	}

	records := make([]domain.Record, 0, len(list.Records))
	for _, r := range list.Records {
		fields := make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			if str, ok := v.(string); ok {
				fields[k] = str
			}
		}
		records = append(records, domain.Record{ID: r.ID, Fields: fields})
	}

	s.logger.Info("retrieved records from store", zap.Int("count", len(records)))
	return records, nil
}

// UpdateRecord patches a single field of one record.
func (s *AirtableStore) UpdateRecord(ctx context.Context, recordID, field, value string) error {
	payload := airtableUpdateRequest{
		Records: []airtableRecord{
			{ID: recordID, Fields: map[string]interface{}{field: value}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &domain.SyncWriteError{RecordID: recordID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.tableURL, bytes.NewReader(body))
	if err != nil {
		return &domain.SyncWriteError{RecordID: recordID, Err: err}
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.SyncWriteError{RecordID: recordID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return &domain.SyncWriteError{
			RecordID: recordID,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return nil
}

func (s *AirtableStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
