package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"invite-bot/internal/models"
)

// Source fetches the spreadsheet's CSV export URL once per run. The
// first row is the header; every column is kept in Extra so auxiliary
// survey fields pass through untouched.
type Source struct {
	httpClient *http.Client
	url        string
	cols       models.ColumnMap
}

func New(url string, cols models.ColumnMap) *Source {
	return &Source{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		cols:       cols,
	}
}

func (s *Source) Name() string { return "csv" }

func (s *Source) Fetch(ctx context.Context) ([]models.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet export: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet export: status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet export: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	out := make([]models.Response, 0, len(records)-1)
	for _, rec := range records[1:] {
		extra := map[string]string{}
		for i, name := range header {
			if i < len(rec) {
				extra[name] = rec[i]
			}
		}
		out = append(out, models.Response{
			IdentityClaim: strings.TrimSpace(extra[s.cols.Identity]),
			SubmittedAt:   extra[s.cols.Timestamp],
			Team:          extra[s.cols.Team],
			Extra:         extra,
		})
	}
	return out, nil
}
