package gsheet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"invite-bot/internal/models"
)

// Source reads survey rows straight from the spreadsheet through the
// Sheets API with a service-account credential.
type Source struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
	cols          models.ColumnMap
}

func New(serviceAccountJSONPath, spreadsheetID, sheetName string, cols models.ColumnMap) (*Source, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	ctx := context.Background()
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, err
	}
	return &Source{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		cols:          cols,
	}, nil
}

func (s *Source) Name() string { return "gsheet" }

func (s *Source) Fetch(ctx context.Context) ([]models.Response, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName+"!A:Z").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	values := resp.Values
	if len(values) == 0 {
		return nil, nil
	}

	// header row at index 0
	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = fmt.Sprint(v)
	}

	out := make([]models.Response, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) == 0 {
			continue
		}
		extra := map[string]string{}
		for j, name := range header {
			if j < len(row) {
				extra[name] = fmt.Sprint(row[j])
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
