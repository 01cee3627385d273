package source

import (
	"context"
	"fmt"

	"invite-bot/internal/config"
	"invite-bot/internal/models"
	"invite-bot/internal/source/csvexport"
	"invite-bot/internal/source/gsheet"
)

// ResponseSource yields the raw survey rows for one batch run. Rows are
// returned in sheet order; duplicates and empty claims are the
// deduplicator's problem, not the source's.
type ResponseSource interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Response, error)
}

func New(cfg config.Config) (ResponseSource, error) {
	cols := models.ColumnMap{
		Identity:  cfg.IdentityColumn,
		Timestamp: cfg.TimestampColumn,
		Team:      cfg.TeamColumn,
	}
	switch cfg.ResponseSource {
	case "csv":
		return csvexport.New(cfg.SheetCSVURL, cols), nil
	case "gsheet":
		return gsheet.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID, cfg.ResponsesSheetName, cols)
	default:
		return nil, fmt.Errorf("unknown response source: %s", cfg.ResponseSource)
	}
}
