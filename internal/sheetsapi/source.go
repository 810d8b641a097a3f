// Package sheetsapi loads experience records from the portfolio
// spreadsheet. The pipeline consumes the returned list as an immutable
// snapshot; editing lives in the surrounding app, not here.
package sheetsapi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// ExperienceRange covers the record columns: title, period,
// description, created-at, image URLs.
const ExperienceRange = "A:E"

// Source reads experience records from a spreadsheet.
type Source struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New builds a Source for one spreadsheet.
func New(ctx context.Context, ts oauth2.TokenSource, spreadsheetID string) (*Source, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	svc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Source{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ListExperiences returns the records in sheet order, header row
// skipped.
func (s *Source) ListExperiences(ctx context.Context) ([]types.ExperienceRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, ExperienceRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read experience sheet: %w", err)
	}
	return RecordsFromRows(resp.Values), nil
}

// RecordsFromRows maps raw sheet rows to experience records. The first
// row is the header; short rows are padded with empty fields and blank
// rows are dropped.
func RecordsFromRows(rows [][]interface{}) []types.ExperienceRecord {
	if len(rows) < 2 {
		return nil
	}

	records := make([]types.ExperienceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := types.ExperienceRecord{
			Title:       cellString(row, 0),
			Period:      cellString(row, 1),
			Description: cellString(row, 2),
			CreatedAt:   cellString(row, 3),
			ImageURLs:   splitImageURLs(cellString(row, 4)),
		}
		if rec.Title == "" && rec.Period == "" && rec.Description == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, ok := row[idx].(string)
	if !ok {
		return fmt.Sprintf("%v", row[idx])
	}
	return strings.TrimSpace(s)
}

func splitImageURLs(cell string) []string {
	if cell == "" {
		return nil
	}
	var urls []string
	for _, part := range strings.Split(cell, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
