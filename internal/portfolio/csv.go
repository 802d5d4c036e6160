package portfolio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

// csvHeader is the required column order for position imports.
var csvHeader = []string{"symbol", "quantity", "purchase_price", "current_price", "purchase_date"}

const csvDateLayout = "2006-01-02"

// RowError reports a rejected CSV row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a CSV import run.
type ImportResult struct {
	Imported int        `json:"imported"`
	Merged   int        `json:"merged"`
	Skipped  []RowError `json:"skipped,omitempty"`
}

// ImportCSV reads positions from CSV and merges them into the store.
// Invalid rows are reported in the result and skipped; valid rows are
// still imported. The header row is mandatory.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return result, err
	}

	held := make(map[string]bool)
	for _, p := range s.List(ctx) {
		held[p.Symbol] = true
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}

		p, err := parseRow(record)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}

		if _, err := s.Put(ctx, p); err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}

		if held[p.Symbol] {
			result.Merged++
		} else {
			result.Imported++
			held[p.Symbol] = true
		}
	}

	s.logger.Info().
		Int("imported", result.Imported).
		Int("merged", result.Merged).
		Int("skipped", len(result.Skipped)).
		Msg("CSV import complete")

	return result, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("column %d must be %q, got %q", i+1, want, header[i])
		}
	}
	return nil
}

func parseRow(record []string) (models.Position, error) {
	if len(record) != len(csvHeader) {
		return models.Position{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid quantity %q", record[1])
	}
	purchasePrice, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid purchase price %q", record[2])
	}
	currentPrice, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid current price %q", record[3])
	}
	purchaseDate, err := time.Parse(csvDateLayout, strings.TrimSpace(record[4]))
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid purchase date %q, want YYYY-MM-DD", record[4])
	}

	p := models.Position{
		Symbol:        strings.TrimSpace(record[0]),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  purchaseDate,
	}
	if err := p.Validate(); err != nil {
		return models.Position{}, err
	}
	return p, nil
}
