// Package models defines data structures for the portfel advisor.
package models

import (
	"fmt"
	"regexp"
	"time"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{3,5}$`)

// Position represents a single stock position. Identity key is the
// symbol: a portfolio holds at most one position per symbol, and
// duplicate adds/imports merge into the existing position.
type Position struct {
	Symbol        string    `json:"symbol"`
	Quantity      int64     `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentPrice  float64   `json:"current_price"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

// Validate checks the position's field constraints.
func (p Position) Validate() error {
	if !symbolPattern.MatchString(p.Symbol) {
		return fmt.Errorf("symbol must be 3-5 uppercase letters, got %q", p.Symbol)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", p.Quantity)
	}
	if p.PurchasePrice <= 0 {
		return fmt.Errorf("purchase price must be positive, got %v", p.PurchasePrice)
	}
	if p.CurrentPrice < 0 {
		return fmt.Errorf("current price must not be negative, got %v", p.CurrentPrice)
	}
	if p.PurchaseDate.After(time.Now()) {
		return fmt.Errorf("purchase date %s is in the future", p.PurchaseDate.Format("2006-01-02"))
	}
	return nil
}

// MarketValue returns quantity x current price.
func (p Position) MarketValue() float64 {
	return float64(p.Quantity) * p.CurrentPrice
}

// CostBasis returns quantity x purchase price.
func (p Position) CostBasis() float64 {
	return float64(p.Quantity) * p.PurchasePrice
}

// PnL returns the absolute profit or loss.
func (p Position) PnL() float64 {
	return p.MarketValue() - p.CostBasis()
}

// PnLPercent returns the profit or loss relative to cost. Zero cost
// yields zero rather than a division error.
func (p Position) PnLPercent() float64 {
	cost := p.CostBasis()
	if cost == 0 {
		return 0
	}
	return p.PnL() / cost * 100
}

// Merge combines another position for the same symbol into this one:
// quantities add, the purchase price becomes the quantity-weighted
// average, the newer current price wins and the earlier purchase date
// is kept.
func (p Position) Merge(other Position) Position {
	total := p.Quantity + other.Quantity
	merged := Position{
		Symbol:       p.Symbol,
		Quantity:     total,
		CurrentPrice: other.CurrentPrice,
		PurchaseDate: p.PurchaseDate,
	}
	if total > 0 {
		merged.PurchasePrice = (p.CostBasis() + other.CostBasis()) / float64(total)
	}
	if other.PurchaseDate.Before(p.PurchaseDate) {
		merged.PurchaseDate = other.PurchaseDate
	}
	return merged
}
