// Package portfolio persists the user's stock positions over the
// key-value storage port. Positions are stored as one JSON blob;
// reads fail soft to an empty portfolio.
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

const positionsKey = "portfel:portfolio-positions"

// Store owns position persistence. One position per symbol; adding a
// symbol that already exists merges into the stored position.
type Store struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewStore creates a position store over the given key-value storage.
func NewStore(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// List returns all positions sorted by symbol. Missing or corrupted
// stored data yields an empty list.
func (s *Store) List(ctx context.Context) []models.Position {
	raw, err := s.kv.Get(ctx, positionsKey)
	if err != nil {
		return nil
	}

	var positions []models.Position
	if err := json.Unmarshal([]byte(raw), &positions); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("stored positions corrupted, resetting to empty")
		return nil
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })
	return positions
}

// Put validates and stores a position, merging with any existing
// position for the same symbol. Returns the stored (possibly merged)
// position.
func (s *Store) Put(ctx context.Context, p models.Position) (models.Position, error) {
	if err := p.Validate(); err != nil {
		return models.Position{}, err
	}

	positions := s.List(ctx)
	merged := p
	replaced := false
	for i, existing := range positions {
		if existing.Symbol == p.Symbol {
			merged = existing.Merge(p)
			positions[i] = merged
			replaced = true
			break
		}
	}
	if !replaced {
		positions = append(positions, p)
	}

	if err := s.write(ctx, positions); err != nil {
		return models.Position{}, err
	}
	return merged, nil
}

// Remove deletes the position for a symbol. Returns false when the
// symbol is not held.
func (s *Store) Remove(ctx context.Context, symbol string) bool {
	positions := s.List(ctx)
	kept := positions[:0]
	found := false
	for _, p := range positions {
		if p.Symbol == symbol {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false
	}
	if err := s.write(ctx, kept); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist position removal")
		return false
	}
	return true
}

// Replace overwrites the whole stored position list.
func (s *Store) Replace(ctx context.Context, positions []models.Position) error {
	for _, p := range positions {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("position %s: %w", p.Symbol, err)
		}
	}
	return s.write(ctx, positions)
}

// Clear removes all stored positions.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, positionsKey)
}

func (s *Store) write(ctx context.Context, positions []models.Position) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to serialize positions: %w", err)
	}
	if err := s.kv.Set(ctx, positionsKey, string(data)); err != nil {
		return fmt.Errorf("failed to store positions: %w", err)
	}
	return nil
}
