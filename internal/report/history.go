package report

import (
	"context"
	"encoding/json"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

const historyKey = "portfel:notification-history"

// maxHistoryEntries bounds the stored history; the oldest entries are
// silently evicted on overflow.
const maxHistoryEntries = 100

// SaveToHistory prepends a new history entry for the report and rewrites
// the full list, truncated to the most recent entries. Returns false
// when the write fails.
func (g *Generator) SaveToHistory(ctx context.Context, r models.PortfolioReport, typ models.NotificationType) bool {
	now := g.now()
	entry := models.NotificationHistoryEntry{
		ID:     newID(now),
		SentAt: now,
		Type:   typ,
		Report: r,
		Opened: false,
	}

	entries := append([]models.NotificationHistoryEntry{entry}, g.loadHistory(ctx)...)
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}

	return g.writeHistory(ctx, entries)
}

// History returns entries most-recent-first, optionally truncated to
// limit. A non-positive limit returns everything. Corrupted or missing
// stored data yields an empty list.
func (g *Generator) History(ctx context.Context, limit int) []models.NotificationHistoryEntry {
	entries := g.loadHistory(ctx)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// MarkOpened flips the opened flag on the entry with the given id and
// rewrites the list. Returns false when the id is not found or the
// write fails.
func (g *Generator) MarkOpened(ctx context.Context, id string) bool {
	entries := g.loadHistory(ctx)
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Opened = true
			return g.writeHistory(ctx, entries)
		}
	}
	return false
}

// ClearHistory removes the whole stored history list.
func (g *Generator) ClearHistory(ctx context.Context) bool {
	if err := g.kv.Delete(ctx, historyKey); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to clear notification history")
		return false
	}
	return true
}

func (g *Generator) loadHistory(ctx context.Context) []models.NotificationHistoryEntry {
	raw, err := g.kv.Get(ctx, historyKey)
	if err != nil {
		return nil
	}
	var entries []models.NotificationHistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("stored history corrupted, resetting to empty")
		return nil
	}
	return entries
}

func (g *Generator) writeHistory(ctx context.Context, entries []models.NotificationHistoryEntry) bool {
	data, err := json.Marshal(entries)
	if err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to serialize notification history")
		return false
	}
	if err := g.kv.Set(ctx, historyKey, string(data)); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to save notification history")
		return false
	}
	return true
}
