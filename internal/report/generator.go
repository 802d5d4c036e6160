// Package report computes portfolio reports by diffing the current
// positions against the last stored snapshot, and maintains the bounded
// notification history. Storage failures never propagate: reads fall
// back to "no prior data" and failed writes are logged and reported as
// false.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

const snapshotKey = "portfel:last-report-snapshot"

// Generator produces portfolio reports. The snapshot read-modify-write
// is serialized with a mutex so concurrent triggers cannot interleave a
// read between another call's read and write.
type Generator struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewGenerator creates a report generator over the given storage.
func NewGenerator(kv interfaces.KeyValueStorage, logger *common.Logger) *Generator {
	return &Generator{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// Generate computes a report for the given positions and unconditionally
// overwrites the stored snapshot with the new state, which makes delta
// computation stateful between calls. The first call (or any call after
// ClearSnapshot) reports zero change and no top movers.
func (g *Generator) Generate(ctx context.Context, positions []models.Position, period models.ReportPeriod, includePositions bool) models.PortfolioReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	summary := buildSummary(positions)

	var changes models.ReportChanges
	if snapshot, ok := g.loadSnapshot(ctx); ok {
		changes.ValueChange = summary.TotalValue - snapshot.TotalValue
		if snapshot.TotalValue != 0 {
			changes.ValueChangePercent = changes.ValueChange / snapshot.TotalValue * 100
		}
		changes.TopGainer, changes.TopLoser = topMovers(positions, snapshot)
	}

	report := models.PortfolioReport{
		ID:          newID(now),
		GeneratedAt: now,
		Period:      period,
		Summary:     summary,
		Changes:     changes,
	}
	if includePositions {
		details := make([]models.ReportPosition, 0, len(positions))
		for _, p := range positions {
			details = append(details, models.ReportPosition{
				Symbol:       p.Symbol,
				Quantity:     p.Quantity,
				CurrentPrice: p.CurrentPrice,
				PnL:          p.PnL(),
				PnLPercent:   p.PnLPercent(),
			})
		}
		report.Positions = &details
	}

	g.saveSnapshot(ctx, positions, summary.TotalValue, now)

	return report
}

// ClearSnapshot removes the stored snapshot, so the next report starts
// from a clean slate.
func (g *Generator) ClearSnapshot(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.kv.Delete(ctx, snapshotKey); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to clear snapshot")
		return false
	}
	return true
}

func buildSummary(positions []models.Position) models.ReportSummary {
	var summary models.ReportSummary
	for _, p := range positions {
		summary.TotalValue += p.MarketValue()
		summary.TotalCost += p.CostBasis()
	}
	summary.TotalPnL = summary.TotalValue - summary.TotalCost
	if summary.TotalCost != 0 {
		summary.TotalPnLPercent = summary.TotalPnL / summary.TotalCost * 100
	}
	summary.PositionCount = len(positions)
	return summary
}

// topMovers ranks current positions by price change since the snapshot.
// Symbols absent from the snapshot (new positions) are excluded. The
// best mover surfaces as gainer only when positive, the worst as loser
// only when negative, so an all-losses portfolio has no gainer and vice
// versa.
func topMovers(positions []models.Position, snapshot models.PortfolioSnapshot) (gainer, loser *models.TopMover) {
	var movers []models.TopMover
	for _, p := range positions {
		prev, ok := snapshot.Positions[p.Symbol]
		if !ok || prev.CurrentPrice == 0 {
			continue
		}
		movers = append(movers, models.TopMover{
			Symbol:        p.Symbol,
			ChangePercent: (p.CurrentPrice - prev.CurrentPrice) / prev.CurrentPrice * 100,
		})
	}
	if len(movers) == 0 {
		return nil, nil
	}

	sort.Slice(movers, func(i, j int) bool { return movers[i].ChangePercent > movers[j].ChangePercent })

	if top := movers[0]; top.ChangePercent > 0 {
		gainer = &top
	}
	if bottom := movers[len(movers)-1]; bottom.ChangePercent < 0 {
		loser = &bottom
	}
	return gainer, loser
}

func (g *Generator) loadSnapshot(ctx context.Context) (models.PortfolioSnapshot, bool) {
	raw, err := g.kv.Get(ctx, snapshotKey)
	if err != nil {
		return models.PortfolioSnapshot{}, false
	}
	var snapshot models.PortfolioSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("stored snapshot corrupted, treating as absent")
		return models.PortfolioSnapshot{}, false
	}
	return snapshot, true
}

func (g *Generator) saveSnapshot(ctx context.Context, positions []models.Position, totalValue float64, now time.Time) {
	snapshot := models.PortfolioSnapshot{
		Timestamp:  now,
		TotalValue: totalValue,
		Positions:  make(map[string]models.SnapshotPosition, len(positions)),
	}
	for _, p := range positions {
		snapshot.Positions[p.Symbol] = models.SnapshotPosition{
			Quantity:     p.Quantity,
			CurrentPrice: p.CurrentPrice,
			PnL:          p.PnL(),
			PnLPercent:   p.PnLPercent(),
		}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to serialize snapshot")
		return
	}
	// Write failures do not block the report from being returned.
	if err := g.kv.Set(ctx, snapshotKey, string(data)); err != nil {
		g.logger.Warn().Str("error", err.Error()).Msg("failed to save snapshot")
	}
}

func newID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
