package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/storage/memory"
)

func newTestGenerator() (*Generator, *memory.KVStorage) {
	kv := memory.NewKVStorage()
	g := NewGenerator(kv, common.NewSilentLogger())
	g.now = func() time.Time { return time.Date(2025, 8, 15, 17, 30, 0, 0, time.UTC) }
	return g, kv
}

func position(symbol string, qty int64, purchase, current float64) models.Position {
	return models.Position{
		Symbol:        symbol,
		Quantity:      qty,
		PurchasePrice: purchase,
		CurrentPrice:  current,
		PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateFirstReportSummary(t *testing.T) {
	g, _ := newTestGenerator()
	positions := []models.Position{
		position("AAA", 100, 50, 60),
		position("BBB", 50, 40, 35),
	}

	r := g.Generate(context.Background(), positions, models.PeriodDaily, false)

	assert.Equal(t, 7750.0, r.Summary.TotalValue)
	assert.Equal(t, 7000.0, r.Summary.TotalCost)
	assert.Equal(t, 750.0, r.Summary.TotalPnL)
	assert.InDelta(t, 10.71, r.Summary.TotalPnLPercent, 0.01)
	assert.Equal(t, 2, r.Summary.PositionCount)

	// No prior snapshot: zero change, no movers.
	assert.Zero(t, r.Changes.ValueChange)
	assert.Zero(t, r.Changes.ValueChangePercent)
	assert.Nil(t, r.Changes.TopGainer)
	assert.Nil(t, r.Changes.TopLoser)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, models.PeriodDaily, r.Period)
}

func TestGenerateIsStatefulBetweenCalls(t *testing.T) {
	g, _ := newTestGenerator()
	ctx := context.Background()
	positions := []models.Position{position("AAA", 100, 50, 60)}

	first := g.Generate(ctx, positions, models.PeriodDaily, false)
	require.Zero(t, first.Changes.ValueChange)

	// Identical positions: the second call diffs against the first
	// call's snapshot and still reports no change and no movers.
	second := g.Generate(ctx, positions, models.PeriodDaily, false)
	assert.Zero(t, second.Changes.ValueChange)
	assert.Zero(t, second.Changes.ValueChangePercent)
	assert.Nil(t, second.Changes.TopGainer)
	assert.Nil(t, second.Changes.TopLoser)

	// Now a price move shows up as a delta.
	moved := []models.Position{position("AAA", 100, 50, 66)}
	third := g.Generate(ctx, moved, models.PeriodDaily, false)
	assert.Equal(t, 600.0, third.Changes.ValueChange)
	assert.InDelta(t, 10.0, third.Changes.ValueChangePercent, 0.001)
	require.NotNil(t, third.Changes.TopGainer)
	assert.Equal(t, "AAA", third.Changes.TopGainer.Symbol)
	assert.InDelta(t, 10.0, third.Changes.TopGainer.ChangePercent, 0.001)
}

func TestTopMoverPolarity(t *testing.T) {
	ctx := context.Background()

	t.Run("all gains has no loser", func(t *testing.T) {
		g, _ := newTestGenerator()
		g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 50),
			position("BBB", 10, 40, 40),
		}, models.PeriodDaily, false)

		r := g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 55),
			position("BBB", 10, 40, 42),
		}, models.PeriodDaily, false)

		require.NotNil(t, r.Changes.TopGainer)
		assert.Equal(t, "AAA", r.Changes.TopGainer.Symbol)
		assert.Nil(t, r.Changes.TopLoser)
	})

	t.Run("all losses has no gainer", func(t *testing.T) {
		g, _ := newTestGenerator()
		g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 50),
			position("BBB", 10, 40, 40),
		}, models.PeriodDaily, false)

		r := g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 45),
			position("BBB", 10, 40, 39),
		}, models.PeriodDaily, false)

		assert.Nil(t, r.Changes.TopGainer)
		require.NotNil(t, r.Changes.TopLoser)
		assert.Equal(t, "AAA", r.Changes.TopLoser.Symbol)
	})

	t.Run("mixed moves surface both ends", func(t *testing.T) {
		g, _ := newTestGenerator()
		g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 50),
			position("BBB", 10, 40, 40),
			position("CCC", 10, 30, 30),
		}, models.PeriodDaily, false)

		r := g.Generate(ctx, []models.Position{
			position("AAA", 10, 50, 60),
			position("BBB", 10, 40, 36),
			position("CCC", 10, 30, 30),
		}, models.PeriodDaily, false)

		require.NotNil(t, r.Changes.TopGainer)
		require.NotNil(t, r.Changes.TopLoser)
		assert.Equal(t, "AAA", r.Changes.TopGainer.Symbol)
		assert.Equal(t, "BBB", r.Changes.TopLoser.Symbol)
	})
}

func TestNewPositionsExcludedFromMovers(t *testing.T) {
	g, _ := newTestGenerator()
	ctx := context.Background()

	g.Generate(ctx, []models.Position{position("AAA", 10, 50, 50)}, models.PeriodDaily, false)

	// NEW is not in the snapshot; its huge implied move must not rank.
	r := g.Generate(ctx, []models.Position{
		position("AAA", 10, 50, 49),
		position("NEW", 10, 1, 100),
	}, models.PeriodDaily, false)

	assert.Nil(t, r.Changes.TopGainer)
	require.NotNil(t, r.Changes.TopLoser)
	assert.Equal(t, "AAA", r.Changes.TopLoser.Symbol)
}

func TestZeroSnapshotTotalAvoidsDivideByZero(t *testing.T) {
	g, _ := newTestGenerator()
	ctx := context.Background()

	g.Generate(ctx, nil, models.PeriodDaily, false)

	r := g.Generate(ctx, []models.Position{position("AAA", 10, 50, 50)}, models.PeriodDaily, false)
	assert.Equal(t, 500.0, r.Changes.ValueChange)
	assert.Zero(t, r.Changes.ValueChangePercent)
}

func TestIncludePositionsDetail(t *testing.T) {
	g, _ := newTestGenerator()
	ctx := context.Background()

	t.Run("omitted when not requested", func(t *testing.T) {
		r := g.Generate(ctx, []models.Position{position("AAA", 10, 50, 60)}, models.PeriodDaily, false)
		assert.Nil(t, r.Positions)

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"positions"`)
	})

	t.Run("empty array when requested against empty portfolio", func(t *testing.T) {
		r := g.Generate(ctx, nil, models.PeriodDaily, true)
		require.NotNil(t, r.Positions)
		assert.Empty(t, *r.Positions)

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"positions":[]`)
	})

	t.Run("detail values", func(t *testing.T) {
		r := g.Generate(ctx, []models.Position{position("AAA", 100, 50, 60)}, models.PeriodDaily, true)
		require.NotNil(t, r.Positions)
		require.Len(t, *r.Positions, 1)
		detail := (*r.Positions)[0]
		assert.Equal(t, "AAA", detail.Symbol)
		assert.Equal(t, int64(100), detail.Quantity)
		assert.Equal(t, 1000.0, detail.PnL)
		assert.InDelta(t, 20.0, detail.PnLPercent, 0.001)
	})
}

func TestGenerateSurvivesStorageFailures(t *testing.T) {
	g, kv := newTestGenerator()
	ctx := context.Background()

	kv.FailWrites = true
	kv.FailReads = true

	// Reads fail soft to "no snapshot"; the failed snapshot write does
	// not block the report.
	r := g.Generate(ctx, []models.Position{position("AAA", 10, 50, 60)}, models.PeriodDaily, false)
	assert.Equal(t, 600.0, r.Summary.TotalValue)
	assert.Zero(t, r.Changes.ValueChange)
}

func TestCorruptedSnapshotTreatedAsAbsent(t *testing.T) {
	g, kv := newTestGenerator()
	ctx := context.Background()

	kv.Set(ctx, "portfel:last-report-snapshot", "not json at all")

	r := g.Generate(ctx, []models.Position{position("AAA", 10, 50, 60)}, models.PeriodDaily, false)
	assert.Zero(t, r.Changes.ValueChange)
	assert.Nil(t, r.Changes.TopGainer)
}

func TestClearSnapshot(t *testing.T) {
	g, _ := newTestGenerator()
	ctx := context.Background()
	positions := []models.Position{position("AAA", 10, 50, 60)}

	g.Generate(ctx, positions, models.PeriodDaily, false)
	require.True(t, g.ClearSnapshot(ctx))

	// After clearing, the next call behaves like the first.
	r := g.Generate(ctx, []models.Position{position("AAA", 10, 50, 66)}, models.PeriodDaily, false)
	assert.Zero(t, r.Changes.ValueChange)
	assert.Nil(t, r.Changes.TopGainer)
}
