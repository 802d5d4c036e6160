package models

import "time"

// ReportPeriod distinguishes daily from weekly report runs.
type ReportPeriod string

const (
	PeriodDaily  ReportPeriod = "daily"
	PeriodWeekly ReportPeriod = "weekly"
)

// NotificationType tags history entries by the schedule that produced them.
type NotificationType string

const (
	TypeDailyReport  NotificationType = "daily_report"
	TypeWeeklyReport NotificationType = "weekly_report"
)

// SnapshotPosition is the per-symbol state recorded in a snapshot.
type SnapshotPosition struct {
	Quantity     int64   `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
}

// PortfolioSnapshot is the last-recorded portfolio valuation, used
// solely to compute deltas for the next report. Exactly one snapshot
// exists at a time; it reflects the portfolio as of the most recent
// report generation, not the live portfolio.
type PortfolioSnapshot struct {
	Timestamp  time.Time                   `json:"timestamp"`
	TotalValue float64                     `json:"total_value"`
	Positions  map[string]SnapshotPosition `json:"positions"`
}

// ReportSummary aggregates the current portfolio.
type ReportSummary struct {
	TotalValue      float64 `json:"total_value"`
	TotalCost       float64 `json:"total_cost"`
	TotalPnL        float64 `json:"total_pnl"`
	TotalPnLPercent float64 `json:"total_pnl_percent"`
	PositionCount   int     `json:"position_count"`
}

// TopMover identifies the strongest price change since the last snapshot.
type TopMover struct {
	Symbol        string  `json:"symbol"`
	ChangePercent float64 `json:"change_percent"`
}

// ReportChanges holds period-over-period deltas. TopGainer is present
// only when the best comparable mover is positive, TopLoser only when
// the worst is negative.
type ReportChanges struct {
	ValueChange        float64   `json:"value_change"`
	ValueChangePercent float64   `json:"value_change_percent"`
	TopGainer          *TopMover `json:"top_gainer,omitempty"`
	TopLoser           *TopMover `json:"top_loser,omitempty"`
}

// ReportPosition is the optional per-position detail attached to a report.
type ReportPosition struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
}

// PortfolioReport is one computed summary-plus-delta result. Immutable
// once created; persisted only embedded in a history entry.
// Positions is nil (omitted) when detail was not requested, and an
// empty non-nil slice when requested against an empty portfolio.
type PortfolioReport struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Period      ReportPeriod      `json:"period"`
	Summary     ReportSummary     `json:"summary"`
	Changes     ReportChanges     `json:"changes"`
	Positions   *[]ReportPosition `json:"positions,omitempty"`
}

// NotificationHistoryEntry records that a report was sent as a
// notification, with opened tracking.
type NotificationHistoryEntry struct {
	ID     string           `json:"id"`
	SentAt time.Time        `json:"sent_at"`
	Type   NotificationType `json:"type"`
	Report PortfolioReport  `json:"report"`
	Opened bool             `json:"opened"`
}
