package report

import (
	"fmt"
	"strings"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

// FormatBody renders a report as deterministic notification text.
// Lines appear in fixed order: the portfolio line always, the change
// line only when the value changed, mover lines only when present.
// The portfolio line applies the signed format to the current total
// value, so a non-negative total renders with a leading "+" even though
// it is not a delta. Intentional: matches the shipped notification text.
func FormatBody(r models.PortfolioReport) string {
	lines := []string{
		fmt.Sprintf("Portfolio: %s (%s)",
			common.FormatSignedAmount(r.Summary.TotalValue),
			common.FormatSignedPercent(r.Summary.TotalPnLPercent)),
	}

	if r.Changes.ValueChange != 0 {
		lines = append(lines, fmt.Sprintf("Change: %s (%s)",
			common.FormatSignedAmount(r.Changes.ValueChange),
			common.FormatSignedPercent(r.Changes.ValueChangePercent)))
	}
	if g := r.Changes.TopGainer; g != nil {
		lines = append(lines, fmt.Sprintf("Top gainer: %s %s",
			g.Symbol, common.FormatSignedPercent(g.ChangePercent)))
	}
	if l := r.Changes.TopLoser; l != nil {
		lines = append(lines, fmt.Sprintf("Top loser: %s %s",
			l.Symbol, common.FormatSignedPercent(l.ChangePercent)))
	}

	return strings.Join(lines, "\n")
}
