// Package report builds the actual-vs-budget view: an outer join of the two
// persisted series followed by per-property pivoting with subtotal rows.
package report

import (
	"sort"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

// MergeConfig declares each side's at-rest date format.
type MergeConfig struct {
	// ActualDateLayout parses the actual table's date cells; empty means
	// free-text DD-MMM-YYYY extraction (how the upsert store writes them).
	ActualDateLayout string
	// BudgetDateLayout parses the hand-maintained budget table's date cells,
	// e.g. "2-Jan-06" for "1-Jul-25".
	BudgetDateLayout string
}

// MergeResult carries the joined rows, or the reason nothing was joinable.
// Absence of usable data is an explanatory state, not an error.
type MergeResult struct {
	Rows []model.MergedRow `json:"rows"`
	// EmptyReason is set only when Rows is empty.
	EmptyReason string `json:"emptyReason,omitempty"`
}

// Merge outer-joins the actual and budget tables on (property, date).
//
// Each side is decoded independently; rows with unparseable dates are dropped
// per side and never block the other. After the join, only rows with an
// actualized occupancy are kept: budget-only future days are excluded from
// the rendered table by design.
func Merge(actualRaw, budgetRaw [][]string, cfg MergeConfig) MergeResult {
	actual := store.DecodeRows(actualRaw, store.DecodeOptions{DateLayout: cfg.ActualDateLayout})
	budget := store.DecodeRows(budgetRaw, store.DecodeOptions{DateLayout: cfg.BudgetDateLayout})

	if len(actual) == 0 && len(budget) == 0 {
		return MergeResult{EmptyReason: "no usable rows in either table"}
	}

	merged := make(map[model.Key]*model.MergedRow)

	for _, row := range actual {
		key := row.RowKey()
		m := ensureRow(merged, key, row)
		m.ActualOccupancy = row.Occupancy
		m.ActualRate = row.Rate
		m.ActualRevenue = row.Revenue
		m.PickupOccupancy = model.Num(row.PickupOccupancy)
		m.PickupRevenue = model.Num(row.PickupRevenue)
		if row.Label != "" {
			m.Label = row.Label
		}
	}

	for _, row := range budget {
		key := row.RowKey()
		m := ensureRow(merged, key, row)
		m.BudgetOccupancy = row.Occupancy
		m.BudgetRate = row.Rate
		m.BudgetRevenue = row.Revenue
		// Actual's label wins when present.
		if m.Label == "" {
			m.Label = row.Label
		}
	}

	rows := make([]model.MergedRow, 0, len(merged))
	for _, m := range merged {
		if !m.ActualOccupancy.Valid {
			continue
		}
		rows = append(rows, *m)
	}

	if len(rows) == 0 {
		return MergeResult{EmptyReason: "no actualized days to report"}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Property != rows[j].Property {
			return rows[i].Property < rows[j].Property
		}
		return rows[i].Date.Before(rows[j].Date)
	})

	return MergeResult{Rows: rows}
}

func ensureRow(merged map[model.Key]*model.MergedRow, key model.Key, src model.StoredRow) *model.MergedRow {
	if m, ok := merged[key]; ok {
		return m
	}
	m := &model.MergedRow{Property: src.Property, Date: src.Date}
	merged[key] = m
	return m
}
