package model

import "time"

// MergedRow is the ephemeral outer-join of one actual row and one budget row
// on (property, date). Either side's numerics may be missing independently.
type MergedRow struct {
	Property string    `json:"property"`
	Date     time.Time `json:"date"`

	ActualOccupancy Number `json:"actualOccupancy"`
	ActualRate      Number `json:"actualRate"`
	ActualRevenue   Number `json:"actualRevenue"`
	PickupOccupancy Number `json:"pickupOccupancy"`
	PickupRevenue   Number `json:"pickupRevenue"`

	BudgetOccupancy Number `json:"budgetOccupancy"`
	BudgetRate      Number `json:"budgetRate"`
	BudgetRevenue   Number `json:"budgetRevenue"`

	Label Label `json:"label"`
}

// Day renders the short display form, e.g. "01-Jul".
func (r MergedRow) Day() string {
	return r.Date.Format("02-Jan")
}

// Month renders the full month name, e.g. "July".
func (r MergedRow) Month() string {
	return r.Date.Format("January")
}

// RowKind distinguishes data rows from the synthetic rows the presenter
// appends, so the UI can style them without re-deriving anything.
type RowKind string

const (
	RowKindData             RowKind = "data"
	RowKindSubtotalHistory  RowKind = "subtotal_history"
	RowKindSubtotalForecast RowKind = "subtotal_forecast"
	RowKindTotal            RowKind = "total"
)

// DisplayRow is one rendered report line: formatted cells keyed by report
// column name, plus the tags the UI colors rows by.
type DisplayRow struct {
	Cells map[string]string `json:"cells"`
	Label Label             `json:"label"`
	Kind  RowKind           `json:"kind"`
}

// Aggregate holds the unformatted totals for one label partition or for the
// whole property. Formatting never alters these.
type Aggregate struct {
	Occupancy       float64 `json:"occupancy"`
	Revenue         float64 `json:"revenue"`
	Rate            float64 `json:"rate"` // sum(revenue)/sum(occupancy), 0 when occupancy sums to 0
	PickupOccupancy float64 `json:"pickupOccupancy"`
	PickupRevenue   float64 `json:"pickupRevenue"`
	BudgetOccupancy float64 `json:"budgetOccupancy"`
	BudgetRevenue   float64 `json:"budgetRevenue"`
	BudgetRate      float64 `json:"budgetRate"`
	Rows            int     `json:"rows"`
}
