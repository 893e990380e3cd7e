package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
)

// Report column names, in display order.
var Columns = []string{
	"Day", "Month",
	"Actual Occ", "Budget Occ",
	"ADR", "Revenue",
	"Pickup Occ", "Pickup Revenue",
	"Budget Revenue",
}

// Present groups merged rows by property and appends the three synthetic
// rows: Subtotal(History), Subtotal(Forecast), Total. Input must already be
// filtered and sorted (Merge's output is).
func Present(rows []model.MergedRow) map[string][]model.DisplayRow {
	byProperty := make(map[string][]model.MergedRow)
	for _, row := range rows {
		byProperty[row.Property] = append(byProperty[row.Property], row)
	}

	out := make(map[string][]model.DisplayRow, len(byProperty))
	for property, group := range byProperty {
		out[property] = presentProperty(group)
	}
	return out
}

func presentProperty(group []model.MergedRow) []model.DisplayRow {
	display := make([]model.DisplayRow, 0, len(group)+3)

	for _, row := range group {
		display = append(display, model.DisplayRow{
			Cells: map[string]string{
				"Day":            row.Day(),
				"Month":          row.Month(),
				"Actual Occ":     formatCount(row.ActualOccupancy),
				"Budget Occ":     formatCount(row.BudgetOccupancy),
				"ADR":            formatMoney(row.ActualRate),
				"Revenue":        formatMoney(row.ActualRevenue),
				"Pickup Occ":     formatSigned(row.PickupOccupancy),
				"Pickup Revenue": formatSigned(row.PickupRevenue),
				"Budget Revenue": formatMoney(row.BudgetRevenue),
			},
			Label: row.Label,
			Kind:  model.RowKindData,
		})
	}

	display = append(display,
		syntheticRow("Subtotal History", model.LabelHistory, model.RowKindSubtotalHistory,
			Aggregate(partition(group, model.LabelHistory))),
		syntheticRow("Subtotal Forecast", model.LabelForecast, model.RowKindSubtotalForecast,
			Aggregate(partition(group, model.LabelForecast))),
		syntheticRow("Total", "", model.RowKindTotal, Aggregate(group)),
	)

	return display
}

// Aggregate computes the unformatted totals for one partition. The rate is
// sum(revenue)/sum(occupancy) over the same partition, never an average of
// per-row rates; a partition with zero occupancy reports rate 0.
func Aggregate(rows []model.MergedRow) model.Aggregate {
	var agg model.Aggregate
	for _, row := range rows {
		agg.Occupancy += row.ActualOccupancy.OrZero()
		agg.Revenue += row.ActualRevenue.OrZero()
		agg.PickupOccupancy += row.PickupOccupancy.OrZero()
		agg.PickupRevenue += row.PickupRevenue.OrZero()
		agg.BudgetOccupancy += row.BudgetOccupancy.OrZero()
		agg.BudgetRevenue += row.BudgetRevenue.OrZero()
		agg.Rows++
	}
	agg.Rate = weightedRate(agg.Revenue, agg.Occupancy)
	agg.BudgetRate = weightedRate(agg.BudgetRevenue, agg.BudgetOccupancy)
	return agg
}

func weightedRate(revenue, occupancy float64) float64 {
	if occupancy == 0 {
		return 0
	}
	return revenue / occupancy
}

func partition(rows []model.MergedRow, label model.Label) []model.MergedRow {
	out := make([]model.MergedRow, 0, len(rows))
	for _, row := range rows {
		if row.Label == label {
			out = append(out, row)
		}
	}
	return out
}

func syntheticRow(title string, label model.Label, kind model.RowKind, agg model.Aggregate) model.DisplayRow {
	return model.DisplayRow{
		Cells: map[string]string{
			"Day":            title,
			"Month":          "",
			"Actual Occ":     formatCount(model.Num(agg.Occupancy)),
			"Budget Occ":     formatCount(model.Num(agg.BudgetOccupancy)),
			"ADR":            formatMoney(model.Num(agg.Rate)),
			"Revenue":        formatMoney(model.Num(agg.Revenue)),
			"Pickup Occ":     formatSigned(model.Num(agg.PickupOccupancy)),
			"Pickup Revenue": formatSigned(model.Num(agg.PickupRevenue)),
			"Budget Revenue": formatMoney(model.Num(agg.BudgetRevenue)),
		},
		Label: label,
		Kind:  kind,
	}
}

// formatMoney renders revenue/rate-like values as thousands-grouped integers.
func formatMoney(n model.Number) string {
	if !n.Valid {
		return ""
	}
	return groupThousands(math.Round(n.Value))
}

// formatCount renders occupancy values as plain numbers.
func formatCount(n model.Number) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// formatSigned renders pickup deltas with an explicit sign for gains.
func formatSigned(n model.Number) string {
	if !n.Valid {
		return ""
	}
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if n.Value > 0 {
		s = "+" + s
	}
	return s
}

func groupThousands(v float64) string {
	neg := v < 0
	digits := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
