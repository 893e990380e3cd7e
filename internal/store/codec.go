package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/parser"
)

// Wire column headers of a persisted table. The budget table is maintained by
// hand and typically carries only a subset; decoding is header-driven and
// tolerates absent columns.
const (
	HdrProperty  = "Property"
	HdrDate      = "Date"
	HdrOccupancy = "Total Occ"
	HdrRate      = "ADR"
	HdrRevenue   = "Revenue"
	HdrLabel     = "Label"
	HdrMonthYear = "Month-Year"
	HdrPickupOcc = "Pickup Occ"
	HdrPickupRev = "Pickup Revenue"
)

// Header is the canonical column order written by EncodeRows.
func Header() []string {
	return []string{
		HdrProperty, HdrDate, HdrOccupancy, HdrRate, HdrRevenue,
		HdrLabel, HdrMonthYear, HdrPickupOcc, HdrPickupRev,
	}
}

// DecodeOptions control per-side date handling.
type DecodeOptions struct {
	// DateLayout, when set, parses date cells with this exact Go layout
	// (e.g. "2-Jan-06" for budget cells like "1-Jul-25"). When empty, dates
	// are extracted free-text from anywhere inside the cell.
	DateLayout string
}

// EncodeRows renders stored rows into the wire form, header first. Dates are
// written as DD-MMM-YYYY so the free-text decoder round-trips them. Missing
// numerics are blank cells.
func EncodeRows(rows []model.StoredRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, Header())

	for _, r := range rows {
		out = append(out, []string{
			r.Property,
			r.Date.Format("02-Jan-2006"),
			encodeNumber(r.Occupancy),
			encodeNumber(r.Rate),
			encodeNumber(r.Revenue),
			string(r.Label),
			r.MonthYear(),
			strconv.FormatFloat(r.PickupOccupancy, 'f', -1, 64),
			strconv.FormatFloat(r.PickupRevenue, 'f', -1, 64),
		})
	}

	return out
}

// DecodeRows parses wire rows back into stored rows. Rows whose date cell is
// unparseable are dropped; unparseable numerics become missing values. A table
// with no header or no data decodes to an empty slice.
func DecodeRows(rows [][]string, opts DecodeOptions) []model.StoredRow {
	if len(rows) < 2 {
		return nil
	}

	cols := make(map[string]int)
	for idx, name := range rows[0] {
		name = parser.NormalizeColumnName(name)
		if _, exists := cols[name]; !exists {
			cols[name] = idx
		}
	}

	out := make([]model.StoredRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		date, ok := decodeDate(cellFor(cells, cols, HdrDate), opts.DateLayout)
		if !ok {
			continue
		}

		property := cellFor(cells, cols, HdrProperty)
		if property == "" {
			continue
		}

		row := model.StoredRow{
			CanonicalRow: model.CanonicalRow{
				Property:  property,
				Date:      date,
				Occupancy: parser.ParseNumber(cellFor(cells, cols, HdrOccupancy)),
				Rate:      parser.ParseNumber(cellFor(cells, cols, HdrRate)),
				Revenue:   parser.ParseNumber(cellFor(cells, cols, HdrRevenue)),
				Label:     decodeLabel(cellFor(cells, cols, HdrLabel)),
			},
			PickupOccupancy: parser.ParseNumber(cellFor(cells, cols, HdrPickupOcc)).OrZero(),
			PickupRevenue:   parser.ParseNumber(cellFor(cells, cols, HdrPickupRev)).OrZero(),
		}
		out = append(out, row)
	}

	return out
}

func decodeDate(cell, layout string) (time.Time, bool) {
	if layout == "" {
		return parser.ExtractDate(cell)
	}
	t, err := time.Parse(layout, cell)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func decodeLabel(cell string) model.Label {
	if cell == string(model.LabelForecast) {
		return model.LabelForecast
	}
	if cell == string(model.LabelHistory) {
		return model.LabelHistory
	}
	return ""
}

func encodeNumber(n model.Number) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func cellFor(cells []string, cols map[string]int, header string) string {
	idx, ok := cols[header]
	if !ok || idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// TransportError marks a failed read or replace on a TableStore backend.
type TransportError struct {
	Op    string // read / replace
	Table string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("table %s: %s: %v", e.Table, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
