package parser

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
)

// Normalizer parses one uploaded workbook into canonical rows.
type Normalizer struct {
	opts   ParseOptions
	mapper *FieldMapper
}

// NewNormalizer creates a normalizer for the given options.
func NewNormalizer(opts ParseOptions) *Normalizer {
	if opts.SheetName == "" {
		opts.SheetName = DefaultParseOptions().SheetName
	}
	return &Normalizer{
		opts:   opts,
		mapper: NewFieldMapper(opts.Synonyms),
	}
}

// Normalize parses workbook content into canonical rows.
//
// Structural failures (bad filename shape, unreadable workbook, missing sheet
// or date column) return a *NormalizationError. Value-level noise is handled
// leniently: rows without a parseable date are dropped, unparseable numbers
// become missing values.
func (n *Normalizer) Normalize(content []byte, filename string) ([]model.CanonicalRow, error) {
	property, ok := PropertyFromFilename(filename)
	if !ok {
		return nil, &NormalizationError{
			Filename: filename,
			Reason:   "filename must contain at least two tokens (e.g. \"Hashoo Karachi.xlsx\")",
		}
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &NormalizationError{Filename: filename, Reason: "unreadable workbook", Err: err}
	}
	defer file.Close()

	rows, err := file.GetRows(n.opts.SheetName)
	if err != nil {
		return nil, &NormalizationError{Filename: filename, Reason: "worksheet " + n.opts.SheetName + " not found", Err: err}
	}

	if len(rows) <= n.opts.SkipRows {
		return nil, &NormalizationError{Filename: filename, Reason: "no data below preamble"}
	}

	grid := rows[n.opts.SkipRows:]
	header := grid[0]
	data := grid[1:]

	cols := n.mapper.MapColumns(header)
	dateCol, ok := cols[ColDate]
	if !ok {
		return nil, &NormalizationError{Filename: filename, Reason: "date column not found"}
	}

	forecastFrom := n.forecastBoundary(data, dateCol)

	out := make([]model.CanonicalRow, 0, len(data))
	for i, cells := range data {
		dateText := cellAt(cells, dateCol)

		date, ok := ExtractDate(dateText)
		if !ok {
			continue
		}
		if !n.monthAllowed(date.Format("Jan-2006")) {
			continue
		}

		label := model.LabelHistory
		if forecastFrom >= 0 && i >= forecastFrom {
			label = model.LabelForecast
		}

		out = append(out, model.CanonicalRow{
			Property:  property,
			Date:      date,
			Occupancy: numberAt(cells, cols, ColOccupancy),
			Rate:      numberAt(cells, cols, ColRate),
			Revenue:   numberAt(cells, cols, ColRevenue),
			Label:     label,
		})
	}

	return out, nil
}

// forecastBoundary returns the first data-row index whose date cell contains
// the forecast marker, or -1 when no marker exists (all rows History).
func (n *Normalizer) forecastBoundary(data [][]string, dateCol int) int {
	if n.opts.ForecastMarker == "" {
		return -1
	}
	marker := strings.ToLower(n.opts.ForecastMarker)
	for i, cells := range data {
		if strings.Contains(strings.ToLower(cellAt(cells, dateCol)), marker) {
			return i
		}
	}
	return -1
}

func (n *Normalizer) monthAllowed(monthYear string) bool {
	if len(n.opts.Months) == 0 {
		return true
	}
	for _, m := range n.opts.Months {
		if strings.EqualFold(m, monthYear) {
			return true
		}
	}
	return false
}

// cellAt tolerates excelize's ragged rows.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func numberAt(cells []string, cols map[string]int, canonical string) model.Number {
	idx, ok := cols[canonical]
	if !ok {
		return model.None()
	}
	return ParseNumber(cellAt(cells, idx))
}
