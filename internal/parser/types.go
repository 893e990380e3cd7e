package parser

// ParseOptions controls workbook normalization.
type ParseOptions struct {
	// SheetName is the worksheet carrying the daily stats grid.
	SheetName string
	// SkipRows is the preamble row count above the header row.
	SkipRows int
	// ForecastMarker splits History from Forecast when found (case-insensitive)
	// in a date cell. Empty disables the split.
	ForecastMarker string
	// Synonyms maps canonical column names to accepted header spellings.
	Synonyms map[string][]string
	// Months, when non-empty, restricts output to dates whose "Jan-2006"
	// period key is listed. Empty accepts every parseable date.
	Months []string
}

// Canonical column names produced by the field mapper.
const (
	ColDate      = "Date"
	ColOccupancy = "Total Occ"
	ColRate      = "ADR"
	ColRevenue   = "Revenue"
)

// DefaultParseOptions matches the upload-file convention: data on "Sheet2"
// below a 2-row preamble.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SheetName:      "Sheet2",
		SkipRows:       2,
		ForecastMarker: "Forecast",
		Synonyms: map[string][]string{
			ColDate:      {"Date"},
			ColOccupancy: {"Total Occ", "Total Occupancy"},
			ColRate:      {"ADR", "Average Rate", "Avg Rate"},
			ColRevenue:   {"Revenue", "Room Revenue", "Total Revenue"},
		},
	}
}
