package parser

import "strings"

// FieldMapper rewrites source header spellings to canonical column names.
type FieldMapper struct {
	// canonical name -> accepted spellings, matched case-insensitively after
	// whitespace normalization.
	synonyms map[string][]string
}

// NewFieldMapper builds a mapper from a synonym table. A nil table falls back
// to the defaults.
func NewFieldMapper(synonyms map[string][]string) *FieldMapper {
	if synonyms == nil {
		synonyms = DefaultParseOptions().Synonyms
	}
	return &FieldMapper{synonyms: synonyms}
}

// MapColumns resolves each canonical column to its index in the header row.
// Absent columns are simply missing from the result; the caller decides which
// ones are required.
func (m *FieldMapper) MapColumns(header []string) map[string]int {
	mapping := make(map[string]int)

	for idx, col := range header {
		col = NormalizeColumnName(col)
		if col == "" {
			continue
		}

		canonical, ok := m.canonicalFor(col)
		if !ok {
			continue
		}
		// First match wins; duplicated headers keep the leftmost column.
		if _, exists := mapping[canonical]; !exists {
			mapping[canonical] = idx
		}
	}

	return mapping
}

// canonicalFor matches one normalized header cell against the synonym table.
func (m *FieldMapper) canonicalFor(col string) (string, bool) {
	for canonical, spellings := range m.synonyms {
		for _, s := range spellings {
			if strings.EqualFold(col, NormalizeColumnName(s)) {
				return canonical, true
			}
		}
	}
	return "", false
}
