package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
)

var dateRe = regexp.MustCompile(`(\d{1,2})-([A-Za-z]{3})-(\d{4})`)

// ExtractDate finds the first DD-MMM-YYYY shaped substring inside noisy cell
// text and parses it. Month case in source files varies ("JUL", "Jul").
func ExtractDate(text string) (time.Time, bool) {
	matches := dateRe.FindStringSubmatch(text)
	if len(matches) < 4 {
		return time.Time{}, false
	}

	month := strings.ToUpper(matches[2][:1]) + strings.ToLower(matches[2][1:])
	normalized := matches[1] + "-" + month + "-" + matches[3]

	t, err := time.Parse("2-Jan-2006", normalized)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNumber coerces a cell to a Number, stripping thousands separators.
// Anything unparseable degrades to missing, never to an error.
func ParseNumber(cell string) model.Number {
	s := strings.TrimSpace(cell)
	if s == "" {
		return model.None()
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.None()
	}
	return model.Num(v)
}

// PropertyFromFilename derives the property identifier: second
// whitespace-delimited token of the filename, extension stripped.
// "Hashoo Karachi.xlsx" -> "Karachi".
func PropertyFromFilename(filename string) (string, bool) {
	tokens := strings.Fields(filename)
	if len(tokens) < 2 {
		return "", false
	}

	name := tokens[1]
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// NormalizeColumnName trims and collapses internal whitespace for header
// matching.
func NormalizeColumnName(col string) string {
	return strings.Join(strings.Fields(col), " ")
}
