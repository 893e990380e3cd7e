package model

import (
	"encoding/json"
	"time"
)

// Number is a numeric cell value with an explicit missing state.
// Downstream code never re-checks column existence; a column absent from the
// source simply yields invalid Numbers for every row.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// None returns the missing-value sentinel.
func None() Number {
	return Number{}
}

// OrZero returns the value, treating missing as 0.
// Pickup arithmetic is defined over OrZero, not over Valid.
func (n Number) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// MarshalJSON renders missing values as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts null as missing.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// Label partitions rows by whether their date precedes the first
// "Forecast"-marked row of the source workbook.
type Label string

const (
	LabelHistory  Label = "History"
	LabelForecast Label = "Forecast"
)

// CanonicalRow is one normalized per-property-per-date record.
type CanonicalRow struct {
	Property  string    `json:"property"`
	Date      time.Time `json:"date"`
	Occupancy Number    `json:"occupancy"`
	Rate      Number    `json:"rate"`
	Revenue   Number    `json:"revenue"`
	Label     Label     `json:"label"`
}

// MonthYear is the legacy period key ("Jul-2025") used by the
// per-month replacement policy.
func (r CanonicalRow) MonthYear() string {
	return r.Date.Format("Jan-2006")
}

// Key identifies a row within a persisted table.
type Key struct {
	Property string
	Date     string // yyyy-mm-dd
}

// RowKey returns the composite (property, date) key.
func (r CanonicalRow) RowKey() Key {
	return Key{Property: r.Property, Date: r.Date.Format("2006-01-02")}
}

// StoredRow is the persisted form of a canonical row, carrying the pickup
// deltas computed at write time.
type StoredRow struct {
	CanonicalRow
	PickupOccupancy float64 `json:"pickupOccupancy"`
	PickupRevenue   float64 `json:"pickupRevenue"`
}
