// Package upsert merges normalized batches into a persisted table, computing
// period-over-period pickup deltas against the state read before the write.
package upsert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

// Policy selects the conflict-key scope of a merge.
type Policy string

const (
	// ReplaceByDate replaces only the exact (property, date) keys present in
	// the batch. Default; days absent from a resubmission are preserved.
	ReplaceByDate Policy = "date"
	// ReplaceByMonth is the legacy policy: every stored row matching a
	// (property, month-year) touched by the batch is removed before the batch
	// is appended. Days omitted from the batch are lost; the Summary counts
	// them so the hazard is visible rather than silent.
	ReplaceByMonth Policy = "month"
)

// PolicyFromString maps a config value to a Policy, defaulting to per-date.
func PolicyFromString(s string) Policy {
	if strings.EqualFold(s, string(ReplaceByMonth)) {
		return ReplaceByMonth
	}
	return ReplaceByDate
}

// UpsertError reports a persisted-table transport failure. Malformed input
// rows never produce it; they are coerced or dropped by policy.
type UpsertError struct {
	Op  string // read / replace
	Err error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert: %s failed: %v", e.Op, e.Err)
}

func (e *UpsertError) Unwrap() error {
	return e.Err
}

// Summary describes one completed merge.
type Summary struct {
	RowsWritten int      `json:"rowsWritten"`
	Properties  []string `json:"properties"`
	// DroppedDays counts previously stored (property, date) rows removed by
	// the per-month policy without a replacement in the batch. Always 0 under
	// per-date replacement.
	DroppedDays int `json:"droppedDays"`
}

// String renders the user-facing result line.
func (s Summary) String() string {
	msg := fmt.Sprintf("%d rows updated for %d property(ies)", s.RowsWritten, len(s.Properties))
	if s.DroppedDays > 0 {
		msg += fmt.Sprintf("; warning: month replacement dropped %d previously stored day(s)", s.DroppedDays)
	}
	return msg
}

// Store reconciles canonical-row batches into one persisted table.
type Store struct {
	table  store.TableStore
	policy Policy
}

// New creates an upsert store over the given table handle.
func New(table store.TableStore, policy Policy) *Store {
	if policy == "" {
		policy = ReplaceByDate
	}
	return &Store{table: table, policy: policy}
}

// Merge writes the batch into the persisted table.
//
// The sequence is read-all, reconcile in memory, replace-all: the caller's
// critical section. A concurrent external writer between the two calls loses
// its update; the table contract offers nothing stronger.
func (s *Store) Merge(batch []model.CanonicalRow) (Summary, error) {
	raw, err := s.table.ReadAllRows()
	if err != nil {
		return Summary{}, &UpsertError{Op: "read", Err: err}
	}
	existing := store.DecodeRows(raw, store.DecodeOptions{})

	// Within a batch the last occurrence of a key is authoritative.
	incoming := dedupeLastWins(batch)

	// Deltas come only from the snapshot read above, never from rows the
	// batch itself writes.
	snapshot := make(map[model.Key]model.StoredRow, len(existing))
	for _, row := range existing {
		snapshot[row.RowKey()] = row
	}

	written := make([]model.StoredRow, 0, len(incoming))
	for _, row := range incoming {
		stored := model.StoredRow{CanonicalRow: row}
		if prior, ok := snapshot[row.RowKey()]; ok {
			stored.PickupOccupancy = row.Occupancy.OrZero() - prior.Occupancy.OrZero()
			stored.PickupRevenue = row.Revenue.OrZero() - prior.Revenue.OrZero()
		}
		written = append(written, stored)
	}

	survivors, dropped := s.filterExisting(existing, incoming)

	result := append(survivors, written...)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Property != result[j].Property {
			return result[i].Property < result[j].Property
		}
		return result[i].Date.Before(result[j].Date)
	})

	if err := s.table.ReplaceAllRows(store.EncodeRows(result)); err != nil {
		return Summary{}, &UpsertError{Op: "replace", Err: err}
	}

	return Summary{
		RowsWritten: len(written),
		Properties:  distinctProperties(written),
		DroppedDays: dropped,
	}, nil
}

// filterExisting removes the stored rows the batch replaces, per policy, and
// reports how many removed rows have no replacement (month policy only).
func (s *Store) filterExisting(existing []model.StoredRow, incoming []model.CanonicalRow) ([]model.StoredRow, int) {
	batchKeys := make(map[model.Key]struct{}, len(incoming))
	batchMonths := make(map[model.Key]struct{}, len(incoming))
	for _, row := range incoming {
		batchKeys[row.RowKey()] = struct{}{}
		batchMonths[model.Key{Property: row.Property, Date: row.MonthYear()}] = struct{}{}
	}

	survivors := make([]model.StoredRow, 0, len(existing))
	dropped := 0
	for _, row := range existing {
		switch s.policy {
		case ReplaceByMonth:
			monthKey := model.Key{Property: row.Property, Date: row.MonthYear()}
			if _, hit := batchMonths[monthKey]; hit {
				if _, replaced := batchKeys[row.RowKey()]; !replaced {
					dropped++
				}
				continue
			}
		default:
			if _, hit := batchKeys[row.RowKey()]; hit {
				continue
			}
		}
		survivors = append(survivors, row)
	}

	return survivors, dropped
}

func dedupeLastWins(batch []model.CanonicalRow) []model.CanonicalRow {
	latest := make(map[model.Key]int, len(batch))
	for i, row := range batch {
		latest[row.RowKey()] = i
	}

	out := make([]model.CanonicalRow, 0, len(latest))
	for i, row := range batch {
		if latest[row.RowKey()] == i {
			out = append(out, row)
		}
	}
	return out
}

func distinctProperties(rows []model.StoredRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if _, ok := seen[row.Property]; !ok {
			seen[row.Property] = struct{}{}
			out = append(out, row.Property)
		}
	}
	sort.Strings(out)
	return out
}
