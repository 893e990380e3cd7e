package upsert

import (
	"errors"
	"testing"
	"time"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func row(property string, d int, occ, revenue float64) model.CanonicalRow {
	return model.CanonicalRow{
		Property:  property,
		Date:      day(d),
		Occupancy: model.Num(occ),
		Revenue:   model.Num(revenue),
		Label:     model.LabelHistory,
	}
}

func readStored(t *testing.T, table store.TableStore) []model.StoredRow {
	t.Helper()
	raw, err := table.ReadAllRows()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return store.DecodeRows(raw, store.DecodeOptions{})
}

func TestMerge_FirstWriteHasZeroPickups(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	summary, err := s.Merge([]model.CanonicalRow{
		row("Alpha", 1, 120, 11400),
		row("Alpha", 2, 130, 13000),
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if summary.RowsWritten != 2 || len(summary.Properties) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	for _, r := range readStored(t, table) {
		if r.PickupOccupancy != 0 || r.PickupRevenue != 0 {
			t.Fatalf("no prior row: pickups must be 0, got %+v", r)
		}
	}
}

func TestMerge_PickupIsDeltaAgainstSnapshot(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	if _, err := s.Merge([]model.CanonicalRow{row("Alpha", 1, 120, 11400)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Merge([]model.CanonicalRow{row("Alpha", 1, 135, 12825)}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	if len(stored) != 1 {
		t.Fatalf("want 1 row got %d", len(stored))
	}
	if stored[0].PickupOccupancy != 15 {
		t.Fatalf("want pickup occupancy 15 got %v", stored[0].PickupOccupancy)
	}
	if stored[0].PickupRevenue != 1425 {
		t.Fatalf("want pickup revenue 1425 got %v", stored[0].PickupRevenue)
	}
}

func TestMerge_IdempotentResubmission(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	batch := []model.CanonicalRow{
		row("Alpha", 1, 120, 11400),
		row("Beta", 1, 90, 8100),
	}

	if _, err := s.Merge(batch); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if _, err := s.Merge(batch); err != nil {
		t.Fatalf("second merge: %v", err)
	}

	stored := readStored(t, table)
	if len(stored) != 2 {
		t.Fatalf("resubmission must not grow the table: got %d rows", len(stored))
	}
	for _, r := range stored {
		if r.PickupOccupancy != 0 || r.PickupRevenue != 0 {
			t.Fatalf("identical resubmission must have zero pickups: %+v", r)
		}
	}
}

func TestMerge_PerDayKeyScope(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	if _, err := s.Merge([]model.CanonicalRow{
		row("Alpha", 1, 100, 9000),
		row("Alpha", 2, 110, 9900),
		row("Alpha", 3, 120, 10800),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := s.Merge([]model.CanonicalRow{row("Alpha", 2, 150, 13500)}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	if len(stored) != 3 {
		t.Fatalf("want 3 rows got %d", len(stored))
	}

	byDay := make(map[int]model.StoredRow)
	for _, r := range stored {
		byDay[r.Date.Day()] = r
	}
	if byDay[1].Occupancy.Value != 100 || byDay[3].Occupancy.Value != 120 {
		t.Fatalf("untouched days must survive unchanged: %+v", byDay)
	}
	if byDay[2].Occupancy.Value != 150 || byDay[2].PickupOccupancy != 40 {
		t.Fatalf("replaced day wrong: %+v", byDay[2])
	}
}

func TestMerge_MonthPolicyDropsOmittedDays(t *testing.T) {
	t.Parallel()

	backend := store.NewMemory()
	table := backend.Table("Actual_25-26")

	if _, err := New(table, ReplaceByDate).Merge([]model.CanonicalRow{
		row("Alpha", 1, 100, 9000),
		row("Alpha", 2, 110, 9900),
		row("Alpha", 3, 120, 10800),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	summary, err := New(table, ReplaceByMonth).Merge([]model.CanonicalRow{row("Alpha", 2, 115, 10350)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	if len(stored) != 1 {
		t.Fatalf("month policy replaces the whole month: want 1 row got %d", len(stored))
	}
	if summary.DroppedDays != 2 {
		t.Fatalf("dropped days must be surfaced: %+v", summary)
	}
}

func TestMerge_LastOccurrenceWinsWithinBatch(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	if _, err := s.Merge([]model.CanonicalRow{
		row("Alpha", 1, 100, 9000),
		row("Alpha", 1, 140, 12600),
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	if len(stored) != 1 {
		t.Fatalf("want 1 row got %d", len(stored))
	}
	if stored[0].Occupancy.Value != 140 {
		t.Fatalf("last occurrence must win: %+v", stored[0])
	}
}

func TestMerge_MissingValuesActAsZeroInDeltas(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	first := row("Alpha", 1, 120, 11400)
	if _, err := s.Merge([]model.CanonicalRow{first}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	second := first
	second.Occupancy = model.None()
	if _, err := s.Merge([]model.CanonicalRow{second}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	if stored[0].PickupOccupancy != -120 {
		t.Fatalf("missing new value reads as 0: want -120 got %v", stored[0].PickupOccupancy)
	}
}

func TestMerge_SortedByPropertyThenDate(t *testing.T) {
	t.Parallel()

	table := store.NewMemory().Table("Actual_25-26")
	s := New(table, ReplaceByDate)

	if _, err := s.Merge([]model.CanonicalRow{
		row("Beta", 2, 1, 1),
		row("Alpha", 2, 1, 1),
		row("Beta", 1, 1, 1),
		row("Alpha", 1, 1, 1),
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored := readStored(t, table)
	want := []struct {
		property string
		d        int
	}{{"Alpha", 1}, {"Alpha", 2}, {"Beta", 1}, {"Beta", 2}}
	for i, w := range want {
		if stored[i].Property != w.property || stored[i].Date.Day() != w.d {
			t.Fatalf("position %d: want %s/%d got %s/%d",
				i, w.property, w.d, stored[i].Property, stored[i].Date.Day())
		}
	}
}

type failingTable struct {
	readErr    error
	replaceErr error
}

func (f *failingTable) ReadAllRows() ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return nil, nil
}

func (f *failingTable) ReplaceAllRows([][]string) error {
	return f.replaceErr
}

func TestMerge_TransportFailuresWrapUpsertError(t *testing.T) {
	t.Parallel()

	var upErr *UpsertError

	s := New(&failingTable{readErr: errors.New("boom")}, ReplaceByDate)
	if _, err := s.Merge([]model.CanonicalRow{row("Alpha", 1, 1, 1)}); !errors.As(err, &upErr) {
		t.Fatalf("read failure: want UpsertError got %v", err)
	}

	s = New(&failingTable{replaceErr: errors.New("boom")}, ReplaceByDate)
	if _, err := s.Merge([]model.CanonicalRow{row("Alpha", 1, 1, 1)}); !errors.As(err, &upErr) {
		t.Fatalf("replace failure: want UpsertError got %v", err)
	}
}
