package store

// TableStore is the persisted-table collaborator: an externally-owned row
// table exposing a read-all / replace-all contract, header row included.
//
// There are no transactions. A caller doing read-then-replace owns that
// sequence as its critical section; a concurrent external writer between the
// two calls is a lost-update race the contract does not prevent.
type TableStore interface {
	// ReadAllRows returns every row, first row being the header. An empty
	// table returns an empty slice, not an error.
	ReadAllRows() ([][]string, error)
	// ReplaceAllRows atomically (from the caller's point of view) swaps the
	// table's full contents, header row included.
	ReplaceAllRows(rows [][]string) error
}

// Backend owns named tables and hands out TableStore handles for them.
type Backend interface {
	Table(name string) TableStore
	Close() error
}
