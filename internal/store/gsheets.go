package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsBackend persists tables as worksheets of one Google Sheets document,
// which is how the production dataset is shared with the dashboard.
type SheetsBackend struct {
	ctx           context.Context
	svc           *gsheet.Service
	spreadsheetID string
}

// NewSheets builds a Sheets-backed store for the given spreadsheet id.
//
// Credentials, in preference order:
//  1. GOOGLE_CREDENTIALS_B64: base64-encoded service-account JSON.
//  2. GOOGLE_CREDENTIALS_JSON: service-account JSON inline.
//  3. Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS).
func NewSheets(ctx context.Context, spreadsheetID string) (*SheetsBackend, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsBackend{
		ctx:           ctx,
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	var credJSON []byte

	if b64 := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_B64")); b64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode GOOGLE_CREDENTIALS_B64: %w", err)
		}
		credJSON = decoded
	} else if inline := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); inline != "" {
		credJSON = []byte(inline)
	}

	if credJSON != nil {
		creds, err := google.CredentialsFromJSON(ctx, credJSON, gsheet.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("credentials json: %w", err)
		}
		return gsheet.NewService(ctx, option.WithCredentials(creds))
	}

	// Fall back to ADC.
	return gsheet.NewService(ctx, option.WithScopes(gsheet.SpreadsheetsScope))
}

// Table returns a handle for one worksheet title.
func (b *SheetsBackend) Table(name string) TableStore {
	return &sheetsTable{backend: b, title: name}
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (b *SheetsBackend) Close() error {
	return nil
}

type sheetsTable struct {
	backend *SheetsBackend
	title   string
}

func (t *sheetsTable) ReadAllRows() ([][]string, error) {
	resp, err := t.backend.svc.Spreadsheets.Values.
		Get(t.backend.spreadsheetID, t.title).
		Context(t.backend.ctx).Do()
	if err != nil {
		return nil, &TransportError{Op: "read", Table: t.title, Err: err}
	}

	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

func (t *sheetsTable) ReplaceAllRows(rows [][]string) error {
	_, err := t.backend.svc.Spreadsheets.Values.
		Clear(t.backend.spreadsheetID, t.title, &gsheet.ClearValuesRequest{}).
		Context(t.backend.ctx).Do()
	if err != nil {
		return &TransportError{Op: "replace", Table: t.title, Err: err}
	}

	values := make([][]any, len(rows))
	for i, cells := range rows {
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		values[i] = row
	}

	_, err = t.backend.svc.Spreadsheets.Values.
		Update(t.backend.spreadsheetID, t.title+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(t.backend.ctx).Do()
	if err != nil {
		return &TransportError{Op: "replace", Table: t.title, Err: err}
	}

	return nil
}
