package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml next to
// the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Ingest IngestConfig `toml:"ingest"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// StoreConfig selects and parameterizes the persisted-table backend.
type StoreConfig struct {
	// Backend is one of sqlite, memory, gsheets.
	Backend string `toml:"backend"`
	// DBPath is the sqlite database path (sqlite backend).
	DBPath string `toml:"db_path"`
	// SpreadsheetID is the Google Sheets document id (gsheets backend).
	SpreadsheetID string `toml:"spreadsheet_id"`
	// ActualTable / BudgetTable name the two persisted tables.
	ActualTable string `toml:"actual_table"`
	BudgetTable string `toml:"budget_table"`
}

// IngestConfig controls workbook normalization and upsert behavior.
type IngestConfig struct {
	// SheetName and SkipRows are the upload-file convention: data lives in
	// "Sheet2" with a 2-row preamble. Preserved exactly for input compatibility.
	SheetName string `toml:"sheet_name"`
	SkipRows  int    `toml:"skip_rows"`
	// ForecastMarker is the case-insensitive text that splits History from
	// Forecast rows when found in the date column.
	ForecastMarker string `toml:"forecast_marker"`
	// ReplacePolicy is "date" (per-day replacement, default) or "month"
	// (legacy wholesale per-month replacement).
	ReplacePolicy string `toml:"replace_policy"`
	// BudgetDateLayout is the Go time layout of the budget table's date
	// column, e.g. "2-Jan-06" for cells like "1-Jul-25".
	BudgetDateLayout string `toml:"budget_date_layout"`
	// ColumnSynonyms maps canonical column names to the source header
	// spellings that should be rewritten to them.
	ColumnSynonyms map[string][]string `toml:"column_synonyms"`
}

// LoadConfigInfo carries load-time metadata for CLI override decisions.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20270,
			DevMode: false,
		},
		Store: StoreConfig{
			Backend:     "sqlite",
			DBPath:      "data/roomstats.db",
			ActualTable: "Actual_25-26",
			BudgetTable: "Budget_25-26",
		},
		Ingest: IngestConfig{
			SheetName:        "Sheet2",
			SkipRows:         2,
			ForecastMarker:   "Forecast",
			ReplacePolicy:    "date",
			BudgetDateLayout: "2-Jan-06",
			ColumnSynonyms: map[string][]string{
				"Date":      {"Date"},
				"Total Occ": {"Total Occ", "Total Occupancy"},
				"ADR":       {"ADR", "Average Rate", "Avg Rate"},
				"Revenue":   {"Revenue", "Room Revenue", "Total Revenue"},
			},
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and reports load metadata.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)

	return config, info, nil
}

// applyEnvOverrides lets deployment environments override config.toml.
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("ROOMSTATS_STORE_BACKEND"); v != "" {
		config.Store.Backend = v
	}
	if v := os.Getenv("ROOMSTATS_DB_PATH"); v != "" {
		config.Store.DBPath = v
	}
	if v := os.Getenv("ROOMSTATS_SPREADSHEET_ID"); v != "" {
		config.Store.SpreadsheetID = v
	}
	if v := os.Getenv("ROOMSTATS_ACTUAL_TABLE"); v != "" {
		config.Store.ActualTable = v
	}
	if v := os.Getenv("ROOMSTATS_BUDGET_TABLE"); v != "" {
		config.Store.BudgetTable = v
	}
	if v := os.Getenv("ROOMSTATS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir makes sure the sqlite data directory exists and returns it.
func EnsureDataDir(config *AppConfig) (string, error) {
	dir := filepath.Dir(config.Store.DBPath)
	if dir == "" || dir == "." {
		return ".", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
