package excel

// Config holds configuration for spreadsheet parsing
type Config struct {
	// SheetName selects the worksheet; empty means the first sheet
	SheetName string `json:"sheet_name"`
	// MaxRows caps the number of data rows read; 0 means no cap
	MaxRows int `json:"max_rows"`
}

// DefaultConfig returns sensible defaults for spreadsheet parsing
func DefaultConfig() Config {
	return Config{}
}
