package excel

// RawSheet is a parsed sheet before it becomes a table: the header row and
// the data rows as raw strings
type RawSheet struct {
	Headers []string
	Rows    [][]string
}

// FileType is a supported upload format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)
