package ports

import (
	"context"
	"io"

	"workgen/domain/table"
)

// TableReader parses an uploaded spreadsheet into a table.
// Malformed input fails with core.ErrParse; no partial table is returned.
type TableReader interface {
	Read(ctx context.Context, filename string, r io.Reader) (*table.Table, error)
}
