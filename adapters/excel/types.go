package excel

import "churnboard/internal/dataset"

// ExcelData represents a loaded sheet or CSV file
type ExcelData struct {
	Headers []string         // Column headers
	Rows    []dataset.RawRow // Data rows
}
