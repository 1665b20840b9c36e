package excel

// DefaultSheet is read and written when no sheet is configured
const DefaultSheet = "Sheet1"

// ExcelConfig holds configuration for a file data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"`
}

// DefaultExcelConfig returns sensible defaults for file loading
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath: path,
		Sheet:    DefaultSheet,
	}
}
