package excel

// ExcelConfig holds configuration for a spreadsheet data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet to read; empty means the first sheet of the workbook.
	Sheet string `json:"sheet"`
}

// DefaultExcelConfig returns the config for reading the first sheet of path
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{FilePath: path}
}
