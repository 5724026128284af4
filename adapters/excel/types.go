package excel

// RawRowData represents a row of raw spreadsheet data as header -> cell text
type RawRowData map[string]string

// ExcelData represents the complete spreadsheet as read from disk
type ExcelData struct {
	Headers []string     // Column headers, whitespace stripped
	Rows    []RawRowData // Data rows
}

// Len returns the number of data rows
func (d *ExcelData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
