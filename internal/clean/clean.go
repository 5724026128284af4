// Package clean applies a dataset schema to a raw spreadsheet and keeps only the rows
// whose critical fields all parse.
package clean

import (
	"log"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
)

// Stats counts what one cleaning pass did
type Stats struct {
	Read    int
	Kept    int
	Dropped int
}

// Parser turns one raw row into a record. ok=false drops the row.
type Parser[T any] func(row excel.RawRowData) (T, bool)

// Table checks the schema and parses every row. When required columns are missing it returns
// no records and a *dataset.SchemaError naming all of them.
func Table[T any](data *excel.ExcelData, schema dataset.Schema, parse Parser[T]) ([]T, Stats, error) {
	stats := Stats{Read: data.Len()}
	if data == nil {
		return nil, stats, schema.Check(nil)
	}
	if err := schema.Check(data.Headers); err != nil {
		return nil, stats, err
	}

	records := make([]T, 0, len(data.Rows))
	for _, row := range data.Rows {
		rec, ok := parse(row)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, rec)
	}
	stats.Kept = len(records)

	if stats.Dropped > 0 {
		log.Printf("[Clean] %s: dropped %d of %d rows with missing or unparsable fields", schema.Kind, stats.Dropped, stats.Read)
	}
	return records, stats, nil
}

// Rows converts records back into raw rows
func Rows[T interface{ Row() excel.RawRowData }](records []T) []excel.RawRowData {
	rows := make([]excel.RawRowData, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}
