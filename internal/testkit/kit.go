package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Default file names the dashboards look for in the working directory.
const (
	McdFile     = "McDonald_s_Reviews.xlsx"
	TwitterFile = "twitter_dataset_1.xlsx"
	MoviesFile  = "n_movies_coloured.xlsx"
)

// Fixtures records where WriteFixtures put each workbook
type Fixtures struct {
	Dir         string
	McdFile     string
	TwitterFile string
	MoviesFile  string
}

// WriteWorkbook writes headers and rows into the first sheet of a new xlsx file
func WriteWorkbook(path string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes headers and rows as a CSV file
func WriteCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(headers); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// WriteFixtures generates all three datasets and writes them into dir
func WriteFixtures(dir string, config GeneratorConfig) (*Fixtures, error) {
	gen := NewGenerator(config)
	fx := &Fixtures{
		Dir:         dir,
		McdFile:     filepath.Join(dir, McdFile),
		TwitterFile: filepath.Join(dir, TwitterFile),
		MoviesFile:  filepath.Join(dir, MoviesFile),
	}

	if err := WriteWorkbook(fx.McdFile, ReviewHeaders, gen.Reviews()); err != nil {
		return nil, err
	}
	if err := WriteWorkbook(fx.TwitterFile, PostHeaders, gen.Posts()); err != nil {
		return nil, err
	}
	if err := WriteWorkbook(fx.MoviesFile, MovieHeaders, gen.Movies()); err != nil {
		return nil, err
	}
	return fx, nil
}
