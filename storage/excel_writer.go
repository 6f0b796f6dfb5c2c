package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"boataround-scraper/models"
)

const sheetName = "Sheet1"

// ExcelWriter writes cleaned listings into a formatted workbook: euro
// currency cells for the price, calendar-date cells for check-in and
// check-out, one header row from the record field names.
type ExcelWriter struct {
	path string
}

// NewExcelWriter returns a writer that will save the workbook at path.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Write builds the workbook and saves it. The file is created on every call;
// previous content is replaced.
func (w *ExcelWriter) Write(listings []*models.Listing) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("excel: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"link", "boat_name", "boat_length", "price", "check_in", "check_out"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}

	for i, l := range listings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), l.Link)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), l.BoatName)
		if l.Length > 0 {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.Length)
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), l.Price)
		if !l.CheckIn.IsZero() {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), l.CheckIn)
		}
		if !l.CheckOut.IsZero() {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), l.CheckOut)
		}
	}

	euroFormat := "€#,##0.00"
	priceStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &euroFormat})
	if err != nil {
		return fmt.Errorf("excel: price style: %w", err)
	}
	if err := f.SetColStyle(sheetName, "D", priceStyle); err != nil {
		return fmt.Errorf("excel: price column style: %w", err)
	}

	dateFormat := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("excel: date style: %w", err)
	}
	if err := f.SetColStyle(sheetName, "E:F", dateStyle); err != nil {
		return fmt.Errorf("excel: date column style: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("excel: save %q: %w", w.path, err)
	}
	return nil
}

// Close is a no-op; the workbook is written whole in Write.
func (w *ExcelWriter) Close() error { return nil }
