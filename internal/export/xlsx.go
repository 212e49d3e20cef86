package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/insiderfetch/pkg/models"
)

// SheetName is the worksheet that holds the rows in XLSX exports.
const SheetName = "Form4"

// writeXLSX writes the same header and rows as writeCSV into a single sheet.
func writeXLSX(path string, filings []models.InsiderFiling) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(models.InsiderFilingHeader))
	for i, h := range models.InsiderFilingHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, filing := range filings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := filing.Record()
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
