package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/seenimoa/insiderfetch/pkg/models"
)

// writeCSV writes a header row and one row per filing, truncating any
// existing file.
func writeCSV(path string, filings []models.InsiderFiling) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(models.InsiderFilingHeader); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, f := range filings {
		if err := writer.Write(f.Record()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}
