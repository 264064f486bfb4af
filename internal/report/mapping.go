// Package report produces the run's downstream artifacts: the mapping CSV,
// the flat ZIP archive of extracted logos and an optional PDF contact sheet.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// MappingRow is one successful extraction projected for the mapping file. The
// drive URL is always written empty; it is backfilled by hand after the
// operator uploads the files elsewhere.
type MappingRow struct {
	WebsiteURL   string
	Domain       string
	LogoFilename string
}

var mappingHeader = []string{"website_url", "domain", "logo_filename", "google_drive_url"}

// WriteMapping writes one row per extracted logo.
func WriteMapping(path string, rows []MappingRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(mappingHeader); err != nil {
		return fmt.Errorf("write mapping header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.WebsiteURL, row.Domain, row.LogoFilename, ""}); err != nil {
			return fmt.Errorf("write mapping row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
