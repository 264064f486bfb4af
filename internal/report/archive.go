package report

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/rydeebs/getlogo/internal/extractor"
)

// WriteArchive packs every extracted logo into one flat ZIP, entries named by
// their generated filenames.
func WriteArchive(path string, records []extractor.LogoRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, rec := range records {
		src, err := os.Open(rec.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", rec.Path, err)
		}
		w, err := zw.Create(rec.Filename)
		if err != nil {
			src.Close()
			return fmt.Errorf("archive entry %s: %w", rec.Filename, err)
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return fmt.Errorf("archive copy %s: %w", rec.Filename, err)
		}
		src.Close()
	}
	return zw.Close()
}
