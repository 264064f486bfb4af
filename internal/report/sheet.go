package report

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/rydeebs/getlogo/internal/extractor"
)

// Contact sheet layout, A4 portrait in millimeters.
const (
	sheetCols     = 3
	sheetCellW    = 62.0
	sheetImgH     = 36.0
	sheetCaptionH = 5.0
	sheetMarginX  = 12.0
	sheetMarginY  = 14.0
	sheetPageH    = 280.0
)

// WriteContactSheet renders a thumbnail grid of the extracted logos with the
// source domain captioned under each image. Logos that cannot be re-read are
// skipped so a single bad file never fails the sheet.
func WriteContactSheet(path string, records []extractor.LogoRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPage()

	col := 0
	y := sheetMarginY
	for _, rec := range records {
		data, err := os.ReadFile(rec.Path)
		if err != nil {
			log.Debug().Err(err).Str("file", rec.Filename).Msg("contact sheet skipping unreadable logo")
			continue
		}
		imgType := "PNG"
		if rec.Format == "jpeg" {
			imgType = "JPG"
		}
		opts := gofpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader(rec.Filename, opts, bytes.NewReader(data))

		x := sheetMarginX + float64(col)*sheetCellW
		pdf.ImageOptions(rec.Filename, x, y, 0, sheetImgH, false, opts, 0, "")
		pdf.SetXY(x, y+sheetImgH+1)
		pdf.CellFormat(sheetCellW, sheetCaptionH, rec.Domain, "", 0, "L", false, 0, "")

		col++
		if col == sheetCols {
			col = 0
			y += sheetImgH + sheetCaptionH + 4
			if y+sheetImgH+sheetCaptionH > sheetPageH {
				pdf.AddPage()
				y = sheetMarginY
			}
		}
	}
	return pdf.OutputFileAndClose(path)
}
