// Package imaging decodes downloaded candidate bytes and normalizes them to
// one of the two common web raster formats.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	// Registered decoders beyond png/jpeg; anything they decode is coerced
	// to PNG on output.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// Logo holds a normalized image ready to be written to disk.
type Logo struct {
	Data   []byte
	Format string // "jpeg" or "png"
	Ext    string // "jpg" or "png"
}

// Normalize decodes raw bytes as an image and re-encodes per the format
// policy: JPEG stays JPEG, everything else becomes PNG (lossless). An
// undecodable payload is an error, which disqualifies the candidate.
func Normalize(raw []byte) (Logo, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Logo{}, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, flattenOnWhite(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return Logo{}, fmt.Errorf("encode jpeg: %w", err)
		}
		return Logo{Data: buf.Bytes(), Format: "jpeg", Ext: "jpg"}, nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return Logo{}, fmt.Errorf("encode png: %w", err)
	}
	return Logo{Data: buf.Bytes(), Format: "png", Ext: "png"}, nil
}

// flattenOnWhite composites src over an opaque white canvas. Dropping the
// alpha channel directly would render transparent regions black in formats
// without transparency.
func flattenOnWhite(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}
