package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize_KeepsPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	logo, err := Normalize(encodePNG(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logo.Format != "png" || logo.Ext != "png" {
		t.Fatalf("expected png passthrough, got %q/%q", logo.Format, logo.Ext)
	}
	if _, fm, err := image.Decode(bytes.NewReader(logo.Data)); err != nil || fm != "png" {
		t.Fatalf("expected decodable png output, got %q err=%v", fm, err)
	}
}

func TestNormalize_KeepsJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	logo, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logo.Format != "jpeg" || logo.Ext != "jpg" {
		t.Fatalf("expected jpeg passthrough, got %q/%q", logo.Format, logo.Ext)
	}
}

func TestNormalize_CoercesGIFToPNG(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	logo, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logo.Format != "png" {
		t.Fatalf("expected gif coerced to png, got %q", logo.Format)
	}
}

func TestNormalize_RejectsNonImage(t *testing.T) {
	if _, err := Normalize([]byte("<html>not an image</html>")); err == nil {
		t.Fatalf("expected decode error for html payload")
	}
}

func TestFlattenOnWhite_TransparentBackground(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// fully transparent except an opaque red block in the middle
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	flat := flattenOnWhite(src)
	if r, g, b, a := flat.At(0, 0).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("expected white background pixel, got %v", flat.At(0, 0))
	}
	if r, _, _, a := flat.At(5, 5).RGBA(); r != 0xffff || a != 0xffff {
		t.Fatalf("expected covered pixel preserved opaque, got %v", flat.At(5, 5))
	}
}

func TestFlattenOnWhite_SurvivesJPEGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattenOnWhite(src), &jpeg.Options{Quality: jpegQuality}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	out, _, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}

	// JPEG is lossy, so compare with tolerance.
	near := func(c color.Color, wr, wg, wb uint32) bool {
		r, g, b, _ := c.RGBA()
		diff := func(a, b uint32) uint32 {
			if a > b {
				return a - b
			}
			return b - a
		}
		const tol = 0x3000
		return diff(r, wr) < tol && diff(g, wg) < tol && diff(b, wb) < tol
	}
	if !near(out.At(0, 0), 0xffff, 0xffff, 0xffff) {
		t.Fatalf("expected near-white background after round trip, got %v", out.At(0, 0))
	}
	if !near(out.At(8, 8), 0xffff, 0, 0) {
		t.Fatalf("expected near-red covered pixel after round trip, got %v", out.At(8, 8))
	}
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0xffff {
		t.Fatalf("expected fully opaque output")
	}
}
