package thumbnail

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Resize scales src to width keeping its aspect ratio.
func Resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := 1
	if b.Dx() > 0 {
		height = max(b.Dy()*width/b.Dx(), 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Encode writes img in the given format as returned by image.Decode.
// Formats without an encoder fall back to PNG.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "png", "webp":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
}
