// Package texture decodes image files into tightly packed 8-bit pixel data.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned for empty images and for channel counts
// other than 1, 3 or 4.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// Image is decoded pixel data. Rows are tightly packed, top row first.
type Image struct {
	Width    int
	Height   int
	Channels int // 1 (red), 3 (RGB) or 4 (RGBA)
	Pix      []byte
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * img.Channels
}

// FlipVertical reverses the row order in place.
func (img *Image) FlipVertical() {
	stride := img.Stride()
	tmp := make([]byte, stride)
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Decode reads and decodes an image file.
func Decode(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, path)
}

// DecodeBytes decodes image data. The name is only used to recognize TGA,
// which has no magic number.
func DecodeBytes(data []byte, name string) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(src)
}

// FromImage converts a decoded image into packed pixels. Grayscale becomes one
// channel and YCbCr three. Every other layout is converted to RGBA. Only an
// empty image is rejected.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrUnsupportedFormat)
	}

	switch s := src.(type) {
	case *image.Gray:
		return packRows(w, h, 1, s.Pix, s.Stride), nil
	case *image.Gray16:
		out := &Image{Width: w, Height: h, Channels: 1, Pix: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = uint8(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return out, nil
	case *image.YCbCr:
		out := &Image{Width: w, Height: h, Channels: 3, Pix: make([]byte, w*h*3)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := s.YCbCrAt(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				i := (y*w + x) * 3
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, bl
			}
		}
		return out, nil
	case *image.RGBA:
		return packRows(w, h, 4, s.Pix, s.Stride), nil
	case *image.NRGBA:
		return packRows(w, h, 4, s.Pix, s.Stride), nil
	default:
		// Paletted, 16-bit color, CMYK, NYCbCrA, Alpha and anything else.
		rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
		return packRows(w, h, 4, rgba.Pix, rgba.Stride), nil
	}
}

// packRows copies pixel rows, dropping any padding beyond w*channels.
func packRows(w, h, channels int, pix []byte, stride int) *Image {
	rowLen := w * channels
	out := &Image{Width: w, Height: h, Channels: channels, Pix: make([]byte, rowLen*h)}
	for y := 0; y < h; y++ {
		copy(out.Pix[y*rowLen:(y+1)*rowLen], pix[y*stride:y*stride+rowLen])
	}
	return out
}
