package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeChannels(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nrgba.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	gray16 := image.NewGray16(image.Rect(0, 0, 2, 2))
	gray16.SetGray16(0, 1, color.Gray16{Y: 0xABCD})

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White})
	pal.SetColorIndex(1, 0, 1)

	tests := []struct {
		name     string
		img      image.Image
		channels int
		check    func(*testing.T, *Image)
	}{
		{
			name:     "gray.png",
			img:      gray,
			channels: 1,
			check: func(t *testing.T, img *Image) {
				if img.Pix[1] != 200 {
					t.Errorf("pixel (1,0) = %d, want 200", img.Pix[1])
				}
			},
		},
		{
			name:     "gray16.png",
			img:      gray16,
			channels: 1,
			check: func(t *testing.T, img *Image) {
				if img.Pix[2] != 0xAB {
					t.Errorf("pixel (0,1) = %#x, want 0xab", img.Pix[2])
				}
				if img.Pix[0] != 0 {
					t.Errorf("pixel (0,0) = %#x, want 0", img.Pix[0])
				}
			},
		},
		{
			name:     "nrgba.png",
			img:      nrgba,
			channels: 4,
			check: func(t *testing.T, img *Image) {
				i := (1*2 + 1) * 4
				got := img.Pix[i : i+4]
				if !bytes.Equal(got, []byte{10, 20, 30, 128}) {
					t.Errorf("pixel (1,1) = %v", got)
				}
			},
		},
		{
			name:     "paletted.png",
			img:      pal,
			channels: 4,
			check: func(t *testing.T, img *Image) {
				if !bytes.Equal(img.Pix[4:8], []byte{255, 255, 255, 255}) {
					t.Errorf("pixel (1,0) = %v, want white", img.Pix[4:8])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, dir, tt.name, tt.img)
			img, err := Decode(path)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			b := tt.img.Bounds()
			if img.Width != b.Dx() || img.Height != b.Dy() {
				t.Errorf("size = %dx%d, want %dx%d", img.Width, img.Height, b.Dx(), b.Dy())
			}
			if img.Channels != tt.channels {
				t.Errorf("channels = %d, want %d", img.Channels, tt.channels)
			}
			if len(img.Pix) != img.Width*img.Height*img.Channels {
				t.Errorf("len(Pix) = %d", len(img.Pix))
			}
			if tt.check != nil {
				tt.check(t, img)
			}
		})
	}
}

func TestDecodeJPEGIsRGB(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeBytes(buf.Bytes(), "white.jpg")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if img.Channels != 3 {
		t.Fatalf("channels = %d, want 3", img.Channels)
	}
	if img.Pix[0] < 250 {
		t.Errorf("expected near-white, got %d", img.Pix[0])
	}
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 3)))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFromImageConvertsOtherLayouts(t *testing.T) {
	alpha := image.NewAlpha(image.Rect(0, 0, 2, 2))
	alpha.SetAlpha(1, 0, color.Alpha{A: 255})

	alpha16 := image.NewAlpha16(image.Rect(0, 0, 2, 2))
	alpha16.SetAlpha16(1, 0, color.Alpha16{A: 0xFFFF})

	// Lossy WebP with an alpha channel decodes to NYCbCrA.
	ycc := image.NewNYCbCrA(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i] = 255
		ycc.Cb[i] = 128
		ycc.Cr[i] = 128
	}
	ycc.A[1] = 255

	tests := []struct {
		name string
		img  image.Image
	}{
		{"alpha", alpha},
		{"alpha16", alpha16},
		{"nycbcra", ycc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := FromImage(tt.img)
			if err != nil {
				t.Fatalf("FromImage: %v", err)
			}
			if img.Width != 2 || img.Height != 2 || img.Channels != 4 {
				t.Fatalf("got %dx%d with %d channels", img.Width, img.Height, img.Channels)
			}
			if len(img.Pix) != 2*2*4 {
				t.Fatalf("len(Pix) = %d", len(img.Pix))
			}
			if a := img.Pix[3]; a != 0 {
				t.Errorf("pixel (0,0) alpha = %d, want 0", a)
			}
			if a := img.Pix[7]; a != 255 {
				t.Errorf("pixel (1,0) alpha = %d, want 255", a)
			}
		})
	}
}

func TestFromImageSubImageDropsPadding(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.SetRGBA(2, 2, color.RGBA{R: 9, A: 255})
	sub := big.SubImage(image.Rect(2, 2, 4, 4))

	img, err := FromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 2 || img.Height != 2 || len(img.Pix) != 16 {
		t.Fatalf("unexpected layout %dx%d len %d", img.Width, img.Height, len(img.Pix))
	}
	if img.Pix[0] != 9 {
		t.Errorf("first pixel red = %d, want 9", img.Pix[0])
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "nope.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestFlipVertical(t *testing.T) {
	img := &Image{Width: 1, Height: 3, Channels: 1, Pix: []byte{1, 2, 3}}
	img.FlipVertical()
	if !bytes.Equal(img.Pix, []byte{3, 2, 1}) {
		t.Errorf("Pix = %v, want [3 2 1]", img.Pix)
	}
}
