package textgrid

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// ParseFace parses a TrueType font file and returns a face of the given size in points at 72 DPI.
func ParseFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// MonoFace returns the Go Mono font at the given size.
func MonoFace(size float64) (font.Face, error) {
	return ParseFace(gomono.TTF, size)
}

// BasicFace returns a 7x13 bitmap face. Cells should be at least 7x13 pixels.
func BasicFace() font.Face { return basicfont.Face7x13 }
