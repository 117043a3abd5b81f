// Package textgrid rasterizes text-mode character grids, the layers the
// filters in tmfilters were written for.
package textgrid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/tmfilters"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Grid is a fixed size grid of character cells.
type Grid struct {
	Cols, Rows            int
	CellWidth, CellHeight int
	// Offset of the grid's top-left corner in pixels.
	OffsetX, OffsetY int
	cells            []rune
}

// New returns a grid of cols×rows blank cells, each cellWidth×cellHeight pixels.
func New(cols, rows, cellWidth, cellHeight int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.New("grid must have at least one cell")
	} else if cellWidth <= 0 || cellHeight <= 0 {
		return nil, errors.New("cell dimensions must be positive")
	}
	g := &Grid{
		Cols:       cols,
		Rows:       rows,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		cells:      make([]rune, cols*rows),
	}
	g.Fill(' ')
	return g, nil
}

// Bounds returns the pixel rectangle covered by the grid, offset included.
func (g *Grid) Bounds() image.Rectangle {
	origin := image.Pt(g.OffsetX, g.OffsetY)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(g.Cols*g.CellWidth, g.Rows*g.CellHeight))}
}

// Size returns the pixel size of the image needed to hold the grid and its offset.
func (g *Grid) Size() image.Point { return g.Bounds().Max }

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// Set sets the character at col,row. It reports false if the cell is outside the grid.
func (g *Grid) Set(col, row int, r rune) bool {
	if !g.inBounds(col, row) {
		return false
	}
	g.cells[row*g.Cols+col] = r
	return true
}

// At returns the character at col,row or 0 if the cell is outside the grid.
func (g *Grid) At(col, row int) rune {
	if !g.inBounds(col, row) {
		return 0
	}
	return g.cells[row*g.Cols+col]
}

// Fill sets every cell to r.
func (g *Grid) Fill(r rune) {
	for i := range g.cells {
		g.cells[i] = r
	}
}

// FillText tiles every row with s repeated, each row starting shift runes
// further into s than the row above. An empty s leaves the grid unchanged.
func (g *Grid) FillText(s string, shift int) {
	runes := []rune(s)
	n := len(runes)
	if n == 0 {
		return
	}
	for row := 0; row < g.Rows; row++ {
		start := ((row*shift)%n + n) % n
		for col := 0; col < g.Cols; col++ {
			g.cells[row*g.Cols+col] = runes[(start+col)%n]
		}
	}
}

// WriteString writes s starting at col,row. Text wraps to the next row at the
// right edge and on '\n'. Writing stops at the end of the grid.
// It returns the number of runes written to cells.
func (g *Grid) WriteString(col, row int, s string) (n int) {
	if !g.inBounds(col, row) {
		return 0
	}
	for len(s) > 0 && row < g.Rows {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == '\n' {
			col, row = 0, row+1
			continue
		}
		g.cells[row*g.Cols+col] = r
		n++
		col++
		if col == g.Cols {
			col, row = 0, row+1
		}
	}
	return n
}

// Render fills the grid area of dst with bg and draws every non-blank cell's
// glyph with fg. Glyphs are centered horizontally in their cell and clipped to it.
func (g *Grid) Render(dst *image.RGBA, face font.Face, fg, bg color.Color) error {
	if face == nil {
		return errors.New("nil font face")
	}
	area := g.Bounds()
	if !area.In(dst.Rect) {
		return fmt.Errorf("grid area %v outside destination %v", area, dst.Rect)
	}
	draw.Draw(dst, area, image.NewUniform(bg), image.Point{}, draw.Src)
	ascent := face.Metrics().Ascent
	drawer := font.Drawer{Src: image.NewUniform(fg), Face: face}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			r := g.cells[row*g.Cols+col]
			if r == ' ' || r == 0 {
				continue
			}
			cell := image.Rect(0, 0, g.CellWidth, g.CellHeight).Add(area.Min).
				Add(image.Pt(col*g.CellWidth, row*g.CellHeight))
			drawer.Dst = dst.SubImage(cell).(*image.RGBA)
			x := fixed.I(cell.Min.X)
			if adv, ok := face.GlyphAdvance(r); ok {
				x += (fixed.I(g.CellWidth) - adv) / 2
			}
			drawer.Dot = fixed.Point26_6{X: x, Y: fixed.I(cell.Min.Y) + ascent}
			drawer.DrawString(string(r))
		}
	}
	return nil
}

// DistortionOptions returns gridDistortion options describing g with the
// given per-column and per-row factors. Factors beyond
// [tmfilters.MaxGridCells] are dropped.
func (g *Grid) DistortionOptions(widthFactors, heightFactors []float32, widthScale, heightScale float32) tmfilters.GridDistortionOptions {
	return tmfilters.GridDistortionOptions{
		GridCellDimensions:   ms2.Vec{X: float32(g.Cols), Y: float32(g.Rows)},
		GridPixelDimensions:  ms2.Vec{X: float32(g.Cols * g.CellWidth), Y: float32(g.Rows * g.CellHeight)},
		GridOffsetDimensions: ms2.Vec{X: float32(g.OffsetX), Y: float32(g.OffsetY)},
		WidthFactors:         clipFactors(widthFactors),
		HeightFactors:        clipFactors(heightFactors),
		WidthVariationScale:  widthScale,
		HeightVariationScale: heightScale,
	}
}

func clipFactors(f []float32) []float32 {
	if len(f) > tmfilters.MaxGridCells {
		return f[:tmfilters.MaxGridCells]
	}
	return f
}
