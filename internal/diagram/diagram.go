// Package diagram renders board positions as PNG images.
//
// The board and piece discs are described as SVG and rasterized with
// oksvg; piece letters and coordinates are drawn from the basicfont bitmap
// face, scaled up to the square size.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/crust/internal/board"
)

// Square colors.
var (
	LightSquare = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	DarkSquare  = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	Highlight   = color.RGBA{0xcd, 0xd2, 0x6a, 0xff}

	whiteFill = color.RGBA{0xf8, 0xf8, 0xf8, 0xff}
	blackFill = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

// Options controls rendering.
type Options struct {
	// Size is the image edge in pixels, rounded down to a multiple of 8.
	Size int
	// Flip draws the board from Black's side.
	Flip bool
	// Coordinates labels the outer files and ranks.
	Coordinates bool
	// LastMove highlights the squares of the last move made on the board.
	LastMove bool
}

// DefaultOptions returns a 480 pixel diagram with coordinates.
func DefaultOptions() Options {
	return Options{Size: 480, Coordinates: true, LastMove: true}
}

func (o Options) squareSize() int {
	return max(o.Size/8, 8)
}

// cell returns the display row and column of a square, row 0 at the top.
func (o Options) cell(sq board.Square) (row, col int) {
	if o.Flip {
		return sq.Rank(), 7 - sq.File()
	}
	return 7 - sq.Rank(), sq.File()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func highlighted(b *board.Board, opts Options) map[board.Square]bool {
	marks := make(map[board.Square]bool)
	if !opts.LastMove {
		return marks
	}
	if h := b.History(); len(h) > 0 {
		last := h[len(h)-1]
		marks[last.From()] = true
		marks[last.To()] = true
	}
	return marks
}

// SVG describes the board squares and piece discs. Piece letters are not
// part of the SVG; Render adds them.
func SVG(b *board.Board, opts Options) string {
	s := opts.squareSize()
	edge := s * 8
	marks := highlighted(b, opts)
	squares := &b.Tables().Squares

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, edge, edge, edge, edge)
	sb.WriteByte('\n')

	for dense := 0; dense < 64; dense++ {
		sq := squares.ToPadded(dense)
		row, col := opts.cell(sq)
		fill := DarkSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = LightSquare
		}
		if marks[sq] {
			fill = Highlight
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n", col*s, row*s, s, s, hex(fill))
	}

	for dense := 0; dense < 64; dense++ {
		sq := squares.ToPadded(dense)
		p := b.PieceAt(sq)
		if !p.IsColored() {
			continue
		}
		row, col := opts.cell(sq)
		fill, stroke := whiteFill, blackFill
		if p.Color() == board.Black {
			fill, stroke = blackFill, whiteFill
		}
		fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			col*s+s/2, row*s+s/2, s*3/8, hex(fill), hex(stroke), max(s/30, 1))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Render rasterizes the position.
func Render(b *board.Board, opts Options) (*image.RGBA, error) {
	edge := opts.squareSize() * 8

	icon, err := oksvg.ReadIconStream(strings.NewReader(SVG(b, opts)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(edge), float64(edge))

	rgba := image.NewRGBA(image.Rect(0, 0, edge, edge))
	scanner := rasterx.NewScannerGV(edge, edge, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(edge, edge, scanner)
	icon.Draw(raster, 1.0)

	drawLetters(rgba, b, opts)
	if opts.Coordinates {
		drawCoordinates(rgba, opts)
	}
	return rgba, nil
}

// WritePNG renders the position and encodes it to w.
func WritePNG(w io.Writer, b *board.Board, opts Options) error {
	img, err := Render(b, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PNG returns the encoded image.
func PNG(b *board.Board, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, b, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// glyph draws s with the bitmap face onto a transparent image sized to fit.
func glyph(s string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, face.Advance*len(s), face.Height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)
	return img
}

func drawLetters(dst *image.RGBA, b *board.Board, opts Options) {
	s := opts.squareSize()
	squares := &b.Tables().Squares
	h := s * 2 / 5
	w := h * basicfont.Face7x13.Advance / basicfont.Face7x13.Height

	for dense := 0; dense < 64; dense++ {
		sq := squares.ToPadded(dense)
		p := b.PieceAt(sq)
		if !p.IsColored() {
			continue
		}
		ink := blackFill
		if p.Color() == board.Black {
			ink = whiteFill
		}
		g := glyph(strings.ToUpper(string(p.Char())), ink)

		row, col := opts.cell(sq)
		x0 := col*s + (s-w)/2
		y0 := row*s + (s-h)/2
		draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), g, g.Bounds(), draw.Over, nil)
	}
}

func drawCoordinates(dst *image.RGBA, opts Options) {
	s := opts.squareSize()
	face := basicfont.Face7x13
	for i := 0; i < 8; i++ {
		file, rank := i, 7-i
		if opts.Flip {
			file, rank = 7-i, i
		}
		// Files along the bottom edge, right-aligned in each square.
		f := glyph(string(rune('a'+file)), blackFill)
		x := i*s + s - face.Advance - 1
		y := 8*s - face.Height - 1
		draw.Draw(dst, image.Rect(x, y, x+face.Advance, y+face.Height), f, image.Point{}, draw.Over)

		// Ranks along the left edge, at the top of each square.
		r := glyph(string(rune('1'+rank)), blackFill)
		draw.Draw(dst, image.Rect(1, i*s+1, 1+face.Advance, i*s+1+face.Height), r, image.Point{}, draw.Over)
	}
}
