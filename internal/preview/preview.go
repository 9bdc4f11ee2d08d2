// Package preview renders a board and its sharing code as a PNG image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/minishare/internal/board"
)

// CaptionHeight is the height of the strip below the board that holds the code.
const CaptionHeight = 24

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Background  color.RGBA
	TextColor   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Background:  color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:   color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// Renderer draws boards. It is safe for concurrent use once created.
type Renderer struct {
	sprites    map[board.Piece]*image.RGBA
	theme      *Theme
	squareSize int
}

// NewRenderer creates a renderer with squares of the given pixel size.
func NewRenderer(squareSize int) (*Renderer, error) {
	if squareSize <= 0 {
		return nil, fmt.Errorf("invalid square size %d", squareSize)
	}

	// Render at 3x resolution for sharp scaling
	sprites, err := loadSprites(squareSize, 3.0)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		sprites:    sprites,
		theme:      DefaultTheme(),
		squareSize: squareSize,
	}, nil
}

// Size returns the dimensions of rendered images.
func (r *Renderer) Size() image.Point {
	return image.Pt(board.Cols*r.squareSize, board.Rows*r.squareSize+CaptionHeight)
}

// SquareRect returns the pixel rectangle of a square.
func (r *Renderer) SquareRect(sq board.Square) image.Rectangle {
	x := sq.Col() * r.squareSize
	y := sq.Row() * r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// SquareColor returns the background color of a square.
func (r *Renderer) SquareColor(sq board.Square) color.RGBA {
	if (sq.Row()+sq.Col())%2 == 0 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// Render draws b with caption centered underneath.
func (r *Renderer) Render(b board.Board, caption string) *image.RGBA {
	size := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, xdraw.Src)

	for sq := board.A5; sq < board.NoSquare; sq++ {
		rect := r.SquareRect(sq)
		xdraw.Draw(img, rect, image.NewUniform(r.SquareColor(sq)), image.Point{}, xdraw.Src)

		if sprite, ok := r.sprites[b.PieceAt(sq)]; ok {
			xdraw.Draw(img, rect, sprite, image.Point{}, xdraw.Over)
		}
	}

	r.drawCaption(img, caption)
	return img
}

func (r *Renderer) drawCaption(img *image.RGBA, caption string) {
	if caption == "" {
		return
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.theme.TextColor),
		Face: face,
	}

	width := d.MeasureString(caption).Ceil()
	x := (img.Bounds().Dx() - width) / 2
	y := board.Rows*r.squareSize + (CaptionHeight+face.Ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(caption)
}

// WritePNG renders b and writes it to w as PNG.
func (r *Renderer) WritePNG(w io.Writer, b board.Board, caption string) error {
	return png.Encode(w, r.Render(b, caption))
}
