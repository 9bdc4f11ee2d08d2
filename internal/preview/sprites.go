package preview

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/hailam/minishare/internal/board"
)

// pieceShapes holds the SVG body of each piece type on a 45x45 canvas.
var pieceShapes = [...]string{
	board.Pawn: `<circle cx="22.5" cy="13" r="5.5"/>
<path d="M17 21 L28 21 L30.5 34 L14.5 34 Z"/>
<rect x="11" y="34" width="23" height="5"/>`,

	board.Knight: `<path d="M14 39 L31 39 L30 30 C29 24 31 18 27 12 L24 8 L22 11 L19 9 L19 13 C15 16 11 21 12 25 L15 26 L19 22 L21 23 C17 27 15 32 14 39 Z"/>`,

	board.Bishop: `<circle cx="22.5" cy="6" r="2.5"/>
<path d="M22.5 8.5 C26 12 29 15 28 21 C27.5 25 26 27 25.5 29 L19.5 29 C19 27 17.5 25 17 21 C16 15 19 12 22.5 8.5 Z"/>
<rect x="16" y="29" width="13" height="3"/>
<rect x="12" y="32" width="21" height="6"/>`,

	board.Rook: `<path d="M12 9 L16 9 L16 12 L20 12 L20 9 L25 9 L25 12 L29 12 L29 9 L33 9 L33 16 L12 16 Z"/>
<rect x="14" y="16" width="17" height="17"/>
<rect x="11" y="33" width="23" height="6"/>`,

	board.Queen: `<path d="M11 30 L8 12 L15 22 L17 9 L22.5 21 L28 9 L30 22 L37 12 L34 30 Z"/>
<circle cx="8" cy="12" r="2"/>
<circle cx="17" cy="9" r="2"/>
<circle cx="28" cy="9" r="2"/>
<circle cx="37" cy="12" r="2"/>
<rect x="11" y="31" width="23" height="7"/>`,

	board.King: `<path d="M21 4 L24 4 L24 8 L28 8 L28 11 L24 11 L24 15 L21 15 L21 11 L17 11 L17 8 L21 8 Z"/>
<path d="M12 30 C9 22 14 15 22.5 17 C31 15 36 22 33 30 Z"/>
<rect x="11" y="31" width="23" height="7"/>`,
}

// pieceColors maps a side to its fill and outline colors.
var pieceColors = [2][2]string{
	board.White: {"#ffffff", "#000000"},
	board.Black: {"#202020", "#000000"},
}

// pieceSVG returns a complete SVG document for p.
func pieceSVG(p board.Piece) string {
	colors := pieceColors[p.Color()]
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="45" height="45" viewBox="0 0 45 45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">
%s
</g>
</svg>`, colors[0], colors[1], pieceShapes[p.Type()])
}

// loadSprites rasterises every piece at size*renderScale and scales the
// result down to size for smooth edges.
func loadSprites(size int, renderScale float64) (map[board.Piece]*image.RGBA, error) {
	renderSize := int(float64(size) * renderScale)
	sprites := make(map[board.Piece]*image.RGBA, 12)

	for p := board.WhitePawn; p < board.NoPiece; p++ {
		icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
		if err != nil {
			return nil, fmt.Errorf("parse %s sprite: %w", p, err)
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		// Create RGBA image and render with anti-aliasing at high resolution
		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sprite := image.NewRGBA(image.Rect(0, 0, size, size))
		xdraw.CatmullRom.Scale(sprite, sprite.Bounds(), rgba, rgba.Bounds(), xdraw.Over, nil)
		sprites[p] = sprite
	}

	return sprites, nil
}
