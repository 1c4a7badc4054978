// Package preview draws an image in the terminal with colored blocks.
package preview

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// block is one on-screen pixel: two cells wide so it looks roughly square.
const block = "  "

// Columns returns how many blocks fit on the terminal attached to f, capped at limit.
// When f is not a terminal, limit is returned unchanged.
func Columns(f *os.File, limit int) int {
	fd := int(f.Fd()) // #nosec G115
	if !term.IsTerminal(fd) {
		return limit
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width < len(block) {
		return limit
	}

	return min(limit, width/len(block))
}

// Render prints the image as rows of colored blocks, downsampling with
// nearest-neighbour sampling so that no row is wider than maxCols blocks.
// Blocks are always drawn with 24-bit background colors, including when w is a
// pipe or a file.
func Render(w io.Writer, img *bmp.Image, maxCols int) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if maxCols <= 0 {
		return fmt.Errorf("preview: column limit must be positive, got %d", maxCols)
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.TrueColor)

	cols := min(img.Width, maxCols)
	rows := max(1, img.Height*cols/img.Width)

	for row := range rows {
		y := row * img.Height / rows
		for col := range cols {
			x := col * img.Width / cols
			r, g, b, _ := bmp.Unpack(img.At(x, y))
			if _, err := fmt.Fprint(w, utils.ColoredBlock(renderer, block, int(r), int(g), int(b))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
