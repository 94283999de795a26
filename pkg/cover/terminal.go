package cover

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"
)

// TerminalViewer renders covers inline using 24-bit ANSI colours. Each text
// cell holds two vertically stacked pixels drawn with an upper half block,
// so an image of Width columns is twice as tall in pixels as it is in rows.
type TerminalViewer struct {
	Out   io.Writer
	Width int
}

// Show implements Viewer.
func (t *TerminalViewer) Show(ctx context.Context, title string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := scale(img, t.Width)

	w := bufio.NewWriter(t.Out)
	fmt.Fprintf(w, "[%s]\n", title)
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := dst.RGBAAt(x, y)
			bottom := dst.RGBAAt(x, y+1)
			fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		w.WriteString("\x1b[0m\n")
	}
	return w.Flush()
}

// scale resizes img to width pixels keeping the aspect ratio. The height is
// rounded up to an even number of pixels so every row of cells is full.
func scale(img image.Image, width int) *image.RGBA {
	src := img.Bounds()
	if width <= 0 || src.Dx() == 0 || src.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	height := (src.Dy()*width + src.Dx() - 1) / src.Dx()
	if height%2 == 1 {
		height++
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
