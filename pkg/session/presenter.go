package session

import (
	"context"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"Artist-Explorer-Go/pkg/catalog"
)

const separator = "-------------"

// Previewer displays the cover of an album. cover.Previewer implements it.
type Previewer interface {
	Preview(ctx context.Context, album catalog.AlbumItem) error
}

// Presenter formats result lists for the console.
type Presenter struct {
	Out io.Writer
	// Previewer may be nil, in which case covers are never shown.
	Previewer Previewer
}

// PrintArtists writes one line per artist between separator lines. Names are
// padded to a common display width so the IDs line up.
func (p *Presenter) PrintArtists(res catalog.ArtistResult) {
	names := make([]string, len(res.Items))
	for i, a := range res.Items {
		names[i] = a.Name
	}
	width := maxWidth(names)

	fmt.Fprintln(p.Out, "I found the following Artists: ")
	fmt.Fprintln(p.Out, separator)
	for _, a := range res.Items {
		fmt.Fprintf(p.Out, "%s \t with ID:%s\n", runewidth.FillRight(a.Name, width), a.ID)
	}
	fmt.Fprintln(p.Out, separator)
}

// PrintAlbums writes one line per album in response order. When showCovers is
// set, albums with at least one image are previewed right after their line.
// A failed preview stops the listing and is returned.
func (p *Presenter) PrintAlbums(ctx context.Context, res catalog.AlbumResult, showCovers bool) error {
	names := make([]string, len(res.Items))
	for i, a := range res.Items {
		names[i] = a.Name
	}
	width := maxWidth(names)

	fmt.Fprintln(p.Out, "I found the following Albums: ")
	fmt.Fprintln(p.Out, separator)
	for _, alb := range res.Items {
		fmt.Fprintf(p.Out, "%s\t uniqueID: %s\n", runewidth.FillRight(alb.Name, width), alb.ID)
		if !showCovers || p.Previewer == nil {
			continue
		}
		img, ok := alb.Cover()
		if !ok {
			continue
		}
		fmt.Fprintf(p.Out, "image: %s\n", img.URL)
		if err := p.Previewer.Preview(ctx, alb); err != nil {
			return err
		}
	}
	fmt.Fprintln(p.Out, separator)
	return nil
}

func maxWidth(names []string) int {
	w := 0
	for _, n := range names {
		if nw := runewidth.StringWidth(n); nw > w {
			w = nw
		}
	}
	return w
}
