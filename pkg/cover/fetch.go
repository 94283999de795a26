// Package cover fetches album cover images and displays them, either in a
// window of the platform image viewer or inline in the terminal. Covers are
// fetched with a plain GET each time they are shown; nothing is cached and
// failures are not retried.
package cover

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Decoders for the formats cover art is served in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"Artist-Explorer-Go/pkg/catalog"
)

// ErrCover is returned when a cover cannot be fetched, decoded or shown.
var ErrCover = errors.New("cover: preview failed")

// maxImageBytes bounds the size of a downloaded cover.
const maxImageBytes = 16 << 20

// defaultClient serves Fetchers without their own client.
var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetcher downloads and decodes cover images.
type Fetcher struct {
	// HTTP is used for requests. A shared client with a 30 second timeout
	// is used when nil.
	HTTP      *http.Client
	UserAgent string
}

// Fetch downloads the image at url and decodes it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	hc := f.HTTP
	if hc == nil {
		hc = defaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %s", url, resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

// Viewer displays a decoded image under a title.
type Viewer interface {
	Show(ctx context.Context, title string, img image.Image) error
}

// Counter is incremented for every cover shown. prometheus.Counter
// satisfies it.
type Counter interface {
	Inc()
}

// Previewer fetches the cover of an album and hands it to a Viewer.
type Previewer struct {
	Fetcher *Fetcher
	Viewer  Viewer
	Shown   Counter
}

// Preview shows the first listed image of album. Albums without images are
// skipped silently.
func (p *Previewer) Preview(ctx context.Context, album catalog.AlbumItem) error {
	img, ok := album.Cover()
	if !ok {
		return nil
	}
	decoded, err := p.Fetcher.Fetch(ctx, img.URL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCover, album.Name, err)
	}
	if err := p.Viewer.Show(ctx, album.Name, decoded); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCover, album.Name, err)
	}
	if p.Shown != nil {
		p.Shown.Inc()
	}
	return nil
}
