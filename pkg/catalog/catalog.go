// Package catalog defines the data model and service interface used to browse
// a music catalog. Implementations wrap a concrete web API (see the spotify
// package) and convert its responses into the plain value types below so the
// session and presenter never depend on a client library.
//
// Results are built once from a single response page and are not mutated
// afterwards. Item order always matches the order of the underlying response.
package catalog

import "context"

// ArtistItem is a single artist returned by a search.
type ArtistItem struct {
	Name string
	ID   string
}

// ArtistResult holds the first page of artists matching a search query.
type ArtistResult struct {
	Items []ArtistItem
}

// Image is a cover image reference. Width and Height are zero when the API
// did not report them.
type Image struct {
	URL    string
	Width  int
	Height int
}

// AlbumItem is a single album of an artist.
type AlbumItem struct {
	Name   string
	ID     string
	Images []Image
}

// Cover returns the first listed image of the album. The boolean is false
// when the album has no images.
func (a AlbumItem) Cover() (Image, bool) {
	if len(a.Images) == 0 {
		return Image{}, false
	}
	return a.Images[0], true
}

// AlbumResult holds the first page of albums of an artist.
type AlbumResult struct {
	Items []AlbumItem
}

// Service exposes the two catalog lookups used by the interactive session.
type Service interface {
	// SearchArtists returns artists matching the free-text query. An empty
	// result is not an error.
	SearchArtists(ctx context.Context, query string) (ArtistResult, error)

	// GetArtistAlbums returns the albums of the artist identified by
	// artistID that are available in market, a two-letter country code.
	GetArtistAlbums(ctx context.Context, artistID, market string) (AlbumResult, error)
}
