// Package spotify wraps the Spotify client library and exposes the catalog
// lookups used by the console session. Authentication uses the client
// credentials flow: a static client ID and secret are exchanged once for an
// application token which is then attached to every request for the rest of
// the run. The token is never refreshed.
//
// The wrapped library does not accept a context, so cancellation is checked
// explicitly before each call. Failures are wrapped with one of the stage
// errors below so callers can tell them apart with errors.Is.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"Artist-Explorer-Go/pkg/catalog"
)

// TokenURL is the Spotify accounts endpoint used for the credential exchange.
const TokenURL = spotify.TokenURL

var (
	// ErrAuth is returned when the credential exchange fails.
	ErrAuth = errors.New("spotify: authentication failed")
	// ErrSearch is returned when an artist search fails.
	ErrSearch = errors.New("spotify: artist search failed")
	// ErrAlbums is returned when an album lookup fails.
	ErrAlbums = errors.New("spotify: album lookup failed")
)

// Credentials identify the application against the accounts service.
// TokenURL defaults to the Spotify endpoint when empty.
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// api is the subset of spotify.Client used by this package. It allows the
// concrete client to be replaced in tests.
type api interface {
	Search(query string, t spotify.SearchType) (*spotify.SearchResult, error)
	GetArtistAlbumsOpt(artistID spotify.ID, options *spotify.Options, ts ...spotify.AlbumType) (*spotify.SimpleAlbumPage, error)
}

// Client performs catalog lookups with an application token.
type Client struct {
	client api
}

// Compile-time check that Client satisfies catalog.Service.
var _ catalog.Service = (*Client)(nil)

// Authenticate exchanges the credentials for a bearer token. hc is used for
// the token request when non-nil so callers can instrument the transport.
func Authenticate(ctx context.Context, creds Credentials, hc *http.Client) (*oauth2.Token, error) {
	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = TokenURL
	}
	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}
	if hc != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return token, nil
}

// NewClient authenticates and returns a Client ready for API calls. The
// transport of hc, if any, carries the API requests underneath the token.
func NewClient(ctx context.Context, creds Credentials, hc *http.Client) (*Client, error) {
	token, err := Authenticate(ctx, creds, hc)
	if err != nil {
		return nil, err
	}

	var base http.RoundTripper
	if hc != nil {
		base = hc.Transport
	}
	// StaticTokenSource keeps the token for the lifetime of the process;
	// expiry is not handled.
	authed := &http.Client{Transport: &oauth2.Transport{
		Source: oauth2.StaticTokenSource(token),
		Base:   base,
	}}
	c := spotify.NewClient(authed)
	return &Client{client: &c}, nil
}

// SearchArtists implements catalog.Service. Only the first page of results
// is returned; an empty page is not an error.
func (c *Client) SearchArtists(ctx context.Context, query string) (catalog.ArtistResult, error) {
	if err := ctx.Err(); err != nil {
		return catalog.ArtistResult{}, err
	}
	res, err := c.client.Search(query, spotify.SearchTypeArtist)
	if err != nil {
		return catalog.ArtistResult{}, fmt.Errorf("%w: %q: %w", ErrSearch, query, err)
	}
	var out catalog.ArtistResult
	if res == nil || res.Artists == nil {
		return out, nil
	}
	out.Items = make([]catalog.ArtistItem, len(res.Artists.Artists))
	for i, a := range res.Artists.Artists {
		out.Items[i] = catalog.ArtistItem{Name: a.Name, ID: string(a.ID)}
	}
	return out, nil
}

// GetArtistAlbums implements catalog.Service. The artist ID is passed through
// without validation and market scopes album availability to one country.
func (c *Client) GetArtistAlbums(ctx context.Context, artistID, market string) (catalog.AlbumResult, error) {
	if err := ctx.Err(); err != nil {
		return catalog.AlbumResult{}, err
	}
	opt := &spotify.Options{Country: &market}
	page, err := c.client.GetArtistAlbumsOpt(spotify.ID(artistID), opt)
	if err != nil {
		return catalog.AlbumResult{}, fmt.Errorf("%w: artist %s: %w", ErrAlbums, artistID, err)
	}
	var out catalog.AlbumResult
	if page == nil {
		return out, nil
	}
	out.Items = make([]catalog.AlbumItem, len(page.Albums))
	for i, alb := range page.Albums {
		out.Items[i] = albumItem(alb)
	}
	return out, nil
}

func albumItem(alb spotify.SimpleAlbum) catalog.AlbumItem {
	item := catalog.AlbumItem{Name: alb.Name, ID: string(alb.ID)}
	if len(alb.Images) > 0 {
		item.Images = make([]catalog.Image, len(alb.Images))
		for i, img := range alb.Images {
			item.Images[i] = catalog.Image{URL: img.URL, Width: img.Width, Height: img.Height}
		}
	}
	return item
}
