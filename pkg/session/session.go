// Package session runs the interactive console flow: it asks for an artist
// name, lists the matching artists, asks for an artist ID, and lists that
// artist's albums, optionally previewing their covers.
//
// The flow is strictly sequential. Every failure ends the run and is returned
// to the caller; whatever was printed before the failure stays printed.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"Artist-Explorer-Go/pkg/catalog"
)

// ErrInputClosed is returned when input ends before a prompt is answered.
var ErrInputClosed = errors.New("session: input closed before answer")

// Prompts, in the order they are asked.
const (
	PromptArtist = "Please give me an Artist name to look for:"
	PromptID     = "Please provide an ArtistID to search for Albums: "
	PromptCovers = "Do you want me to display all Album Covers? yes/no"
)

// Session holds the collaborators of a single run.
type Session struct {
	In        io.Reader
	Out       io.Writer
	Catalog   catalog.Service
	Presenter *Presenter
	// Market scopes the album lookup.
	Market string
	Log    logrus.FieldLogger
}

// Run executes the three-step flow once.
func (s *Session) Run(ctx context.Context) error {
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	sc := bufio.NewScanner(s.In)

	name, err := s.ask(sc, PromptArtist)
	if err != nil {
		return err
	}
	log.WithField("query", name).Debug("searching artists")
	artists, err := s.Catalog.SearchArtists(ctx, name)
	if err != nil {
		return err
	}
	log.WithField("count", len(artists.Items)).Debug("artists found")
	s.Presenter.PrintArtists(artists)

	artistID, err := s.ask(sc, PromptID)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"artist_id": artistID, "market": s.Market}).Debug("looking up albums")
	albums, err := s.Catalog.GetArtistAlbums(ctx, artistID, s.Market)
	if err != nil {
		return err
	}
	log.WithField("count", len(albums.Items)).Debug("albums found")

	answer, err := s.ask(sc, PromptCovers)
	if err != nil {
		return err
	}
	return s.Presenter.PrintAlbums(ctx, albums, Affirmative(answer))
}

// ask prints prompt and returns the next line of input.
func (s *Session) ask(sc *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprintln(s.Out, prompt)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read answer to %q: %w", prompt, err)
		}
		return "", ErrInputClosed
	}
	// CRLF input leaves a trailing carriage return behind.
	return strings.TrimSuffix(sc.Text(), "\r"), nil
}

// Affirmative reports whether answer is "yes", ignoring case. Anything else,
// including an empty answer, is a no.
func Affirmative(answer string) bool {
	return strings.EqualFold(answer, "yes")
}
