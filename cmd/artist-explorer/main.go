// Command artist-explorer searches the Spotify catalog for an artist, lists
// the matching artists and then the albums of the one the user picks,
// optionally previewing album covers.
//
// The client credentials are normally compiled in:
//
//	go build -ldflags "-X main.clientID=... -X main.clientSecret=..." ./cmd/artist-explorer
//
// They can be overridden with ARTIST_EXPLORER_CLIENT_ID and
// ARTIST_EXPLORER_CLIENT_SECRET or a config file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
