package cover

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"Artist-Explorer-Go/pkg/catalog"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func pngServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(8, 4, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cover.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(buf.Bytes())
		case "/garbage":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := pngServer(t)
	f := &Fetcher{HTTP: srv.Client(), UserAgent: "test"}

	img, err := f.Fetch(context.Background(), srv.URL+"/cover.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("unexpected bounds: %v", b)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := f.Fetch(context.Background(), srv.URL+"/garbage"); err == nil {
		t.Error("expected decode error")
	}
}

// TestFetchDefaultClient checks that a Fetcher without a client falls back
// to the shared one and is left unchanged.
func TestFetchDefaultClient(t *testing.T) {
	srv := pngServer(t)
	f := &Fetcher{}
	if _, err := f.Fetch(context.Background(), srv.URL+"/cover.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.HTTP != nil {
		t.Errorf("fetcher client was replaced: %v", f.HTTP)
	}
}

type recordingViewer struct {
	titles []string
	err    error
}

func (r *recordingViewer) Show(_ context.Context, title string, _ image.Image) error {
	r.titles = append(r.titles, title)
	return r.err
}

type count int

func (c *count) Inc() { *c++ }

func TestPreviewer(t *testing.T) {
	srv := pngServer(t)
	v := &recordingViewer{}
	var shown count
	p := &Previewer{Fetcher: &Fetcher{HTTP: srv.Client()}, Viewer: v, Shown: &shown}

	withCover := catalog.AlbumItem{Name: "Drones", Images: []catalog.Image{{URL: srv.URL + "/cover.png"}}}
	if err := p.Preview(context.Background(), withCover); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Preview(context.Background(), catalog.AlbumItem{Name: "No Art"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.titles) != 1 || v.titles[0] != "Drones" || shown != 1 {
		t.Errorf("expected exactly one preview, got %v (%d)", v.titles, shown)
	}

	broken := catalog.AlbumItem{Name: "Broken", Images: []catalog.Image{{URL: srv.URL + "/missing"}}}
	if err := p.Preview(context.Background(), broken); !errors.Is(err, ErrCover) {
		t.Errorf("expected ErrCover, got %v", err)
	}

	v.err = errors.New("no display")
	if err := p.Preview(context.Background(), withCover); !errors.Is(err, ErrCover) {
		t.Errorf("expected ErrCover from viewer, got %v", err)
	}
}

func TestWindowViewerWritesPNG(t *testing.T) {
	var opened []string
	w := &WindowViewer{Dir: t.TempDir(), launch: func(path string) error {
		opened = append(opened, path)
		return nil
	}}
	for i := 0; i < 2; i++ {
		if err := w.Show(context.Background(), "Drones", solid(2, 2, color.White)); err != nil {
			t.Fatal(err)
		}
	}
	if len(opened) != 2 || opened[0] == opened[1] {
		t.Fatalf("expected two independent windows, got %v", opened)
	}
	f, err := os.Open(opened[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a PNG: %v", err)
	}
}

func TestOpenCommand(t *testing.T) {
	tests := map[string]string{
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
		"darwin":  "open",
		"windows": "rundll32",
	}
	for goos, want := range tests {
		cmd := openCommand(goos, "/tmp/cover.png")
		if cmd.Args[0] != want || cmd.Args[len(cmd.Args)-1] != "/tmp/cover.png" {
			t.Errorf("%s: unexpected command %v", goos, cmd.Args)
		}
	}
}

func TestTerminalViewer(t *testing.T) {
	var out bytes.Buffer
	tv := &TerminalViewer{Out: &out, Width: 4}
	if err := tv.Show(context.Background(), "Drones", solid(8, 4, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	// title plus 4x2 pixels -> one row of cells
	if len(lines) != 2 || lines[0] != "[Drones]" {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if strings.Count(lines[1], "▀") != 4 {
		t.Errorf("expected 4 cells, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "\x1b[38;2;255;0;0m") {
		t.Errorf("expected red foreground, got %q", lines[1])
	}
}

func TestScaleKeepsAspect(t *testing.T) {
	dst := scale(solid(100, 50, color.Black), 10)
	if b := dst.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("unexpected bounds %v", b)
	}
}
