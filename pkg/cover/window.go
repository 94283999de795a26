package cover

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// WindowViewer writes each cover to a PNG file and opens it with the
// platform image viewer. Every call opens a separate window which stays open
// until the user closes it; the program neither waits for nor closes it.
// The PNG files are left behind in Dir because the viewer may still be
// reading them after the program exits.
type WindowViewer struct {
	// Dir receives the PNG files. os.TempDir()/artist-explorer when empty.
	Dir string
	Log logrus.FieldLogger

	// launch starts the viewer for path. Replaced in tests.
	launch func(path string) error
}

// NewWindowViewer returns a WindowViewer using the platform opener.
func NewWindowViewer(log logrus.FieldLogger) *WindowViewer {
	return &WindowViewer{Log: log, launch: startViewer}
}

// Show implements Viewer.
func (w *WindowViewer) Show(ctx context.Context, title string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := w.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "artist-explorer")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "cover-*.png")
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("encode cover: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if w.Log != nil {
		b := img.Bounds()
		w.Log.WithFields(logrus.Fields{
			"album":  title,
			"file":   f.Name(),
			"width":  b.Dx(),
			"height": b.Dy(),
		}).Debug("opening cover window")
	}
	launch := w.launch
	if launch == nil {
		launch = startViewer
	}
	return launch(f.Name())
}

// openCommand returns the command that opens path with the default viewer
// of goos.
func openCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

func startViewer(path string) error {
	cmd := openCommand(runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// The viewer outlives this process; it is never waited on.
	return cmd.Process.Release()
}
