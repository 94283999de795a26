package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Artist-Explorer-Go/pkg/config"
	"Artist-Explorer-Go/pkg/cover"
	"Artist-Explorer-Go/pkg/metrics"
	"Artist-Explorer-Go/pkg/session"
	"Artist-Explorer-Go/pkg/spotify"
)

// Set via ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	clientID     = ""
	clientSecret = ""
)

// newRootCmd builds the command reading answers from in, printing results to
// out and logging to errOut.
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "artist-explorer",
		Short: "Look up an artist's albums in the Spotify catalog",
		Long: `artist-explorer asks for an artist name, lists the matching artists
from the Spotify catalog, then lists the albums of the artist whose ID you
enter. Album covers can be previewed in an image viewer window or directly in
the terminal.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.Flags()
	flags.StringVar(&cfgPath, "config", "", "config file (default $HOME/.config/artist-explorer/config.yaml)")
	flags.String("market", "", "two-letter country code albums are scoped to")
	flags.String("preview", "", "cover preview mode: window, terminal or none")
	flags.String("metrics-file", "", "write Prometheus metrics of the run to this file")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		log := newLogger(errOut)

		v := config.New(cfgPath, config.Defaults{ClientID: clientID, ClientSecret: clientSecret})
		for key, flag := range map[string]string{
			"market":       "market",
			"preview":      "preview",
			"metrics_file": "metrics-file",
		} {
			if f := flags.Lookup(flag); f.Changed {
				v.Set(key, f.Value.String())
			}
		}
		cfg, err := config.Load(v)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.WithError(err).Error("invalid configuration")
			return err
		}

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.WithError(err).Warn("unknown log level, using warn")
			level = logrus.WarnLevel
		}
		if verbose, _ := flags.GetBool("verbose"); verbose {
			level = logrus.DebugLevel
		}
		log.SetLevel(level)

		a := &app{cfg: cfg, in: in, out: out, log: log, metrics: metrics.New()}
		if err := a.run(cmd.Context()); err != nil {
			log.WithError(err).Error("run failed")
			return err
		}
		return nil
	}
	return cmd
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	return log
}

// app bundles the dependencies of one run.
type app struct {
	cfg     *config.Config
	in      io.Reader
	out     io.Writer
	log     *logrus.Logger
	metrics *metrics.Metrics

	// transport underlies every outgoing request; nil means the default.
	transport http.RoundTripper
	// viewer replaces the viewer selected by cfg.Preview when set.
	viewer cover.Viewer
}

// run authenticates, then drives the interactive session. Authentication
// happens before the first prompt so a credential problem ends the run
// without asking anything. Metrics are written even when the run fails.
func (a *app) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.MetricsFile != "" {
		defer func() {
			if err := a.metrics.WriteFile(a.cfg.MetricsFile); err != nil {
				a.log.WithError(err).WithField("file", a.cfg.MetricsFile).Warn("writing metrics failed")
			}
		}()
	}

	apiClient := &http.Client{Transport: a.metrics.InstrumentTransport("spotify", a.transport)}
	a.log.WithField("token_url", a.cfg.TokenURL).Debug("authenticating")
	sc, err := spotify.NewClient(ctx, a.cfg.Credentials(), apiClient)
	if err != nil {
		return err
	}

	presenter := &session.Presenter{Out: a.out}
	if viewer := a.coverViewer(); viewer != nil {
		presenter.Previewer = &cover.Previewer{
			Fetcher: &cover.Fetcher{
				HTTP:      &http.Client{Transport: a.metrics.InstrumentTransport("cover", a.transport)},
				UserAgent: "artist-explorer/" + version,
			},
			Viewer: viewer,
			Shown:  a.metrics.CoversShown,
		}
	}

	s := &session.Session{
		In:        a.in,
		Out:       a.out,
		Catalog:   sc,
		Presenter: presenter,
		Market:    a.cfg.Market,
		Log:       a.log,
	}
	return s.Run(ctx)
}

func (a *app) coverViewer() cover.Viewer {
	if a.viewer != nil {
		return a.viewer
	}
	switch a.cfg.Preview {
	case config.PreviewWindow:
		return cover.NewWindowViewer(a.log)
	case config.PreviewTerminal:
		return &cover.TerminalViewer{Out: a.out, Width: a.cfg.PreviewWidth}
	default:
		return nil
	}
}
