package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/llehouerou/scrub/internal/app"
	"github.com/llehouerou/scrub/internal/config"
	"github.com/llehouerou/scrub/internal/errmsg"
	"github.com/llehouerou/scrub/internal/keymap"
	"github.com/llehouerou/scrub/internal/logging"
	"github.com/llehouerou/scrub/internal/mpris"
	"github.com/llehouerou/scrub/internal/ui/framebuf"
	"github.com/llehouerou/scrub/internal/video"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "scrub",
		Usage:     "frame-accurate terminal video scrubber",
		ArgsUsage: "<video>",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
			&cli.StringFlag{
				Name:  "protocol",
				Usage: "image protocol: auto, kitty, sixel or halfblock",
			},
		},
		Action: runPlayer,
		Commands: []*cli.Command{
			{
				Name:      "probe",
				Usage:     "print stream metadata as YAML",
				ArgsUsage: "<video>",
				Action:    runProbe,
			},
		},
	}
}

func runPlayer(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: scrub [options] <video>", 1)
	}
	path := c.Args().First()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpLoadConfig, err), 1)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if p := c.String("protocol"); p != "" {
		cfg.ImageProtocol = p
	}

	log, closer, err := logging.Setup(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.JSONLogs(),
	})
	if err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpSetupLog, err), 1)
	}
	defer closer.Close()

	bindings, err := keymap.WithOverrides(keymap.Bindings, cfg.Keys)
	if err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpBindKeys, err), 1)
	}

	proto, err := framebuf.Detect(cfg.ImageProtocol)
	if err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpDetectProtocol, err), 1)
	}

	src, err := video.Open(path, video.Options{
		FFmpegPath:  cfg.FFmpegPath,
		DecodeWidth: cfg.DecodeWidth,
		Log:         log,
	})
	if err != nil {
		return cli.Exit(errmsg.FormatWith(errmsg.OpOpenVideo, path, err), 1)
	}
	defer src.Close()

	info := src.Info()
	nudge := cfg.NudgeFrames(info.FrameRate)
	log.WithFields(logrus.Fields{
		"protocol":     proto.Name(),
		"nudge_frames": nudge,
		"mpris":        cfg.MPRIS,
	}).Info("player starting")

	m, err := app.New(src, app.Options{
		Title:       title(path, info),
		Path:        path,
		Bindings:    bindings,
		Protocol:    proto,
		NudgeFrames: nudge,
		Log:         log,
	})
	if err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpReadFrame, err), 1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.MPRIS {
		remote, err := mpris.New(m.Remote(p.Send), log)
		if err != nil {
			log.WithError(err).Warn("media controls unavailable")
		} else {
			defer remote.Close()
		}
	}
	final, runErr := p.Run()
	if fm, ok := final.(app.Model); ok {
		m = fm
	}
	m.Close()

	printTimestamps(os.Stdout, m.Printed())

	if runErr != nil {
		return cli.Exit(errmsg.Format(errmsg.OpRunUI, runErr), 1)
	}
	if err := m.Err(); err != nil {
		return cli.Exit(errmsg.Format(errmsg.OpReadFrame, err), 1)
	}
	return nil
}

func runProbe(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: scrub probe <video>", 1)
	}
	path := c.Args().First()

	info, err := video.Probe(path)
	if err != nil {
		return cli.Exit(errmsg.FormatWith(errmsg.OpProbeVideo, path, err), 1)
	}

	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return err
	}
	return enc.Close()
}

// title summarizes the file on the first row: name, size, rate, frames.
func title(path string, info video.Info) string {
	return fmt.Sprintf("%s  %dx%d  %s fps  %s frames",
		filepath.Base(path),
		info.Width, info.Height,
		humanize.FtoaWithDigits(info.FrameRate, 3),
		humanize.Comma(int64(info.Frames)),
	)
}

// printTimestamps writes the lines recorded with the timestamp key once the
// alternate screen is gone, so they stay in the shell scrollback.
func printTimestamps(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
